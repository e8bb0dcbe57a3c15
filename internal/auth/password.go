package auth

import (
	"fmt"
	"unicode/utf8"

	"deck-of-cards-go/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt truncates passwords at 72 bytes.
	bcryptMaxPasswordBytes = 72
	minPasswordChars       = 8
)

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password required")
	}
	if utf8.RuneCountInString(plain) < minPasswordChars {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordChars)
	}
	if len(plain) > bcryptMaxPasswordBytes {
		return "", fmt.Errorf("password too long: bcrypt only supports up to %d bytes (UTF-8)", bcryptMaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares plain against hash and returns models.ErrUnauthorized on mismatch.
func CheckPassword(hash, plain string) error {
	if hash == "" || plain == "" {
		return models.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	return nil
}
