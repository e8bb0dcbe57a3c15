package auth

import (
	"strings"
	"testing"
	"time"

	"deck-of-cards-go/internal/config"
	"deck-of-cards-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", JWTIssuer: "deck-test", JWTTTL: time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	tok, err := GenerateToken(OperatorSubject, cfg)
	require.NoError(t, err)

	claims, err := ParseAndValidateToken(tok, cfg)
	require.NoError(t, err)
	assert.Equal(t, OperatorSubject, claims.Subject)
	assert.Equal(t, "operator", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenRejectsWrongSecretOrIssuer(t *testing.T) {
	cfg := testConfig()
	tok, err := GenerateToken(OperatorSubject, cfg)
	require.NoError(t, err)

	other := cfg
	other.JWTSecret = "different"
	_, err = ParseAndValidateToken(tok, other)
	assert.Error(t, err)

	other = cfg
	other.JWTIssuer = "someone-else"
	_, err = ParseAndValidateToken(tok, other)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTTTL = -time.Hour
	tok, err := GenerateToken(OperatorSubject, cfg)
	require.NoError(t, err)
	_, err = ParseAndValidateToken(tok, cfg)
	assert.Error(t, err)
}

func TestTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken(OperatorSubject, config.Config{})
	assert.Error(t, err)
	_, err = ParseAndValidateToken("x", config.Config{})
	assert.Error(t, err)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong horse"), models.ErrUnauthorized)
	assert.ErrorIs(t, CheckPassword("", "correct horse"), models.ErrUnauthorized)
	assert.ErrorIs(t, CheckPassword(hash, ""), models.ErrUnauthorized)
}

func TestHashPasswordValidation(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
	_, err = HashPassword("short")
	assert.Error(t, err)
	_, err = HashPassword(strings.Repeat("a", 73))
	assert.Error(t, err)
}
