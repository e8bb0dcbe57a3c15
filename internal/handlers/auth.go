package handlers

import (
	"net/http"

	"deck-of-cards-go/internal/auth"
	"deck-of-cards-go/internal/config"
	"deck-of-cards-go/internal/models"

	"github.com/gin-gonic/gin"
)

type tokenRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenHandler exchanges the operator password for a JWT. The token is
// returned in the body and also set as an HttpOnly cookie.
func TokenHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		// Do not TrimSpace passwords: leading/trailing spaces are valid characters.
		if req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
			return
		}
		if err := auth.CheckPassword(cfg.AdminPasswordHash, req.Password); err != nil {
			writeAPIError(c, err)
			return
		}

		token, err := auth.GenerateToken(auth.OperatorSubject, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(auth.AuthCookieName, token, int(cfg.JWTTTL.Seconds()), "/", "", !cfg.IsDev(), true)
		c.JSON(http.StatusOK, tokenResponse{Token: token})
	}
}

// LogoutHandler clears the auth cookie. Bearer tokens stay valid until expiry.
func LogoutHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(auth.AuthCookieName, "", -1, "/", "", !cfg.IsDev(), true)
		c.Status(http.StatusNoContent)
	}
}
