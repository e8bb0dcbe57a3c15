package handlers

import (
	"errors"
	"net/http"

	"deck-of-cards-go/internal/cards"
	"deck-of-cards-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger sets the logger used for internal errors and websocket events.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Safe typed errors (do NOT echo raw errors).
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	case errors.Is(err, models.ErrInvalidJSON):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	case errors.Is(err, models.ErrInvalidJokerCount):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid joker count"})
		return
	case errors.Is(err, cards.ErrInvalidCard):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid card"})
		return
	case errors.Is(err, models.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	case errors.Is(err, models.ErrCorruptState):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "stored deck state unreadable"})
		return
	}

	// Unknown/internal errors: log details, return generic message.
	logger.Error("internal error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
