package handlers

import (
	"net/http"

	"deck-of-cards-go/internal/config"
	"deck-of-cards-go/internal/deck"

	"github.com/gin-gonic/gin"
)

func RegisterHealthRoutes(r gin.IRoutes) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

// RegisterAuthRoutes wires the unauthenticated token endpoints.
func RegisterAuthRoutes(rg *gin.RouterGroup, cfg config.Config) {
	rg.POST("/auth/token", TokenHandler(cfg))
	rg.POST("/auth/logout", LogoutHandler(cfg))
}

// RegisterDeckRoutes wires deck endpoints. rg is expected to carry RequireAuth.
func RegisterDeckRoutes(rg *gin.RouterGroup, svc *deck.Service) {
	rg.GET("/deck", GetDeckHandler(svc))
	rg.GET("/deck/history", DeckHistoryHandler(svc))
	rg.POST("/deck/reset", ResetDeckHandler(svc))
	rg.POST("/deck/shuffle", ShuffleDeckHandler(svc))
	rg.POST("/deck/draw", DrawDeckHandler(svc))
	rg.POST("/deck/sort", SortDeckHandler(svc))
	rg.POST("/deck/undo", UndoDeckHandler(svc))
	rg.POST("/deck/redo", RedoDeckHandler(svc))
}
