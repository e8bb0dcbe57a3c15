package handlers

import (
	"errors"
	"io"
	"net/http"

	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/models"
	"deck-of-cards-go/internal/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// MaxJokers is the largest joker count the API accepts on reset.
const MaxJokers = 2

type resetRequest struct {
	Jokers int `json:"jokers"`
}

type drawRequest struct {
	Count *int `json:"count"`
}

type historyResponse struct {
	Undo      []deck.Entry `json:"undo"`
	RedoDepth int          `json:"redo_depth"`
}

// bindOptionalJSON decodes the body into dst; an empty body leaves dst untouched.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return models.ErrInvalidJSON
	}
	return nil
}

func writeView(c *gin.Context, v deck.View) {
	c.JSON(http.StatusOK, v)
}

func GetDeckHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeView(c, svc.State())
	}
}

func ResetDeckHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			writeAPIError(c, err)
			return
		}
		if req.Jokers < 0 || req.Jokers > MaxJokers {
			writeAPIError(c, models.ErrInvalidJokerCount)
			return
		}
		_, span := tracing.StartSpan(c.Request.Context(), "deck.reset", attribute.Int("deck.jokers", req.Jokers))
		defer span.End()

		v := svc.Reset(req.Jokers)
		span.SetAttributes(attribute.Int("deck.remaining", len(v.Remaining)))
		writeView(c, v)
	}
}

func ShuffleDeckHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "deck.shuffle")
		defer span.End()
		writeView(c, svc.Shuffle())
	}
}

// DrawDeckHandler draws {count} cards. count defaults to 1, count <= 0 is a
// no-op returning the unchanged view, and counts above the remaining size
// draw everything.
func DrawDeckHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req drawRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			writeAPIError(c, err)
			return
		}
		count := 1
		if req.Count != nil {
			count = *req.Count
		}
		_, span := tracing.StartSpan(c.Request.Context(), "deck.draw", attribute.Int("deck.count", count))
		defer span.End()

		v := svc.Draw(count)
		span.SetAttributes(
			attribute.Int("deck.drawn", len(v.Drawn)),
			attribute.Int("deck.points", v.Points),
		)
		writeView(c, v)
	}
}

func SortDeckHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "deck.sort")
		defer span.End()
		writeView(c, svc.SortDrawn())
	}
}

func UndoDeckHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "deck.undo")
		defer span.End()
		writeView(c, svc.Undo())
	}
}

func RedoDeckHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "deck.redo")
		defer span.End()
		writeView(c, svc.Redo())
	}
}

func DeckHistoryHandler(svc *deck.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, redo := svc.History()
		if entries == nil {
			entries = []deck.Entry{}
		}
		c.JSON(http.StatusOK, historyResponse{Undo: entries, RedoDepth: redo})
	}
}
