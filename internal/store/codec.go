package store

import (
	"encoding/json"
	"fmt"

	"deck-of-cards-go/internal/cards"
	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/models"
)

// DefaultKey is the logical key the deck record is stored under.
const DefaultKey = "deck-of-cards-state"

type record struct {
	Remaining []cards.Card `json:"remaining"`
	Drawn     []cards.Card `json:"drawn"`
	// Deck is the older name for Remaining; read but never written.
	Deck []cards.Card `json:"deck,omitempty"`
}

// Encode serializes both piles as {"remaining": [...], "drawn": [...]}.
func Encode(s deck.Snapshot) ([]byte, error) {
	s = s.Clone()
	return json.Marshal(record{Remaining: s.Remaining, Drawn: s.Drawn})
}

// Decode is the inverse of Encode. Any malformed record, including an
// unknown card variant, yields models.ErrCorruptState.
func Decode(b []byte) (deck.Snapshot, error) {
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return deck.Snapshot{}, fmt.Errorf("%w: %v", models.ErrCorruptState, err)
	}
	if rec.Remaining == nil && rec.Deck != nil {
		rec.Remaining = rec.Deck
	}
	return deck.Snapshot{Remaining: rec.Remaining, Drawn: rec.Drawn}.Clone(), nil
}
