package deck

import (
	"slices"

	"deck-of-cards-go/internal/cards"
)

// Snapshot is a copy of both piles at one instant. Snapshots never share
// backing arrays with the engine.
type Snapshot struct {
	Remaining []cards.Card `json:"remaining"`
	Drawn     []cards.Card `json:"drawn"`
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{Remaining: cloneCards(s.Remaining), Drawn: cloneCards(s.Drawn)}
}

// Len is the total number of cards across both piles.
func (s Snapshot) Len() int { return len(s.Remaining) + len(s.Drawn) }

func cloneCards(cs []cards.Card) []cards.Card {
	if cs == nil {
		return []cards.Card{}
	}
	return slices.Clone(cs)
}
