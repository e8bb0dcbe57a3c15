package handlers

import (
	"deck-of-cards-go/internal/cards"
	"deck-of-cards-go/internal/deck"
	ws "deck-of-cards-go/pkg/websocket"
)

// DeckUpdate is the payload of a "deck_update" websocket message.
type DeckUpdate struct {
	Pile   deck.Pile    `json:"pile"`
	Cards  []cards.Card `json:"cards"`
	Points int          `json:"points"`
}

// BroadcastDeckEvents forwards every engine event to the current hub and
// returns the unsubscribe func. Points always reflect the drawn pile.
func BroadcastDeckEvents(svc *deck.Service, hubProvider func() (*ws.Hub, bool)) func() {
	points := svc.State().Points
	return svc.Subscribe(func(ev deck.Event) {
		if ev.Pile == deck.PileDrawn {
			points = cards.Points(ev.Cards)
		}
		hub, ok := hubProvider()
		if !ok {
			return
		}
		hub.Broadcast("deck_update", DeckUpdate{Pile: ev.Pile, Cards: ev.Cards, Points: points})
	})
}
