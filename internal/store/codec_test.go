package store

import (
	"testing"

	"deck-of-cards-go/internal/cards"
	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() deck.Snapshot {
	return deck.Snapshot{
		Remaining: []cards.Card{cards.Standard(cards.Diamonds, cards.Ten), cards.Joker(2)},
		Drawn:     []cards.Card{cards.Joker(1), cards.Standard(cards.Spades, cards.Jack)},
	}
}

func TestEncodeShape(t *testing.T) {
	b, err := Encode(deck.Snapshot{Drawn: []cards.Card{cards.Joker(1)}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"remaining":[],"drawn":[{"type":"joker","rank":"Joker","id":1}]}`, string(b))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := sampleSnapshot()
	b, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeLegacyDeckField(t *testing.T) {
	out, err := Decode([]byte(`{"deck":[{"type":"standard","suit":"Clubs","rank":"Ace","value":14}],"drawn":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []cards.Card{cards.Standard(cards.Clubs, cards.Ace)}, out.Remaining)
	assert.Empty(t, out.Drawn)
}

func TestDecodeCorrupt(t *testing.T) {
	for _, raw := range []string{
		`{not json`,
		`{"remaining":[{"type":"wild"}],"drawn":[]}`,
		`{"remaining":"nope"}`,
	} {
		_, err := Decode([]byte(raw))
		assert.ErrorIs(t, err, models.ErrCorruptState, raw)
	}
}
