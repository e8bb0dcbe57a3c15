package cards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankValue(t *testing.T) {
	tests := []struct {
		rank Rank
		want int
	}{
		{Two, 2},
		{Ten, 10},
		{Jack, 11},
		{Queen, 12},
		{King, 13},
		{Ace, 14},
		{JokerRank, 0},
		{Rank("1"), 0},
		{Rank("11"), 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.rank), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rank.Value())
		})
	}
}

func TestCardPresentation(t *testing.T) {
	ace := Standard(Clubs, Ace)
	assert.Equal(t, "Clubs-Ace", ace.Key())
	assert.Equal(t, "Ace of Clubs", ace.Label())
	assert.Equal(t, "ace_of_clubs.png", ace.ImageName())
	assert.Equal(t, "AC", ace.String())
	assert.Equal(t, 14, ace.Points())

	ten := Standard(Hearts, Ten)
	assert.Equal(t, "10H", ten.String())
	assert.Equal(t, "10_of_hearts.png", ten.ImageName())

	red, black := Joker(1), Joker(2)
	assert.Equal(t, "joker-1", red.Key())
	assert.Equal(t, "Joker #2", black.Label())
	assert.Equal(t, "red_joker.png", red.ImageName())
	assert.Equal(t, "black_joker.png", black.ImageName())
	assert.Equal(t, 0, red.Points())
	assert.True(t, red.IsJoker())
}

func TestCardEquality(t *testing.T) {
	assert.Equal(t, Standard(Spades, Queen), Standard(Spades, Queen))
	assert.True(t, Joker(1) == Joker(1))
	assert.False(t, Joker(1) == Joker(2))
	assert.False(t, Standard(Spades, Queen) == Standard(Hearts, Queen))
}

func TestParseRoundTrip(t *testing.T) {
	for _, c := range NewDeck(2) {
		got, err := Parse(c.String())
		require.NoError(t, err, c.String())
		assert.Equal(t, c, got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "X", "1C", "11H", "AZ", "JK", "JK0", "JKx"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrInvalidCard, s)
	}
}

func TestPoints(t *testing.T) {
	pile := []Card{Standard(Clubs, Five), Joker(1), Standard(Diamonds, King)}
	assert.Equal(t, 18, Points(pile))
	assert.Equal(t, 0, Points(nil))
}

func TestCardJSON(t *testing.T) {
	b, err := json.Marshal([]Card{Standard(Hearts, Two), Joker(2)})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"standard","suit":"Hearts","rank":"2","value":2},
		{"type":"joker","rank":"Joker","id":2}
	]`, string(b))

	var back []Card
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []Card{Standard(Hearts, Two), Joker(2)}, back)
}

func TestCardJSONRejectsInvalidRecords(t *testing.T) {
	tests := map[string]string{
		"unknown type":   `{"type":"tarot","rank":"Fool"}`,
		"bad suit":       `{"type":"standard","suit":"Stars","rank":"2","value":2}`,
		"bad rank":       `{"type":"standard","suit":"Clubs","rank":"1","value":1}`,
		"value mismatch": `{"type":"standard","suit":"Clubs","rank":"King","value":10}`,
		"joker no id":    `{"type":"joker","rank":"Joker"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			var c Card
			assert.ErrorIs(t, json.Unmarshal([]byte(raw), &c), ErrInvalidCard)
		})
	}
}

func TestMarshalZeroCardFails(t *testing.T) {
	_, err := json.Marshal(Card{})
	assert.Error(t, err)
}
