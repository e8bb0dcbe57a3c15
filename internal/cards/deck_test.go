package cards

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource returns the queued values in order and records every bound it was asked for.
type scriptedSource struct {
	values []int
	bounds []int
}

func (s *scriptedSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func TestNewStandardDeck(t *testing.T) {
	deck := NewStandardDeck()
	require.Len(t, deck, 52)

	seen := map[string]bool{}
	for _, c := range deck {
		assert.False(t, seen[c.Key()], "duplicate card %s", c.Key())
		seen[c.Key()] = true
		assert.Equal(t, KindStandard, c.Kind)
	}

	assert.Equal(t, Standard(Clubs, Two), deck[0])
	assert.Equal(t, Standard(Clubs, Ace), deck[12])
	assert.Equal(t, Standard(Spades, Two), deck[13])
	assert.Equal(t, Standard(Diamonds, Ace), deck[51])
}

func TestNewJokers(t *testing.T) {
	assert.Empty(t, NewJokers(0))
	assert.Empty(t, NewJokers(-3))
	assert.Equal(t, []Card{Joker(1), Joker(2)}, NewJokers(2))

	many := NewJokers(5)
	require.Len(t, many, 5)
	assert.Equal(t, 5, many[4].ID)
}

func TestNewDeckAppendsJokers(t *testing.T) {
	deck := NewDeck(2)
	require.Len(t, deck, 54)
	assert.Equal(t, Joker(1), deck[52])
	assert.Equal(t, Joker(2), deck[53])
}

func TestShuffleIterationBounds(t *testing.T) {
	a, b, c := Standard(Clubs, Two), Standard(Clubs, Three), Standard(Clubs, Four)
	pile := []Card{a, b, c}
	src := &scriptedSource{values: []int{0, 0}}

	Shuffle(pile, src)

	assert.Equal(t, []int{3, 2}, src.bounds)
	assert.Equal(t, []Card{b, c, a}, pile)
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	first := NewDeck(1)
	second := NewDeck(1)
	Shuffle(first, rand.New(rand.NewPCG(7, 11)))
	Shuffle(second, rand.New(rand.NewPCG(7, 11)))
	assert.Equal(t, first, second)
	assert.NotEqual(t, NewDeck(1), first)
	assert.ElementsMatch(t, NewDeck(1), first)
}

func TestShuffleDefaultSource(t *testing.T) {
	pile := NewStandardDeck()
	Shuffle(pile, nil)
	assert.ElementsMatch(t, NewStandardDeck(), pile)

	Shuffle([]Card{}, nil)
	single := []Card{Joker(1)}
	Shuffle(single, nil)
	assert.Equal(t, []Card{Joker(1)}, single)
}

func TestCryptoSourceRange(t *testing.T) {
	src := CryptoSource{}
	for i := 0; i < 200; i++ {
		v := src.IntN(4)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 4)
	}
}
