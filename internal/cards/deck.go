package cards

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"time"
)

// NewStandardDeck returns the 52 standard cards, suit-major
// (Clubs, Spades, Hearts, Diamonds) and rank-minor (2 up to Ace).
func NewStandardDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Standard(s, r))
		}
	}
	return deck
}

// NewJokers returns count jokers with ids 1..count. The count is not
// validated here; count <= 0 yields an empty slice.
func NewJokers(count int) []Card {
	if count <= 0 {
		return []Card{}
	}
	jokers := make([]Card, 0, count)
	for i := 1; i <= count; i++ {
		jokers = append(jokers, Joker(i))
	}
	return jokers
}

// NewDeck is NewStandardDeck followed by NewJokers(jokers).
func NewDeck(jokers int) []Card {
	return append(NewStandardDeck(), NewJokers(jokers)...)
}

// RandSource yields uniform integers in [0, n). *math/rand/v2.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Shuffle is an in-place Fisher–Yates shuffle: i runs from the last index
// down to 1 and is swapped with a uniform j in [0, i].
func Shuffle(cards []Card, src RandSource) {
	if src == nil {
		src = CryptoSource{}
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// CryptoSource draws from crypto/rand. If crypto/rand fails it falls back
// to a time-seeded PCG so shuffling keeps working.
type CryptoSource struct{}

func (CryptoSource) IntN(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return fallbackSource().IntN(n)
	}
	return int(nBig.Int64())
}

func fallbackSource() *mrand.Rand {
	seed := uint64(time.Now().UnixNano())
	return mrand.New(mrand.NewPCG(seed, seed>>1|1))
}
