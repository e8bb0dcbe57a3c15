package cards

import "slices"

func suitOrder(s Suit) int {
	for i, v := range Suits {
		if v == s {
			return i
		}
	}
	return len(Suits)
}

// Compare orders cards for a sorted pile: standard cards first by suit
// (Clubs < Spades < Hearts < Diamonds) then by descending value, jokers last
// by ascending id. It returns a negative number when a sorts before b.
func Compare(a, b Card) int {
	aj, bj := a.IsJoker(), b.IsJoker()
	switch {
	case aj && !bj:
		return 1
	case !aj && bj:
		return -1
	case aj && bj:
		return a.ID - b.ID
	}
	if d := suitOrder(a.Suit) - suitOrder(b.Suit); d != 0 {
		return d
	}
	return b.Value - a.Value
}

// Sorted returns a sorted copy of cs; cs itself is left untouched.
func Sorted(cs []Card) []Card {
	out := slices.Clone(cs)
	if out == nil {
		out = []Card{}
	}
	slices.SortStableFunc(out, Compare)
	return out
}
