package cards

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindStandard Kind = "standard"
	KindJoker    Kind = "joker"
)

type Suit string

const (
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
)

// Suits lists the suits in canonical deck and sort order.
var Suits = []Suit{Clubs, Spades, Hearts, Diamonds}

type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "Jack"
	Queen Rank = "Queen"
	King  Rank = "King"
	Ace   Rank = "Ace"

	// JokerRank is the rank carried by every joker record.
	JokerRank Rank = "Joker"
)

// Ranks lists the standard ranks from lowest to highest.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Value returns the point value of a standard rank (2..14), or 0 for anything else.
func (r Rank) Value() int {
	switch r {
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ace:
		return 14
	}
	n, err := strconv.Atoi(string(r))
	if err != nil || n < 2 || n > 10 {
		return 0
	}
	return n
}

func (s Suit) valid() bool {
	switch s {
	case Clubs, Spades, Hearts, Diamonds:
		return true
	}
	return false
}

// Card is either a standard card (Suit, Rank, Value) or a joker (ID).
// Kind is the discriminant; fields of the other variant are zero.
// Cards are values and compare with ==.
type Card struct {
	Kind  Kind
	Suit  Suit
	Rank  Rank
	Value int
	ID    int
}

// Standard builds a standard card with the value implied by its rank.
func Standard(s Suit, r Rank) Card {
	return Card{Kind: KindStandard, Suit: s, Rank: r, Value: r.Value()}
}

// Joker builds a joker with the given id.
func Joker(id int) Card {
	return Card{Kind: KindJoker, Rank: JokerRank, ID: id}
}

func (c Card) IsJoker() bool { return c.Kind == KindJoker }

// Points is the card's contribution to a pile total; jokers are worth 0.
func (c Card) Points() int {
	if c.Kind != KindStandard {
		return 0
	}
	return c.Value
}

// Key is a stable identity key, unique within one deck.
func (c Card) Key() string {
	if c.IsJoker() {
		return "joker-" + strconv.Itoa(c.ID)
	}
	return string(c.Suit) + "-" + string(c.Rank)
}

func (c Card) Label() string {
	if c.IsJoker() {
		return fmt.Sprintf("Joker #%d", c.ID)
	}
	return string(c.Rank) + " of " + string(c.Suit)
}

// ImageName is the asset file name a renderer uses for the card face.
func (c Card) ImageName() string {
	if c.IsJoker() {
		if c.ID == 1 {
			return "red_joker.png"
		}
		return "black_joker.png"
	}
	return strings.ToLower(string(c.Rank)) + "_of_" + strings.ToLower(string(c.Suit)) + ".png"
}

func (c Card) String() string {
	if c.IsJoker() {
		return "JK" + strconv.Itoa(c.ID)
	}
	var r string
	switch c.Rank {
	case Jack, Queen, King, Ace:
		r = string(c.Rank)[:1]
	default:
		r = string(c.Rank)
	}
	return r + string(c.Suit)[:1]
}

// Parse reads the short form produced by Card.String ("AC", "10H", "JK2").
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if strings.HasPrefix(s, "JK") {
		id, err := strconv.Atoi(s[2:])
		if err != nil || id < 1 {
			return Card{}, fmt.Errorf("%w: joker %q", ErrInvalidCard, s)
		}
		return Joker(id), nil
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	var suit Suit
	switch s[len(s)-1] {
	case 'C':
		suit = Clubs
	case 'S':
		suit = Spades
	case 'H':
		suit = Hearts
	case 'D':
		suit = Diamonds
	default:
		return Card{}, fmt.Errorf("%w: suit in %q", ErrInvalidCard, s)
	}
	var rank Rank
	switch rs := s[:len(s)-1]; rs {
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		rank = Rank(rs)
		if rank.Value() == 0 {
			return Card{}, fmt.Errorf("%w: rank in %q", ErrInvalidCard, s)
		}
	}
	return Standard(suit, rank), nil
}

// Points sums the point values of cs.
func Points(cs []Card) int {
	total := 0
	for _, c := range cs {
		total += c.Points()
	}
	return total
}

type cardRecord struct {
	Type  Kind `json:"type"`
	Suit  Suit `json:"suit,omitempty"`
	Rank  Rank `json:"rank"`
	Value *int `json:"value,omitempty"`
	ID    *int `json:"id,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	rec := cardRecord{Type: c.Kind, Rank: c.Rank}
	switch c.Kind {
	case KindStandard:
		v := c.Value
		rec.Suit = c.Suit
		rec.Value = &v
	case KindJoker:
		id := c.ID
		rec.ID = &id
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidCard, c.Kind)
	}
	return json.Marshal(rec)
}

func (c *Card) UnmarshalJSON(b []byte) error {
	var rec cardRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	switch rec.Type {
	case KindStandard:
		if !rec.Suit.valid() {
			return fmt.Errorf("%w: suit %q", ErrInvalidCard, rec.Suit)
		}
		want := rec.Rank.Value()
		if want == 0 {
			return fmt.Errorf("%w: rank %q", ErrInvalidCard, rec.Rank)
		}
		if rec.Value != nil && *rec.Value != want {
			return fmt.Errorf("%w: %s of %s has value %d", ErrInvalidCard, rec.Rank, rec.Suit, *rec.Value)
		}
		*c = Standard(rec.Suit, rec.Rank)
	case KindJoker:
		if rec.ID == nil {
			return fmt.Errorf("%w: joker without id", ErrInvalidCard)
		}
		*c = Joker(*rec.ID)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCard, rec.Type)
	}
	return nil
}
