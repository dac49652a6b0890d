package game

import (
	"fmt"
	"strings"
)

type Suit int

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

var suits = []Suit{Spades, Clubs, Hearts, Diamonds}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	}
	return "?"
}

func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankNames = map[Rank]string{
	Ace: "A", Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

// Value is the scoring value with aces low and face cards worth 10.
func (r Rank) Value() int {
	if r >= Ten {
		return 10
	}
	return int(r)
}

// UpValue is the value used to index the strategy table: aces count 11.
func (r Rank) UpValue() int {
	if r == Ace {
		return 11
	}
	return r.Value()
}

type Card struct {
	Rank Rank
	Suit Suit
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// CountValue returns the Hi-Lo tag of the card.
func CountValue(c Card) int {
	switch {
	case c.Rank >= Two && c.Rank <= Six:
		return 1
	case c.Rank >= Seven && c.Rank <= Nine:
		return 0
	default:
		return -1
	}
}

// ParseRank accepts "A", "2".."10", "T", "J", "Q", "K" (case insensitive).
func ParseRank(s string) (Rank, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "T" {
		return Ten, nil
	}
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// Cards builds spade cards from rank names. Test fixture, used with
// NewStackedShoe to script a deal.
func Cards(ranks ...string) ([]Card, error) {
	out := make([]Card, 0, len(ranks))
	for _, name := range ranks {
		r, err := ParseRank(name)
		if err != nil {
			return nil, err
		}
		out = append(out, NewCard(r, Spades))
	}
	return out, nil
}

func formatCards(cards []Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}
