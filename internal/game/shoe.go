package game

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	CardsPerDeck = 52
	DefaultDecks = 6

	cutCardMin = 0.72
	cutCardMax = 0.78
)

// Shoe is a multi-deck shoe dealt from the front. It owns the Hi-Lo
// running count so a draw and its count update happen together.
type Shoe struct {
	cards   []Card
	size    int
	decks   int
	cutCard int
	running int
	rng     *rand.Rand
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func BuildShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks <= 0 {
		numDecks = DefaultDecks
	}
	if rng == nil {
		rng = NewRand()
	}

	s := &Shoe{
		cards: make([]Card, 0, numDecks*CardsPerDeck),
		decks: numDecks,
		rng:   rng,
	}

	for i := 0; i < numDecks; i++ {
		for _, suit := range suits {
			for r := Ace; r <= King; r++ {
				s.cards = append(s.cards, NewCard(r, suit))
			}
		}
	}

	s.Shuffle()
	s.size = len(s.cards)
	s.cutCard = PlaceCutCard(s.size, rng)
	return s
}

// NewStackedShoe deals the given cards in order instead of a shuffled
// shoe. It is a fixture for scripted scenarios in tests across packages;
// nothing outside tests builds one. The cut card is placed as for a real
// shoe of the same size.
func NewStackedShoe(cards []Card, rng *rand.Rand) *Shoe {
	if rng == nil {
		rng = NewRand()
	}
	s := &Shoe{
		cards: append([]Card(nil), cards...),
		size:  len(cards),
		decks: (len(cards) + CardsPerDeck - 1) / CardsPerDeck,
		rng:   rng,
	}
	s.cutCard = PlaceCutCard(s.size, rng)
	return s
}

// Shuffle is a Fisher-Yates shuffle over the remaining cards.
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// PlaceCutCard picks a position in [floor(.72n), floor(.78n)] counted
// from the draw end.
func PlaceCutCard(shoeSize int, rng *rand.Rand) int {
	lo := int(float64(shoeSize) * cutCardMin)
	hi := int(float64(shoeSize) * cutCardMax)
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	s.running += CountValue(card)
	return card, nil
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}

func (s *Shoe) Size() int {
	return s.size
}

func (s *Shoe) Decks() int {
	return s.decks
}

func (s *Shoe) CutCard() int {
	return s.cutCard
}

func (s *Shoe) Dealt() int {
	return s.size - len(s.cards)
}

// CutCardReached reports that the current round is the last of this shoe.
// Deals past the cut card still complete; only the next deal rebuilds.
func (s *Shoe) CutCardReached() bool {
	return s.Dealt() >= s.cutCard || len(s.cards) == 0
}

func (s *Shoe) RunningCount() int {
	return s.running
}

func (s *Shoe) TrueCount() float64 {
	return TrueCount(s.running, len(s.cards), CardsPerDeck)
}

func (s *Shoe) DecksRemaining() float64 {
	return float64(len(s.cards)) / CardsPerDeck
}

type ShoeSummary struct {
	Decks          int
	Size           int
	Remaining      int
	CutCard        int
	CutCardReached bool
}

func (s *Shoe) Summary() ShoeSummary {
	return ShoeSummary{
		Decks:          s.decks,
		Size:           s.size,
		Remaining:      len(s.cards),
		CutCard:        s.cutCard,
		CutCardReached: s.CutCardReached(),
	}
}

func (s ShoeSummary) String() string {
	return fmt.Sprintf("%d/%d cards", s.Remaining, s.Size)
}
