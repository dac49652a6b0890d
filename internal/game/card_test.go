package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountValue(t *testing.T) {
	tests := []struct {
		rank Rank
		want int
	}{
		{Two, 1}, {Three, 1}, {Four, 1}, {Five, 1}, {Six, 1},
		{Seven, 0}, {Eight, 0}, {Nine, 0},
		{Ten, -1}, {Jack, -1}, {Queen, -1}, {King, -1}, {Ace, -1},
	}

	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CountValue(NewCard(tt.rank, Hearts)))
		})
	}
}

func TestParseRank(t *testing.T) {
	r, err := ParseRank("t")
	require.NoError(t, err)
	assert.Equal(t, Ten, r)

	r, err = ParseRank("10")
	require.NoError(t, err)
	assert.Equal(t, Ten, r)

	r, err = ParseRank("a")
	require.NoError(t, err)
	assert.Equal(t, Ace, r)

	_, err = ParseRank("11")
	assert.Error(t, err)
}

func TestBuildShoeComposition(t *testing.T) {
	for _, decks := range []int{1, 6, 8} {
		shoe := BuildShoe(decks, rand.New(rand.NewSource(int64(decks))))
		require.Equal(t, decks*CardsPerDeck, shoe.Remaining())
		assert.Equal(t, decks*CardsPerDeck, shoe.Size())

		seen := make(map[Card]int)
		for shoe.Remaining() > 0 {
			c, err := shoe.Draw()
			require.NoError(t, err)
			seen[c]++
		}

		assert.Len(t, seen, CardsPerDeck)
		for c, n := range seen {
			assert.Equal(t, decks, n, "card %s", c)
		}
	}
}

func TestBuildShoeOrderVaries(t *testing.T) {
	a := BuildShoe(6, rand.New(rand.NewSource(1)))
	b := BuildShoe(6, rand.New(rand.NewSource(2)))
	assert.NotEqual(t, a.cards, b.cards)
}

func TestPlaceCutCard(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	size := 6 * CardsPerDeck
	seenLo, seenHi := false, false

	for i := 0; i < 5000; i++ {
		pos := PlaceCutCard(size, rng)
		require.GreaterOrEqual(t, pos, 224)
		require.LessOrEqual(t, pos, 243)
		seenLo = seenLo || pos == 224
		seenHi = seenHi || pos == 243
	}
	assert.True(t, seenLo, "lower bound never sampled")
	assert.True(t, seenHi, "upper bound never sampled")
}

func TestShoeDrawTracksCount(t *testing.T) {
	cards, err := Cards("2", "K", "5", "8", "A")
	require.NoError(t, err)
	shoe := NewStackedShoe(cards, rand.New(rand.NewSource(1)))

	want := 0
	for i, expected := range cards {
		c, err := shoe.Draw()
		require.NoError(t, err)
		assert.Equal(t, expected, c)
		assert.Equal(t, len(cards)-i-1, shoe.Remaining())
		want += CountValue(c)
		assert.Equal(t, want, shoe.RunningCount())
	}
	assert.Equal(t, -1, shoe.RunningCount())

	_, err = shoe.Draw()
	assert.ErrorIs(t, err, ErrShoeExhausted)
	assert.Equal(t, 0, shoe.Remaining())
	assert.True(t, shoe.CutCardReached())
}

func TestCutCardReached(t *testing.T) {
	shoe := BuildShoe(1, rand.New(rand.NewSource(3)))
	cut := shoe.CutCard()

	for shoe.Dealt() < cut-1 {
		_, err := shoe.Draw()
		require.NoError(t, err)
		require.False(t, shoe.CutCardReached())
	}
	_, err := shoe.Draw()
	require.NoError(t, err)
	assert.True(t, shoe.CutCardReached())
	assert.Equal(t, cut, shoe.CutCard())
}

func TestStackedShoeFixture(t *testing.T) {
	_, err := Cards("10", "X")
	assert.Error(t, err)

	cards, err := Cards("A", "T", "Q")
	require.NoError(t, err)
	assert.Equal(t, []Card{NewCard(Ace, Spades), NewCard(Ten, Spades), NewCard(Queen, Spades)}, cards)

	shoe := NewStackedShoe(cards, rand.New(rand.NewSource(1)))
	assert.Equal(t, 3, shoe.Size())
	assert.Equal(t, 1, shoe.Decks())
	assert.Zero(t, shoe.RunningCount())

	cards[0] = NewCard(Two, Hearts)
	c, err := shoe.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Ace, Spades), c, "the shoe keeps its own copy")
}
