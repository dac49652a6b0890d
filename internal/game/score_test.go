package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		ranks []string
		want  HandScore
	}{
		{"hard 16", []string{"10", "6"}, HandScore{Total: 16, Display: "16"}},
		{"soft 17", []string{"A", "6"}, HandScore{Total: 17, Soft: true, Display: "7 / 17"}},
		{"natural", []string{"A", "10"}, HandScore{Total: 21, Blackjack: true, Display: "Blackjack"}},
		{"natural with face", []string{"K", "A"}, HandScore{Total: 21, Blackjack: true, Display: "Blackjack"}},
		{"ace forced low", []string{"A", "9", "Q"}, HandScore{Total: 20, Display: "20"}},
		{"pair of aces", []string{"A", "A"}, HandScore{Total: 12, Soft: true, Display: "2 / 12"}},
		{"three card 21", []string{"A", "5", "5"}, HandScore{Total: 21, Soft: true, Display: "11 / 21"}},
		{"many aces", []string{"A", "A", "A", "8"}, HandScore{Total: 21, Soft: true, Display: "11 / 21"}},
		{"bust", []string{"K", "Q", "5"}, HandScore{Total: 25, Display: "25"}},
		{"empty", nil, HandScore{Total: 0, Display: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := Cards(tt.ranks...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Score(cards))
		})
	}
}

func TestScoreIgnoresSuit(t *testing.T) {
	a := []Card{NewCard(Ace, Hearts), NewCard(Six, Clubs)}
	b := []Card{NewCard(Ace, Spades), NewCard(Six, Diamonds)}
	assert.Equal(t, Score(a), Score(b))
}
