package game

import (
	"fmt"
	"strconv"
	"strings"
)

// TrueCount normalises the running count by decks remaining. It is 0
// when the shoe is empty.
func TrueCount(running, cardsRemaining, cardsPerDeck int) float64 {
	if cardsRemaining == 0 {
		return 0
	}
	if cardsPerDeck <= 0 {
		cardsPerDeck = CardsPerDeck
	}
	return float64(running) / (float64(cardsRemaining) / float64(cardsPerDeck))
}

// ParseCountEntry reads a trainee's running count guess.
func ParseCountEntry(text string) (int, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "+")
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCountEntry, text)
	}
	return v, nil
}
