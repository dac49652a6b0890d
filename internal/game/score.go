package game

import "strconv"

type HandScore struct {
	Total     int
	Soft      bool
	Blackjack bool
	Display   string
}

// Score computes the best total of a hand. An ace is promoted to 11 only
// when that does not bust, and a two-card 21 is a natural.
func Score(cards []Card) HandScore {
	sum := 0
	aces := 0

	for _, c := range cards {
		if c.IsAce() {
			aces++
			continue
		}
		sum += c.Rank.Value()
	}

	if aces == 0 {
		return HandScore{Total: sum, Display: strconv.Itoa(sum)}
	}

	low := sum + aces
	high := low + 10

	switch {
	case high == 21 && len(cards) == 2:
		return HandScore{Total: 21, Blackjack: true, Display: "Blackjack"}
	case high > 21:
		return HandScore{Total: low, Display: strconv.Itoa(low)}
	default:
		return HandScore{
			Total:   high,
			Soft:    true,
			Display: strconv.Itoa(low) + " / " + strconv.Itoa(high),
		}
	}
}

func IsBlackjack(cards []Card) bool {
	return Score(cards).Blackjack
}

func IsBust(cards []Card) bool {
	return Score(cards).Total > 21
}
