package game

import (
	"fmt"
	"strings"
)

type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "Hit"
	case Stand:
		return "Stand"
	case Double:
		return "Double"
	case Split:
		return "Split"
	}
	return "Unknown"
}

// Code is the single-letter input code: H, S, D or P.
func (a Action) Code() string {
	switch a {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case Split:
		return "P"
	}
	return "?"
}

func ParseAction(code string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "H", "HIT":
		return Hit, nil
	case "S", "STAND":
		return Stand, nil
	case "D", "DOUBLE":
		return Double, nil
	case "P", "SPLIT":
		return Split, nil
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, code)
}

// Recommend returns the basic strategy play for a hand against the
// dealer's up card. Pairs are checked first, then soft and hard totals.
func Recommend(cards []Card, dealerUp Card) Action {
	up := dealerUp.Rank.UpValue()
	canDouble := len(cards) == 2

	if isPair(cards) {
		if a, ok := pairAction(cards[0].Rank, up); ok {
			return a
		}
	}

	score := Score(cards)
	if score.Soft {
		return softAction(score.Total, up, canDouble)
	}
	return hardAction(score.Total, up, canDouble)
}

func isPair(cards []Card) bool {
	return len(cards) == 2 && cards[0].Rank == cards[1].Rank
}

// pairAction returns false when the pair plays as its hard total.
func pairAction(r Rank, up int) (Action, bool) {
	switch r.Value() {
	case 1, 8:
		return Split, true
	case 9:
		if up == 7 || up == 10 || up == 11 {
			return Stand, true
		}
		return Split, true
	case 7:
		return splitIf(up <= 7), true
	case 6:
		return splitIf(up <= 6), true
	case 5:
		return 0, false
	case 4:
		return splitIf(up == 5 || up == 6), true
	case 2, 3:
		return splitIf(up <= 7), true
	case 10:
		return Stand, true
	}
	return 0, false
}

func splitIf(ok bool) Action {
	if ok {
		return Split
	}
	return Hit
}

func softAction(total, up int, canDouble bool) Action {
	switch {
	case total >= 20:
		return Stand
	case total == 19:
		if up == 6 && canDouble {
			return Double
		}
		return Stand
	case total == 18:
		switch {
		case up <= 6:
			return doubleOr(canDouble, Stand)
		case up <= 8:
			return Stand
		default:
			return Hit
		}
	case total == 17:
		return doubleVs(up >= 3 && up <= 6, canDouble)
	case total >= 15:
		return doubleVs(up >= 4 && up <= 6, canDouble)
	case total >= 13:
		return doubleVs(up >= 5 && up <= 6, canDouble)
	}
	return Hit
}

func hardAction(total, up int, canDouble bool) Action {
	switch {
	case total >= 17:
		return Stand
	case total >= 13:
		if up <= 6 {
			return Stand
		}
		return Hit
	case total == 12:
		if up >= 4 && up <= 6 {
			return Stand
		}
		return Hit
	case total == 11:
		return doubleVs(up != 11, canDouble)
	case total == 10:
		return doubleVs(up <= 9, canDouble)
	case total == 9:
		return doubleVs(up >= 3 && up <= 6, canDouble)
	}
	return Hit
}

func doubleVs(favourable, canDouble bool) Action {
	if favourable {
		return doubleOr(canDouble, Hit)
	}
	return Hit
}

func doubleOr(canDouble bool, fallback Action) Action {
	if canDouble {
		return Double
	}
	return fallback
}
