package game

import (
	"fmt"

	"github.com/google/uuid"
)

type Phase int

const (
	PreDeal Phase = iota
	PlayerTurn
	DealerTurn
	End
)

func (p Phase) String() string {
	switch p {
	case PreDeal:
		return "pre-deal"
	case PlayerTurn:
		return "player-turn"
	case DealerTurn:
		return "dealer-turn"
	case End:
		return "end"
	}
	return "unknown"
}

type Outcome int

const (
	Win Outcome = iota
	Loss
	Push
	BlackjackWin
	DealerBlackjack
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	case Push:
		return "Push"
	case BlackjackWin:
		return "Blackjack!"
	case DealerBlackjack:
		return "Dealer blackjack"
	}
	return "Unknown"
}

type HandResult struct {
	Hand    int
	Seat    int
	Outcome Outcome
	Total   int
	Doubled bool
}

func (r HandResult) Text(dealerTotal int) string {
	return fmt.Sprintf("Hand %d: %d vs %d: %s", r.Hand+1, r.Total, dealerTotal, r.Outcome)
}

// StepKind names a pending continuation. Each step draws at most one card.
type StepKind int

const (
	StepDealSplitCard StepKind = iota
	StepDealSplitAce
	StepAutoPlay
	StepDealerDraw
)

func (k StepKind) String() string {
	switch k {
	case StepDealSplitCard:
		return "deal-split-card"
	case StepDealSplitAce:
		return "deal-split-ace"
	case StepAutoPlay:
		return "auto-play"
	case StepDealerDraw:
		return "dealer-draw"
	}
	return "unknown"
}

type Step struct {
	Kind StepKind
	Hand int
}

type Round struct {
	ID      string
	Hands   []*Hand
	Active  int
	Dealer  *DealerHand
	Phase   Phase
	Settled bool
	Results []HandResult
}

func newRound() *Round {
	return &Round{
		ID:     uuid.NewString(),
		Hands:  make([]*Hand, 0, 4),
		Dealer: &DealerHand{Hand: *NewHand(-1)},
		Phase:  PreDeal,
	}
}

func (r *Round) ActiveHand() *Hand {
	if r.Active < 0 || r.Active >= len(r.Hands) {
		return nil
	}
	return r.Hands[r.Active]
}

// TraineeHands returns the hands of the trainee seat in table order.
func (r *Round) TraineeHands() []*Hand {
	var out []*Hand
	for _, h := range r.Hands {
		if h.IsTrainee() {
			out = append(out, h)
		}
	}
	return out
}

// needsDealer reports whether any hand is still waiting on the dealer's total.
func (r *Round) needsDealer() bool {
	for _, h := range r.Hands {
		if h.Status == Stood && !h.Natural {
			return true
		}
	}
	return false
}

func (r *Round) insertAfter(i int, h *Hand) {
	r.Hands = append(r.Hands, nil)
	copy(r.Hands[i+2:], r.Hands[i+1:])
	r.Hands[i+1] = h
}

// resolve compares a finished hand against the dealer.
func resolve(h *Hand, dealer *DealerHand) Outcome {
	dealerNatural := dealer.Natural
	switch {
	case h.Natural && dealerNatural:
		return Push
	case h.Natural:
		return BlackjackWin
	case dealerNatural:
		return DealerBlackjack
	case h.Status == Bust:
		return Loss
	}

	player := h.Score().Total
	dealerTotal := dealer.Score().Total
	switch {
	case dealerTotal > 21:
		return Win
	case player > dealerTotal:
		return Win
	case player < dealerTotal:
		return Loss
	}
	return Push
}
