package cli

import (
	"fmt"

	"bjtrainer/internal/game"
)

// Picker chooses the trainee's action for a hand against the dealer's up
// card.
type Picker func(cards []game.Card, up game.Card) game.Action

// PlayRound deals one round and plays it to the end with no pacing, using
// pick for the trainee seat. An action the table refuses falls back to the
// basic strategy play, then to standing.
func PlayRound(s *game.Session, pick Picker) error {
	if err := s.DealNewGame(); err != nil {
		return err
	}

	for s.Phase() != game.End {
		if s.RunPending() > 0 {
			continue
		}
		if !s.AwaitingInput() {
			return fmt.Errorf("round %s stalled in %s", s.Round().ID, s.Phase())
		}

		r := s.Round()
		h := r.ActiveHand()
		up := r.Dealer.UpCard()
		if _, err := s.Act(pick(h.Cards, up)); err == nil {
			continue
		}
		if _, err := s.Act(game.Recommend(h.Cards, up)); err == nil {
			continue
		}
		if _, err := s.Act(game.Stand); err != nil {
			return err
		}
	}
	return nil
}
