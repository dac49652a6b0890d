package game

type HandView struct {
	Seat    int
	Cards   []Card
	Status  HandStatus
	Total   int
	Soft    bool
	Display string
	Doubled bool
	Active  bool
}

type DealerView struct {
	Cards      []Card
	HoleHidden bool
	Total      int
	Display    string
}

// Snapshot is a read-only copy of what a presentation layer renders.
type Snapshot struct {
	Mode          Mode
	Phase         Phase
	RoundID       string
	Shoe          ShoeSummary
	Hands         []HandView
	Dealer        DealerView
	Results       []HandResult
	RunningCount  int
	TrueCount     float64
	Stats         Statistics
	History       []Entry
	Pending       int
	AwaitingInput bool
	CanDouble     bool
	CanSplit      bool
	CountDue      bool
}

// Snapshot captures the session state. historyLimit bounds the history
// copy; zero or less copies all of it.
func (s *Session) Snapshot(historyLimit int) Snapshot {
	snap := Snapshot{
		Mode:          s.opts.Mode,
		Phase:         s.Phase(),
		Shoe:          s.shoe.Summary(),
		RunningCount:  s.shoe.RunningCount(),
		TrueCount:     s.shoe.TrueCount(),
		Stats:         s.stats,
		History:       s.history.Recent(historyLimit),
		Pending:       len(s.pending),
		AwaitingInput: s.AwaitingInput(),
		CountDue:      s.countDue,
	}

	r := s.round
	if r == nil {
		return snap
	}

	snap.RoundID = r.ID
	snap.Results = append([]HandResult(nil), r.Results...)
	for i, h := range r.Hands {
		score := h.Score()
		snap.Hands = append(snap.Hands, HandView{
			Seat:    h.Seat,
			Cards:   append([]Card(nil), h.Cards...),
			Status:  h.Status,
			Total:   score.Total,
			Soft:    score.Soft,
			Display: score.Display,
			Doubled: h.Doubled,
			Active:  i == r.Active && r.Phase == PlayerTurn,
		})
	}

	visible := r.Dealer.Visible()
	dealerScore := Score(visible)
	snap.Dealer = DealerView{
		Cards:      append([]Card(nil), visible...),
		HoleHidden: r.Dealer.HoleHidden,
		Total:      dealerScore.Total,
		Display:    dealerScore.Display,
	}

	if snap.AwaitingInput {
		h := r.ActiveHand()
		snap.CanDouble = h.CanDouble()
		snap.CanSplit = h.CanSplit()
	}
	return snap
}
