package game

type HandStatus int

const (
	Playing HandStatus = iota
	Stood
	Bust
)

func (s HandStatus) String() string {
	switch s {
	case Playing:
		return "playing"
	case Stood:
		return "stood"
	case Bust:
		return "bust"
	}
	return "unknown"
}

// TraineeSeat is the seat driven by user input; other seats auto-play.
const TraineeSeat = 0

type Hand struct {
	Cards     []Card
	Status    HandStatus
	Seat      int
	Doubled   bool
	FromSplit bool
	SplitAces bool
	Natural   bool
}

func NewHand(seat int) *Hand {
	return &Hand{
		Cards: make([]Card, 0, 6),
		Seat:  seat,
	}
}

func (h *Hand) Score() HandScore {
	return Score(h.Cards)
}

// add appends a card and freezes the hand on 21 or a bust.
func (h *Hand) add(c Card) {
	h.Cards = append(h.Cards, c)
	if h.Status != Playing {
		return
	}
	total := h.Score().Total
	switch {
	case total > 21:
		h.freeze(Bust)
	case total == 21:
		h.freeze(Stood)
	}
}

// freeze moves the hand out of Playing. Frozen hands never go back.
func (h *Hand) freeze(status HandStatus) {
	if h.Status != Playing || status == Playing {
		return
	}
	h.Status = status
}

func (h *Hand) CanDouble() bool {
	return h.Status == Playing && len(h.Cards) == 2
}

func (h *Hand) CanSplit() bool {
	return h.Status == Playing && isPair(h.Cards)
}

func (h *Hand) IsTrainee() bool {
	return h.Seat == TraineeSeat
}

func (h *Hand) String() string {
	return formatCards(h.Cards) + " (" + h.Score().Display + ")"
}

type DealerHand struct {
	Hand
	HoleHidden bool
}

func (d *DealerHand) UpCard() Card {
	if len(d.Cards) == 0 {
		return Card{}
	}
	return d.Cards[0]
}

// Visible returns the cards a player at the table can see.
func (d *DealerHand) Visible() []Card {
	if d.HoleHidden && len(d.Cards) > 1 {
		return d.Cards[:1]
	}
	return d.Cards
}

func (d *DealerHand) reveal() {
	d.HoleHidden = false
}

// ShouldHit applies the hit-soft-17 rule.
func (d *DealerHand) ShouldHit() bool {
	s := d.Score()
	return s.Total < 17 || (s.Total == 17 && s.Soft)
}
