package game

import (
	"fmt"
	"math/rand"
)

type Mode int

const (
	ModeStrategy Mode = iota
	ModeCounting
)

func (m Mode) String() string {
	switch m {
	case ModeStrategy:
		return "strategy"
	case ModeCounting:
		return "counting"
	}
	return "unknown"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "strategy", "basic":
		return ModeStrategy, nil
	case "counting", "count":
		return ModeCounting, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

const (
	MaxAISeats        = 6
	DefaultCountEvery = 3
)

type Options struct {
	Mode    Mode
	Decks   int
	AISeats int
	// CountEvery is how many rounds pass between count prompts in
	// counting mode.
	CountEvery int
	Rand       *rand.Rand
}

// Session is everything a training session owns: the shoe with its
// running count, the round in progress, statistics and history. It is not
// safe for concurrent use; callers serialise access.
type Session struct {
	opts    Options
	rng     *rand.Rand
	shoe    *Shoe
	round   *Round
	pending []Step
	stats   Statistics
	history History

	roundsSincePrompt int
	countDue          bool
}

func NewSession(opts Options) *Session {
	if opts.Decks <= 0 {
		opts.Decks = DefaultDecks
	}
	if opts.AISeats < 0 {
		opts.AISeats = 0
	}
	if opts.AISeats > MaxAISeats {
		opts.AISeats = MaxAISeats
	}
	if opts.CountEvery <= 0 {
		opts.CountEvery = DefaultCountEvery
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand()
	}

	s := &Session{opts: opts, rng: rng}
	s.SelectMode(opts.Mode)
	return s
}

// NewSessionWithShoe starts a session on a prepared shoe.
func NewSessionWithShoe(opts Options, shoe *Shoe) *Session {
	s := NewSession(opts)
	s.shoe = shoe
	return s
}

// SelectMode starts the session over in the given mode: fresh shoe,
// zeroed statistics and an empty history.
func (s *Session) SelectMode(mode Mode) {
	s.opts.Mode = mode
	s.shoe = BuildShoe(s.opts.Decks, s.rng)
	s.round = nil
	s.pending = nil
	s.stats = Statistics{}
	s.history = History{}
	s.roundsSincePrompt = 0
	s.countDue = false
}

func (s *Session) Mode() Mode {
	return s.opts.Mode
}

func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) Shoe() *Shoe {
	return s.shoe
}

func (s *Session) Round() *Round {
	return s.round
}

func (s *Session) Stats() Statistics {
	return s.stats
}

func (s *Session) History() *History {
	return &s.history
}

func (s *Session) RunningCount() int {
	return s.shoe.RunningCount()
}

func (s *Session) TrueCount() float64 {
	return s.shoe.TrueCount()
}

func (s *Session) Phase() Phase {
	if s.round == nil {
		return PreDeal
	}
	return s.round.Phase
}

func (s *Session) cardsPerDeal() int {
	return 2 * (s.opts.AISeats + 2)
}

// rebuildShoe replaces the shoe, which also zeroes the running count.
func (s *Session) rebuildShoe() {
	s.shoe = BuildShoe(s.opts.Decks, s.rng)
}

// DealNewGame starts a round. A shoe whose cut card came out is replaced
// first.
func (s *Session) DealNewGame() error {
	if s.round != nil && s.round.Phase != End {
		return fmt.Errorf("%w: round still in progress", ErrInvalidAction)
	}
	if s.shoe.CutCardReached() || s.shoe.Remaining() < s.cardsPerDeal() {
		s.rebuildShoe()
	}

	r := newRound()
	seats := s.opts.AISeats + 1
	for seat := 0; seat < seats; seat++ {
		r.Hands = append(r.Hands, NewHand(seat))
	}

	// Two passes: every seat then the dealer, second dealer card face down.
	for pass := 0; pass < 2; pass++ {
		for _, h := range r.Hands {
			c, err := s.shoe.Draw()
			if err != nil {
				return fmt.Errorf("initial deal: %w", err)
			}
			h.add(c)
		}
		c, err := s.shoe.Draw()
		if err != nil {
			return fmt.Errorf("initial deal: %w", err)
		}
		r.Dealer.add(c)
	}
	r.Dealer.HoleHidden = true

	for _, h := range r.Hands {
		h.Natural = IsBlackjack(h.Cards)
	}
	r.Dealer.Natural = IsBlackjack(r.Dealer.Cards)

	s.round = r
	s.pending = nil

	trainee := r.Hands[0]
	if r.Dealer.Natural || trainee.Natural && seats == 1 {
		s.finish()
		return nil
	}

	r.Phase = PlayerTurn
	r.Active = 0
	s.advance()
	return nil
}

// AwaitingInput reports whether the trainee may act now.
func (s *Session) AwaitingInput() bool {
	if s.round == nil || s.round.Phase != PlayerTurn || len(s.pending) > 0 {
		return false
	}
	h := s.round.ActiveHand()
	return h != nil && h.IsTrainee() && h.Status == Playing && len(h.Cards) >= 2
}

// PlayerAction applies a trainee action given as H, S, D or P.
func (s *Session) PlayerAction(code string) (Judgement, error) {
	a, err := ParseAction(code)
	if err != nil {
		return Judgement{}, err
	}
	return s.Act(a)
}

type Judgement struct {
	Action      Action
	Recommended Action
	Correct     bool
	Text        string
}

// Act validates, judges and applies a trainee action. A rejected action
// leaves the session untouched.
func (s *Session) Act(a Action) (Judgement, error) {
	if s.round == nil {
		return Judgement{}, ErrNoRound
	}
	if !s.AwaitingInput() {
		return Judgement{}, fmt.Errorf("%w: not waiting for a decision", ErrInvalidAction)
	}

	r := s.round
	h := r.ActiveHand()
	if err := s.validate(h, a); err != nil {
		return Judgement{}, err
	}

	rec := Recommend(h.Cards, r.Dealer.UpCard())
	j := Judgement{Action: a, Recommended: rec, Correct: a == rec}
	j.Text = fmt.Sprintf("%s vs %s: %s", h.Score().Display, r.Dealer.UpCard().Rank, a)
	if !j.Correct {
		j.Text += fmt.Sprintf(" (basic strategy: %s)", rec)
	}
	s.stats.judge(j.Correct)
	s.history.add(Entry{Kind: EntryAction, Text: j.Text, Correct: j.Correct})

	s.apply(r.Active, a)
	if len(s.pending) == 0 {
		s.advance()
	}
	return j, nil
}

func (s *Session) validate(h *Hand, a Action) error {
	switch a {
	case Hit, Stand:
	case Double:
		if !h.CanDouble() {
			return fmt.Errorf("%w: double needs a two-card hand", ErrInvalidAction)
		}
	case Split:
		if !h.CanSplit() {
			return fmt.Errorf("%w: split needs a pair", ErrInvalidAction)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidAction, a)
	}

	need := 0
	switch a {
	case Hit, Double:
		need = 1
	case Split:
		need = 2
	}
	if s.shoe.Remaining() < need {
		return ErrShoeExhausted
	}
	return nil
}

// apply performs a validated action on hand i.
func (s *Session) apply(i int, a Action) {
	h := s.round.Hands[i]
	switch a {
	case Hit:
		s.drawInto(h)
	case Stand:
		h.freeze(Stood)
	case Double:
		h.Doubled = true
		s.drawInto(h)
		if h.Status == Playing {
			h.freeze(Stood)
		}
	case Split:
		if h.Cards[0].IsAce() {
			s.splitAces(i)
		} else {
			s.splitPair(i)
		}
	}
}

// splitAces gives each ace one more card and then stands both hands.
func (s *Session) splitAces(i int) {
	left, right := s.split(i)
	left.SplitAces = true
	right.SplitAces = true
	s.queue(Step{Kind: StepDealSplitAce, Hand: i}, Step{Kind: StepDealSplitAce, Hand: i + 1})
}

// splitPair deals both new hands their second card before play resumes.
func (s *Session) splitPair(i int) {
	s.split(i)
	s.queue(Step{Kind: StepDealSplitCard, Hand: i}, Step{Kind: StepDealSplitCard, Hand: i + 1})
}

func (s *Session) split(i int) (*Hand, *Hand) {
	parent := s.round.Hands[i]
	left := &Hand{Cards: []Card{parent.Cards[0]}, Seat: parent.Seat, FromSplit: true}
	right := &Hand{Cards: []Card{parent.Cards[1]}, Seat: parent.Seat, FromSplit: true}
	s.round.Hands[i] = left
	s.round.insertAfter(i, right)
	return left, right
}

func (s *Session) drawInto(h *Hand) bool {
	c, err := s.shoe.Draw()
	if err != nil {
		h.freeze(Stood)
		return false
	}
	h.add(c)
	return true
}

func (s *Session) queue(steps ...Step) {
	s.pending = append(s.pending, steps...)
}

// Pending returns the continuations still to run, in order.
func (s *Session) Pending() []Step {
	return append([]Step(nil), s.pending...)
}

func (s *Session) HasPending() bool {
	return len(s.pending) > 0
}

// Step runs the next pending continuation. It returns false when nothing
// was pending.
func (s *Session) Step() bool {
	if len(s.pending) == 0 {
		return false
	}
	st := s.pending[0]
	s.pending = s.pending[1:]

	r := s.round
	switch st.Kind {
	case StepDealSplitCard:
		s.drawInto(r.Hands[st.Hand])
	case StepDealSplitAce:
		h := r.Hands[st.Hand]
		s.drawInto(h)
		h.freeze(Stood)
	case StepAutoPlay:
		h := r.Hands[st.Hand]
		a := Recommend(h.Cards, r.Dealer.UpCard())
		if s.validate(h, a) != nil {
			a = Stand
		}
		s.apply(st.Hand, a)
	case StepDealerDraw:
		if !s.drawInto(&r.Dealer.Hand) || !r.Dealer.ShouldHit() {
			s.settle()
		} else {
			s.queue(Step{Kind: StepDealerDraw})
		}
	}

	if len(s.pending) == 0 && r.Phase == PlayerTurn {
		s.advance()
	}
	return true
}

// RunPending plays every continuation with no delay.
func (s *Session) RunPending() int {
	n := 0
	for s.Step() {
		n++
	}
	return n
}

// Abandon drops pending continuations. Each step is applied whole, so the
// shoe, count and statistics stay consistent at any point.
func (s *Session) Abandon() {
	s.pending = nil
	if s.round != nil && s.round.Phase != End {
		s.round = nil
	}
}

// advance moves to the next hand that still needs a decision and queues
// whatever has to happen before it can be played.
func (s *Session) advance() {
	r := s.round
	for r.Active < len(r.Hands) && r.Hands[r.Active].Status != Playing {
		r.Active++
	}

	if h := r.ActiveHand(); h != nil {
		switch {
		case len(h.Cards) < 2:
			s.queue(Step{Kind: StepDealSplitCard, Hand: r.Active})
		case !h.IsTrainee():
			s.queue(Step{Kind: StepAutoPlay, Hand: r.Active})
		}
		return
	}

	s.dealerTurn()
}

func (s *Session) dealerTurn() {
	r := s.round
	r.Dealer.reveal()
	if !r.needsDealer() || !r.Dealer.ShouldHit() {
		s.settle()
		return
	}
	r.Phase = DealerTurn
	s.queue(Step{Kind: StepDealerDraw})
}

// finish ends a round decided by naturals at the deal.
func (s *Session) finish() {
	s.round.Dealer.reveal()
	for _, h := range s.round.Hands {
		h.freeze(Stood)
	}
	s.settle()
}

// settle scores the round once. Doubled hands weigh two in the win and
// loss tallies but produce a single history entry.
func (s *Session) settle() {
	r := s.round
	if r.Settled {
		return
	}
	r.Settled = true
	r.Phase = End
	s.pending = nil

	dealerTotal := r.Dealer.Score().Total
	trainee := 0
	for i, h := range r.Hands {
		res := HandResult{
			Hand:    i,
			Seat:    h.Seat,
			Outcome: resolve(h, r.Dealer),
			Total:   h.Score().Total,
			Doubled: h.Doubled,
		}
		r.Results = append(r.Results, res)
		if !h.IsTrainee() {
			continue
		}

		weight := 1
		if h.Doubled {
			weight = 2
		}
		switch res.Outcome {
		case Win:
			s.stats.Wins += weight
		case BlackjackWin:
			s.stats.Wins += weight
			s.stats.PlayerBlackjacks++
		case Loss:
			s.stats.Losses += weight
		case DealerBlackjack:
			s.stats.Losses += weight
			s.stats.DealerBlackjacks++
		case Push:
			s.stats.Pushes++
		}

		res.Hand = trainee
		s.history.add(Entry{
			Kind:    EntryResult,
			Text:    res.Text(dealerTotal),
			Correct: res.Outcome == Win || res.Outcome == BlackjackWin || res.Outcome == Push,
		})
		trainee++
	}

	s.stats.Rounds++
	if s.opts.Mode == ModeCounting {
		s.roundsSincePrompt++
		if s.roundsSincePrompt >= s.opts.CountEvery {
			s.countDue = true
		}
	}
}

// CountDue reports that counting mode wants the trainee to state the count.
func (s *Session) CountDue() bool {
	return s.countDue
}

// ConfirmCountEntry checks a stated running count against the live one.
// It does not touch gameplay statistics or the decision streak.
func (s *Session) ConfirmCountEntry(value int) bool {
	actual := s.shoe.RunningCount()
	correct := value == actual
	if correct {
		s.stats.CountCorrect++
	} else {
		s.stats.CountIncorrect++
	}

	text := fmt.Sprintf("Count %+d", value)
	if !correct {
		text += fmt.Sprintf(" (actual %+d)", actual)
	}
	s.history.add(Entry{Kind: EntryCount, Text: text, Correct: correct})

	s.countDue = false
	s.roundsSincePrompt = 0
	return correct
}

// ConfirmCountText parses raw input before checking it.
func (s *Session) ConfirmCountText(text string) (bool, error) {
	v, err := ParseCountEntry(text)
	if err != nil {
		return false, err
	}
	return s.ConfirmCountEntry(v), nil
}
