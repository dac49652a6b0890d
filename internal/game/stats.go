package game

type Statistics struct {
	Correct          int
	Incorrect        int
	Wins             int
	Losses           int
	Pushes           int
	PlayerBlackjacks int
	DealerBlackjacks int
	Streak           int
	BestStreak       int
	Rounds           int
	CountCorrect     int
	CountIncorrect   int
}

// Accuracy is the share of correct decisions in percent.
func (s Statistics) Accuracy() float64 {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total) * 100
}

func (s *Statistics) judge(correct bool) {
	if correct {
		s.Correct++
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
		return
	}
	s.Incorrect++
	s.Streak = 0
}

// Merge adds another session's counters, used when aggregating simulations.
func (s *Statistics) Merge(o Statistics) {
	s.Correct += o.Correct
	s.Incorrect += o.Incorrect
	s.Wins += o.Wins
	s.Losses += o.Losses
	s.Pushes += o.Pushes
	s.PlayerBlackjacks += o.PlayerBlackjacks
	s.DealerBlackjacks += o.DealerBlackjacks
	s.Rounds += o.Rounds
	s.CountCorrect += o.CountCorrect
	s.CountIncorrect += o.CountIncorrect
	if o.BestStreak > s.BestStreak {
		s.BestStreak = o.BestStreak
	}
}

type EntryKind int

const (
	EntryAction EntryKind = iota
	EntryResult
	EntryCount
)

type Entry struct {
	Kind    EntryKind
	Text    string
	Correct bool
}

// History is stored oldest first and read newest first. It is never
// truncated; callers decide how much of it to show.
type History struct {
	entries []Entry
}

func (h *History) add(e Entry) {
	h.entries = append(h.entries, e)
}

func (h *History) Len() int {
	return len(h.entries)
}

// Recent returns up to n entries, newest first. n <= 0 returns everything.
func (h *History) Recent(n int) []Entry {
	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]Entry, n)
	last := len(h.entries) - 1
	for i := range out {
		out[i] = h.entries[last-i]
	}
	return out
}
