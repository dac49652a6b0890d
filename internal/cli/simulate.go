package cli

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"bjtrainer/internal/game"
)

const maxBucket = 5

type SimOptions struct {
	Workers int
	Rounds  int
	Decks   int
	AISeats int
	// Mistakes is the chance in [0,1] that the trainee seat deviates from
	// basic strategy on a decision.
	Mistakes float64
	Seed     int64
}

// Tally is what the trainee seat got out of rounds started at one true
// count.
type Tally struct {
	Rounds int
	Wins   int
	Losses int
	Pushes int
}

func (t Tally) add(o Tally) Tally {
	return Tally{
		Rounds: t.Rounds + o.Rounds,
		Wins:   t.Wins + o.Wins,
		Losses: t.Losses + o.Losses,
		Pushes: t.Pushes + o.Pushes,
	}
}

// Report aggregates every worker's session.
type Report struct {
	Workers     int
	Stats       game.Statistics
	ByTrueCount map[int]Tally
}

type workerResult struct {
	stats   game.Statistics
	buckets map[int]Tally
}

// Simulate plays rounds across independent sessions, one per worker, each
// seeded from Seed so a run can be repeated.
func Simulate(ctx context.Context, opts SimOptions) (Report, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Rounds < 0 {
		return Report{}, fmt.Errorf("rounds must not be negative, got %d", opts.Rounds)
	}
	if opts.Mistakes < 0 || opts.Mistakes > 1 {
		return Report{}, fmt.Errorf("mistake rate %.2f outside [0,1]", opts.Mistakes)
	}

	perWorker := opts.Rounds / opts.Workers
	remainder := opts.Rounds % opts.Workers

	g, ctx := errgroup.WithContext(ctx)
	results := make([]workerResult, opts.Workers)

	for w := 0; w < opts.Workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := opts.Seed + int64(w)

		g.Go(func() error {
			res, err := runWorker(ctx, opts, rounds, rand.New(rand.NewSource(seed)))
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Workers: opts.Workers, ByTrueCount: make(map[int]Tally)}
	for _, res := range results {
		report.Stats.Merge(res.stats)
		for tc, t := range res.buckets {
			report.ByTrueCount[tc] = report.ByTrueCount[tc].add(t)
		}
	}
	return report, nil
}

func runWorker(ctx context.Context, opts SimOptions, rounds int, rng *rand.Rand) (workerResult, error) {
	s := game.NewSession(game.Options{
		Mode:    game.ModeStrategy,
		Decks:   opts.Decks,
		AISeats: opts.AISeats,
		Rand:    rng,
	})
	pick := mistakePicker(opts.Mistakes, rng)
	buckets := make(map[int]Tally)

	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return workerResult{}, err
		}

		tc := 0.0
		if !s.Shoe().CutCardReached() {
			tc = s.TrueCount()
		}
		if err := PlayRound(s, pick); err != nil {
			return workerResult{}, err
		}

		b := bucket(tc)
		buckets[b] = buckets[b].add(traineeTally(s.Round()))
	}
	return workerResult{stats: s.Stats(), buckets: buckets}, nil
}

// mistakePicker plays basic strategy but with probability rate picks one
// of the other actions instead.
func mistakePicker(rate float64, rng *rand.Rand) Picker {
	actions := []game.Action{game.Hit, game.Stand, game.Double, game.Split}
	return func(cards []game.Card, up game.Card) game.Action {
		rec := game.Recommend(cards, up)
		if rate == 0 || rng.Float64() >= rate {
			return rec
		}
		a := actions[rng.Intn(len(actions)-1)]
		if a >= rec {
			a = actions[int(a)+1]
		}
		return a
	}
}

func bucket(tc float64) int {
	b := int(math.Round(tc))
	return max(-maxBucket, min(maxBucket, b))
}

func traineeTally(r *game.Round) Tally {
	t := Tally{Rounds: 1}
	for _, res := range r.Results {
		if res.Seat != game.TraineeSeat {
			continue
		}
		switch res.Outcome {
		case game.Win, game.BlackjackWin:
			t.Wins++
		case game.Loss, game.DealerBlackjack:
			t.Losses++
		case game.Push:
			t.Pushes++
		}
	}
	return t
}

// RenderReport prints the aggregate statistics and the per true count
// table.
func RenderReport(r Report) string {
	lines := []string{
		Title(fmt.Sprintf(" %d rounds on %d workers ", r.Stats.Rounds, r.Workers)),
		RenderStats(r.Stats),
		"",
		labelStyle.Render("TC") + "rounds    won   lost  pushed  win%",
	}

	keys := make([]int, 0, len(r.ByTrueCount))
	for tc := range r.ByTrueCount {
		keys = append(keys, tc)
	}
	sort.Ints(keys)

	for _, tc := range keys {
		t := r.ByTrueCount[tc]
		hands := t.Wins + t.Losses + t.Pushes
		pct := 0.0
		if hands > 0 {
			pct = float64(t.Wins) / float64(hands) * 100
		}
		label := fmt.Sprintf("%+d", tc)
		if tc == maxBucket || tc == -maxBucket {
			label += "*"
		}
		lines = append(lines, labelStyle.Render(label)+
			fmt.Sprintf("%6d %6d %6d %7d %5.1f", t.Rounds, t.Wins, t.Losses, t.Pushes, pct))
	}
	return strings.Join(lines, "\n")
}
