package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"bjtrainer/internal/game"
	"bjtrainer/internal/pacer"
)

const playHelp = `n        deal a new round
h s d p  hit, stand, double, split
c <n>    state the running count
mode <strategy|counting>
stats    show statistics
hist     show recent decisions
q        quit`

// Trainer is the line-based interactive trainer.
type Trainer struct {
	in      *bufio.Scanner
	out     io.Writer
	logger  *log.Logger
	pacer   *pacer.Pacer
	mu      sync.Mutex
	session *game.Session
}

func NewTrainer(in io.Reader, out io.Writer, s *game.Session, p *pacer.Pacer, logger *log.Logger) *Trainer {
	return &Trainer{
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		pacer:   p,
		session: s,
	}
}

func (t *Trainer) println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// Run reads commands until EOF, "q" or ctx is cancelled.
func (t *Trainer) Run(ctx context.Context) error {
	t.println(Title(" ♠ ♥ Blackjack trainer ♦ ♣ "))
	t.println(playHelp)

	for {
		t.mu.Lock()
		prompt := "> "
		if t.session.CountDue() {
			prompt = "running count? > "
		}
		t.mu.Unlock()
		fmt.Fprint(t.out, prompt)

		if !t.in.Scan() {
			return t.in.Err()
		}
		quit, err := t.handle(ctx, strings.TrimSpace(t.in.Text()))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (t *Trainer) handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	t.mu.Lock()
	countDue := t.session.CountDue()
	t.mu.Unlock()

	switch cmd := fields[0]; {
	case cmd == "q" || cmd == "quit":
		return true, nil
	case cmd == "help" || cmd == "?":
		t.println(playHelp)
	case cmd == "n" || cmd == "deal":
		return false, t.deal(ctx)
	case cmd == "h" || cmd == "s" || cmd == "d" || cmd == "p":
		return false, t.act(ctx, cmd)
	case cmd == "c" || cmd == "count":
		t.count(strings.Join(fields[1:], ""))
	case cmd == "mode":
		t.mode(fields[1:])
	case cmd == "stats":
		t.mu.Lock()
		st := t.session.Stats()
		t.mu.Unlock()
		t.println(RenderStats(st))
	case cmd == "hist" || cmd == "history":
		t.mu.Lock()
		entries := t.session.History().Recent(15)
		t.mu.Unlock()
		t.println(RenderHistory(entries))
	case countDue && len(fields) == 1:
		t.count(cmd)
	default:
		t.println("unknown command, try help")
	}
	return false, nil
}

func (t *Trainer) deal(ctx context.Context) error {
	t.mu.Lock()
	if t.session.CountDue() {
		t.mu.Unlock()
		t.println("state the running count first: c <n>")
		return nil
	}
	reshuffle := t.session.Shoe().CutCardReached()
	err := t.session.DealNewGame()
	snap := t.session.Snapshot(0)
	t.mu.Unlock()

	if errors.Is(err, game.ErrInvalidAction) {
		t.println("finish the current round first")
		return nil
	}
	if err != nil {
		return err
	}
	if reshuffle {
		t.println(dimStyle.Render("new shoe, count reset"))
	}
	t.println(RenderTable(snap))
	return t.play(ctx)
}

func (t *Trainer) act(ctx context.Context, code string) error {
	t.mu.Lock()
	j, err := t.session.PlayerAction(code)
	snap := t.session.Snapshot(0)
	t.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrInvalidAction), errors.Is(err, game.ErrNoRound):
		t.println("not allowed now")
		return nil
	case errors.Is(err, game.ErrShoeExhausted):
		t.println("the shoe is empty, deal again for a new one")
		return nil
	case err != nil:
		return err
	}

	t.logger.Debug("Judged", "action", j.Action, "recommended", j.Recommended, "correct", j.Correct)
	t.println(RenderJudgement(j))
	t.println(RenderTable(snap))
	return t.play(ctx)
}

// play lets the pacer run pending steps and waits for it to finish.
func (t *Trainer) play(ctx context.Context) error {
	t.mu.Lock()
	if !t.session.HasPending() {
		done := t.session.Phase() == game.End
		t.mu.Unlock()
		if done {
			t.roundOver()
		}
		return nil
	}

	finished := make(chan struct{})
	t.pacer.Start(t.session, &t.mu, func(snap game.Snapshot, more bool) {
		t.println(RenderTable(snap))
		if !more {
			close(finished)
		}
	})
	t.mu.Unlock()

	select {
	case <-finished:
	case <-ctx.Done():
		t.pacer.Stop()
		t.mu.Lock()
		t.session.Abandon()
		t.mu.Unlock()
		return ctx.Err()
	}

	t.mu.Lock()
	done := t.session.Phase() == game.End
	t.mu.Unlock()
	if done {
		t.roundOver()
	}
	return nil
}

func (t *Trainer) roundOver() {
	t.mu.Lock()
	due := t.session.CountDue()
	t.mu.Unlock()
	if due {
		t.println("what is the running count?")
	}
}

func (t *Trainer) count(text string) {
	t.mu.Lock()
	actual := t.session.RunningCount()
	correct, err := t.session.ConfirmCountText(text)
	t.mu.Unlock()

	switch {
	case err != nil:
		t.println("enter a whole number, e.g. c -3")
	case correct:
		t.println(goodStyle.Render(fmt.Sprintf("✓ running count %+d", actual)))
	default:
		t.println(badStyle.Render(fmt.Sprintf("✗ running count is %+d", actual)))
	}
}

func (t *Trainer) mode(args []string) {
	if len(args) == 0 {
		t.println("mode strategy | mode counting")
		return
	}
	m, err := game.ParseMode(args[0])
	if err != nil {
		t.println(err.Error())
		return
	}
	t.pacer.Stop()
	t.mu.Lock()
	t.session.Abandon()
	t.session.SelectMode(m)
	t.mu.Unlock()
	t.println("mode:", m)
}
