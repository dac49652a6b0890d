package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"bjtrainer/internal/game"
)

// Drill deals rounds that play themselves and asks for the running count
// whenever the session wants it stated.
type Drill struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger
}

func NewDrill(in io.Reader, out io.Writer, logger *log.Logger) *Drill {
	return &Drill{in: bufio.NewScanner(in), out: out, logger: logger}
}

// Run plays up to rounds rounds on s, which should be in counting mode,
// and returns the session's statistics. Input ending early is not an
// error.
func (d *Drill) Run(ctx context.Context, s *game.Session, rounds int) (game.Statistics, error) {
	fmt.Fprintln(d.out, Title(" Hi-Lo drill "))
	fmt.Fprintln(d.out, dimStyle.Render("2-6 count +1, 7-9 count 0, tens and aces count -1"))

	for i := 1; i <= rounds; i++ {
		if err := ctx.Err(); err != nil {
			return s.Stats(), err
		}

		reshuffle := s.Shoe().CutCardReached()
		if err := PlayRound(s, game.Recommend); err != nil {
			return s.Stats(), err
		}
		if reshuffle {
			fmt.Fprintln(d.out, dimStyle.Render("new shoe, count starts at 0"))
		}
		fmt.Fprintf(d.out, "\nround %d\n%s\n", i, RenderTable(s.Snapshot(0)))

		if !s.CountDue() {
			continue
		}
		if ok := d.ask(s); !ok {
			break
		}
	}

	st := s.Stats()
	fmt.Fprintf(d.out, "\ncount %d correct, %d wrong\n", st.CountCorrect, st.CountIncorrect)
	return st, nil
}

// ask prompts until it reads a whole number. It returns false on end of
// input.
func (d *Drill) ask(s *game.Session) bool {
	for {
		fmt.Fprint(d.out, "running count? > ")
		if !d.in.Scan() {
			return false
		}

		actual := s.RunningCount()
		correct, err := s.ConfirmCountText(strings.TrimSpace(d.in.Text()))
		switch {
		case err != nil:
			fmt.Fprintln(d.out, "enter a whole number, e.g. -3")
			continue
		case correct:
			fmt.Fprintln(d.out, goodStyle.Render(fmt.Sprintf("✓ %+d", actual)))
		default:
			fmt.Fprintln(d.out, badStyle.Render(fmt.Sprintf("✗ it was %+d", actual)))
		}
		d.logger.Debug("Count stated", "actual", actual, "correct", correct)
		return true
	}
}
