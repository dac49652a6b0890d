package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bjtrainer/internal/game"
	"bjtrainer/internal/pacer"
)

func runTrainer(t *testing.T, s *game.Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	p := pacer.New(quartz.NewReal(), 0, quietLogger())
	tr := NewTrainer(strings.NewReader(input), &out, s, p, quietLogger())
	require.NoError(t, tr.Run(context.Background()))
	return out.String()
}

func TestTrainerPlaysARound(t *testing.T) {
	// dealer 6 A takes a card on soft 17 and busts with 6 A 5 10
	s := stacked(t, game.Options{}, "10", "6", "10", "A", "5", "10")
	out := runTrainer(t, s, "n\ns\nstats\nq\n")

	assert.Contains(t, out, "✓ 20 vs 6: Stand")
	assert.Contains(t, out, "Win")
	assert.Contains(t, out, "1 won, 0 lost")
	assert.Equal(t, game.End, s.Phase())
	assert.Len(t, s.Round().Dealer.Cards, 4)
}

func TestTrainerRejectsActionsWithoutRound(t *testing.T) {
	s := stacked(t, game.Options{}, "10", "10", "9", "7")
	out := runTrainer(t, s, "h\nbogus\n")

	assert.Contains(t, out, "not allowed now")
	assert.Contains(t, out, "unknown command")
	assert.Zero(t, s.Stats().Correct+s.Stats().Incorrect)
}

func TestTrainerCountPrompt(t *testing.T) {
	s := stacked(t, game.Options{Mode: game.ModeCounting, CountEvery: 1}, "10", "10", "9", "7")
	out := runTrainer(t, s, "n\ns\nn\nstats\n-2\nq\n")

	assert.Contains(t, out, "what is the running count?")
	assert.Contains(t, out, "state the running count first")
	assert.Contains(t, out, "running count? > ")
	assert.Contains(t, out, "Decisions  1 correct")
	assert.Contains(t, out, "✓ running count -2")
	assert.Equal(t, 1, s.Stats().CountCorrect)
}

func TestTrainerModeSwitch(t *testing.T) {
	s := stacked(t, game.Options{}, "10", "10", "9", "7")
	out := runTrainer(t, s, "mode counting\nmode poker\n")

	assert.Contains(t, out, "mode: counting")
	assert.Equal(t, game.ModeCounting, s.Mode())
}
