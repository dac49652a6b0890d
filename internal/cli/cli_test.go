package cli

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"bjtrainer/internal/game"
)

func stacked(t *testing.T, opts game.Options, ranks ...string) *game.Session {
	t.Helper()
	cards, err := game.Cards(ranks...)
	require.NoError(t, err)
	opts.Rand = rand.New(rand.NewSource(1))
	return game.NewSessionWithShoe(opts, game.NewStackedShoe(cards, opts.Rand))
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
