package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"bjtrainer/internal/cli"
	"bjtrainer/internal/game"
)

type DrillCmd struct {
	Rounds int `default:"20" help:"Rounds to deal"`
	Every  int `help:"Rounds between count questions (defaults to config)"`
}

func (c *DrillCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	opts := cfg.SessionOptions()
	opts.Mode = game.ModeCounting
	if c.Every > 0 {
		opts.CountEvery = c.Every
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := cli.NewDrill(os.Stdin, os.Stdout, logger).Run(ctx, game.NewSession(opts), c.Rounds)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Debug("Drill finished", "rounds", st.Rounds, "count_correct", st.CountCorrect, "count_incorrect", st.CountIncorrect)
	return err
}
