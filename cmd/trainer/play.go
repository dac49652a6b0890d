package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"

	"bjtrainer/internal/cli"
	"bjtrainer/internal/game"
	"bjtrainer/internal/pacer"
)

type PlayCmd struct {
	Mode  string        `help:"strategy or counting (defaults to config)"`
	Delay time.Duration `help:"Pause between dealer cards (defaults to config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Mode != "" {
		cfg.Mode = c.Mode
	}
	if c.Delay > 0 {
		cfg.StepDelay = c.Delay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := game.NewSession(cfg.SessionOptions())
	p := pacer.New(quartz.NewReal(), cfg.StepDelay, logger)
	defer p.Stop()

	logger.Debug("Starting trainer", "mode", s.Mode(), "decks", cfg.Decks, "ai_seats", cfg.AISeats)
	err = cli.NewTrainer(os.Stdin, os.Stdout, s, p, logger).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
