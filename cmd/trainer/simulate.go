package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanity-io/litter"

	"bjtrainer/internal/cli"
)

type SimulateCmd struct {
	Rounds   int     `default:"10000" help:"Rounds to play"`
	Workers  int     `short:"w" default:"4" help:"Parallel sessions"`
	Mistakes float64 `default:"0" help:"Chance of deviating from basic strategy on a decision"`
	Seed     int64   `default:"0" help:"RNG seed (0 for random)"`
	Dump     bool    `help:"Dump the raw report"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Simulating", "rounds", c.Rounds, "workers", c.Workers, "seed", seed, "decks", cfg.Decks, "ai_seats", cfg.AISeats)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	report, err := cli.Simulate(ctx, cli.SimOptions{
		Workers:  c.Workers,
		Rounds:   c.Rounds,
		Decks:    cfg.Decks,
		AISeats:  cfg.AISeats,
		Mistakes: c.Mistakes,
		Seed:     seed,
	})
	if err != nil {
		return err
	}
	logger.Info("Done", "elapsed", time.Since(start).Round(time.Millisecond))

	fmt.Println(cli.RenderReport(report))
	if c.Dump {
		fmt.Println(litter.Sdump(report))
	}
	return nil
}
