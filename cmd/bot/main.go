package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"bjtrainer/internal/bot"
	"bjtrainer/internal/config"
	"bjtrainer/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info", "").Fatal("Failed to load config", "error", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, "")
	logger.Info("Config loaded", "decks", cfg.Decks, "ai_seats", cfg.AISeats, "mode", cfg.Mode, "step_delay", cfg.StepDelay)

	b, err := bot.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("Bot error", "error", err)
	}
	logger.Info("Bye")
}
