package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"bjtrainer/internal/game"
)

type Config struct {
	BotToken   string
	Decks      int
	AISeats    int
	CountEvery int
	StepDelay  time.Duration
	LogLevel   string
	Mode       string
}

// fileConfig is the optional HCL file:
//
//	table {
//	  decks       = 8
//	  ai_seats    = 2
//	  count_every = 3
//	  step_delay  = "600ms"
//	}
type fileConfig struct {
	Table *tableBlock `hcl:"table,block"`
	Log   *logBlock   `hcl:"log,block"`
}

type tableBlock struct {
	Decks      int    `hcl:"decks,optional"`
	AISeats    int    `hcl:"ai_seats,optional"`
	CountEvery int    `hcl:"count_every,optional"`
	StepDelay  string `hcl:"step_delay,optional"`
	Mode       string `hcl:"mode,optional"`
}

type logBlock struct {
	Level string `hcl:"level,optional"`
}

func Default() *Config {
	return &Config{
		Decks:      game.DefaultDecks,
		AISeats:    0,
		CountEvery: game.DefaultCountEvery,
		StepDelay:  700 * time.Millisecond,
		LogLevel:   "info",
		Mode:       game.ModeStrategy.String(),
	}
}

// Load reads .env, then the HCL file named by TRAINER_CONFIG if any, then
// environment overrides. The bot token is not required here; the bot
// checks it.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := Default()
	if path := os.Getenv("TRAINER_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.BotToken = os.Getenv("BOT_TOKEN")

	if v := os.Getenv("DECKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("DECKS: %w", err)
		}
		cfg.Decks = n
	}
	if v := os.Getenv("AI_SEATS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("AI_SEATS: %w", err)
		}
		cfg.AISeats = n
	}
	if v := os.Getenv("STEP_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("STEP_DELAY: %w", err)
		}
		cfg.StepDelay = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MODE"); v != "" {
		cfg.Mode = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile applies an HCL file on top of the current values. A missing
// file is not an error.
func (c *Config) LoadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse %s: %s", path, diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode %s: %s", path, diags.Error())
	}

	if t := fc.Table; t != nil {
		if t.Decks != 0 {
			c.Decks = t.Decks
		}
		if t.AISeats != 0 {
			c.AISeats = t.AISeats
		}
		if t.CountEvery != 0 {
			c.CountEvery = t.CountEvery
		}
		if t.Mode != "" {
			c.Mode = t.Mode
		}
		if t.StepDelay != "" {
			d, err := time.ParseDuration(t.StepDelay)
			if err != nil {
				return fmt.Errorf("step_delay: %w", err)
			}
			c.StepDelay = d
		}
	}
	if fc.Log != nil && fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Decks != 6 && c.Decks != 8 {
		return fmt.Errorf("decks must be 6 or 8, got %d", c.Decks)
	}
	if c.AISeats < 0 || c.AISeats > game.MaxAISeats {
		return fmt.Errorf("ai seats must be between 0 and %d, got %d", game.MaxAISeats, c.AISeats)
	}
	if c.CountEvery <= 0 {
		return fmt.Errorf("count_every must be positive, got %d", c.CountEvery)
	}
	if c.StepDelay < 0 {
		return fmt.Errorf("step delay must not be negative")
	}
	if _, err := game.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

func (c *Config) SessionOptions() game.Options {
	mode, _ := game.ParseMode(c.Mode)
	return game.Options{
		Mode:       mode,
		Decks:      c.Decks,
		AISeats:    c.AISeats,
		CountEvery: c.CountEvery,
	}
}
