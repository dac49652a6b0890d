package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"bjtrainer/internal/config"
	"bjtrainer/internal/logging"
)

// version is set by ldflags during build
var version = "dev"

// Globals apply to every command and override the environment and the
// config file.
type Globals struct {
	Config   string `short:"c" type:"path" help:"HCL config file (defaults to $TRAINER_CONFIG)"`
	Decks    *int   `help:"Decks in the shoe, 6 or 8"`
	AISeats  *int   `name:"ai-seats" help:"Computer seats beside yours"`
	LogLevel string `name:"log-level" help:"debug, info, warn or error"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play at the table with basic strategy feedback"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds by strategy and report results by true count"`
	Drill    DrillCmd         `cmd:"" help:"Practice keeping the Hi-Lo running count"`
}

// load merges the environment, the config file and the flags.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if g.Config != "" {
		if err := cfg.LoadFile(g.Config); err != nil {
			return nil, nil, err
		}
	}
	if g.Decks != nil {
		cfg.Decks = *g.Decks
	}
	if g.AISeats != nil {
		cfg.AISeats = *g.AISeats
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(os.Stderr, cfg.LogLevel, "trainer"), nil
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("trainer"),
		kong.Description("Blackjack basic strategy and card counting trainer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options()...)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
