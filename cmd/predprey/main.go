//go:build ebiten

package main

import (
	"errors"
	"os"

	"predprey/internal/app"
	"predprey/internal/config"
	"predprey/internal/control"
	"predprey/internal/sims/predprey"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/integrii/flaggy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration", "err", err)
	}

	flaggy.SetName("predprey")
	flaggy.SetDescription("Rabbits and wolves on a grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	cfg.Bind(&flaggy.DefaultParser.Subcommand)
	flaggy.Parse()

	logger := cfg.NewLogger(os.Stderr, "predprey")
	if err := cfg.ApplyOverrides(); err != nil {
		logger.Fatal("apply overrides", "err", err)
	}
	if err := cfg.ResolveSeed(); err != nil {
		logger.Fatal("seed", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	world := predprey.NewWithConfig(cfg.World())
	world.Reset(cfg.Seed)
	ctrl := control.New(world, cfg.Seed, logger)
	game := app.New(ctrl, cfg.Scale, logger)

	w, h := game.WindowSize()
	ebiten.SetWindowTitle("predprey: rabbits and wolves")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(60)

	logger.Info("starting", "width", cfg.Width, "height", cfg.Height, "seed", cfg.Seed)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("run", "err", err)
	}
}
