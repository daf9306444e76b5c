//go:build ebiten

// Command ca-view shows a registered automaton in a window.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"cellca/internal/app"
	"cellca/internal/core"
	_ "cellca/internal/sims/briansbrain"
	_ "cellca/internal/sims/elementary"
	_ "cellca/internal/sims/life"
	_ "cellca/internal/sims/margolus"
	_ "cellca/internal/sims/reversible"
	_ "cellca/internal/sims/sandpile"
	_ "cellca/internal/sims/sequential"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	core.SetLogger(logger)

	settings, err := cfg.Settings()
	if err != nil {
		logger.Fatal("bad settings", zap.Error(err))
	}
	sim, err := core.New(cfg.Sim, settings)
	if err != nil {
		logger.Fatal("create simulation", zap.Error(err))
	}
	if cfg.Params {
		if p, ok := sim.(core.ParameterProvider); ok {
			p.Parameters().WriteTo(os.Stdout)
		}
	}

	game := app.New(sim, cfg.Scale, cfg.TPS, cfg.Seed)
	if err := game.Reset(cfg.Seed); err != nil {
		logger.Fatal("reset", zap.Error(err))
	}
	size := sim.Size()

	ebiten.SetWindowTitle("cellca: " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("viewer stopped", zap.Error(err))
	}
}
