// Command ca runs a registered automaton headless and prints its frames.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"cellca/internal/app"
	"cellca/internal/core"
	"cellca/internal/render"
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
	fs := flag.NewFlagSet("ca", flag.ExitOnError)
	cfg.Bind(fs)
	every := fs.Int("every", 0, "print a 2-D frame every N generations (0 prints the last one only)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ca [flags]\n\nsimulations: %s\n\n", strings.Join(core.Names(), ", "))
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	core.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *every, os.Stdout, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *app.Config, every int, out io.Writer, logger *zap.Logger) error {
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	sim, err := core.New(cfg.Sim, settings)
	if err != nil {
		return err
	}
	if err := sim.Reset(cfg.Seed); err != nil {
		return err
	}
	if cfg.Params {
		if p, ok := sim.(core.ParameterProvider); ok {
			if _, err := p.Parameters().WriteTo(out); err != nil {
				return err
			}
		}
	}

	size := sim.Size()
	spacetime := isSpacetime(sim)
	var clock *core.FixedStep
	if cfg.TPS > 0 {
		clock = core.NewFixedStep(cfg.TPS)
	}

	logger.Info("running", zap.String("sim", sim.Name()), zap.Int("steps", cfg.Steps),
		zap.Int64("seed", cfg.Seed), zap.Int("width", size.W), zap.Int("height", size.H))
	start := time.Now()
	if spacetime {
		if err := render.WriteText(out, sim.Cells()[:size.W], size.W); err != nil {
			return err
		}
	}
	for gen := 1; gen <= cfg.Steps; gen++ {
		if clock != nil {
			if err := clock.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := sim.Step(); err != nil {
			return err
		}
		switch {
		case spacetime:
			err = render.WriteText(out, sim.Cells()[:size.W], size.W)
		case gen == cfg.Steps || (every > 0 && gen%every == 0):
			fmt.Fprintf(out, "generation %d\n", sim.Generation())
			err = render.WriteText(out, sim.Cells(), size.W)
		}
		if err != nil {
			return err
		}
	}
	logger.Info("done", zap.Int("generation", sim.Generation()), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// isSpacetime reports whether sim renders a 1-D lattice as a scrolling
// history, in which case only the newest row is printed per generation.
func isSpacetime(sim core.Sim) bool {
	p, ok := sim.(*core.Playback)
	return ok && p.Lattice().Dims() == 1
}
