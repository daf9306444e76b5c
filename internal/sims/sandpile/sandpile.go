// Package sandpile registers the Bak–Tang–Wiesenfeld sandpile: a closed
// board seeded with random heights and fed one grain at a time.
package sandpile

import (
	"strconv"

	"cellca/internal/core"
	"cellca/pkg/ca"
	pkgcore "cellca/pkg/core"
	"cellca/pkg/rules"
)

// Config holds parameters for the sandpile.
type Config struct {
	Width  int
	Height int
	// DropEvery adds a grain to the centre cell every DropEvery generations.
	// Zero lets the initial pile relax without feeding it.
	DropEvery int
	// Open wraps the board into a torus instead of draining at the edges.
	Open bool
}

// DefaultConfig returns a 96×96 closed board fed every 4 generations.
func DefaultConfig() Config {
	return Config{Width: 96, Height: 96, DropEvery: 4}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 2 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 2 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["drop_every"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.DropEvery = parsed
		}
	}
	if v, ok := cfg["open"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Open = parsed
		}
	}
	return c
}

// engineConfig is fixed: the toppling rule reads the von Neumann cross and
// keeps per-call state, so it runs uncached on one worker.
func engineConfig() ca.Config {
	cfg := ca.DefaultConfig()
	cfg.Topology = ca.VonNeumann
	cfg.Logger = core.Logger()
	return cfg
}

// feeder evolves the pile in batches. Grains are scheduled per batch on a
// fresh rule because timesteps restart at 1 on every engine call.
type feeder struct {
	c      Config
	engine ca.Config
	base   int
}

func (f *feeder) evolve(cur *ca.Lattice[uint8], steps int) (ca.History[uint8], error) {
	pile := rules.NewSandpile[uint8](f.c.Height, f.c.Width, !f.c.Open)
	if f.c.DropEvery > 0 {
		centre := ca.Cell{Row: f.c.Height / 2, Col: f.c.Width / 2}
		for t := 1; t < steps; t++ {
			if (f.base+t)%f.c.DropEvery == 0 {
				pile.AddGrain(centre, t)
			}
		}
	}
	h, err := ca.Evolve(cur, steps, ca.Rule[uint8](pile), f.engine)
	if err != nil {
		return h, err
	}
	f.base += h.Len() - 1
	return h, nil
}

// New creates a sandpile playback.
func New(c Config) (*core.Playback, error) {
	engine := engineConfig()
	return core.NewPlayback(core.PlaybackOptions{
		Name: "sandpile",
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{
			{
				Name:    "sandpile",
				Summary: "abelian sandpile, capacity 4",
				Params: []core.Parameter{
					{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Width)},
					{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Height)},
					{Key: "drop_every", Label: "Drop interval", Type: core.ParamTypeInt, Value: strconv.Itoa(c.DropEvery)},
					{Key: "open", Label: "Open boundary", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.Open)},
				},
			},
			core.EngineGroup(engine),
		}},
		Setup: func(seed int64) (*ca.Lattice[uint8], core.Evolver, error) {
			start := ca.InitRandom2D[uint8](c.Height, c.Width, rules.SandpileCapacity, pkgcore.NewRNG(seed))
			if !c.Open {
				for col := 0; col < c.Width; col++ {
					start.Set(0, col, 0)
					start.Set(c.Height-1, col, 0)
				}
				for row := 0; row < c.Height; row++ {
					start.Set(row, 0, 0)
					start.Set(row, c.Width-1, 0)
				}
			}
			f := &feeder{c: c, engine: engine}
			return start, f.evolve, nil
		},
	})
}

func init() {
	core.Register("sandpile", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
