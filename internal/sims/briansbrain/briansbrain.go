package briansbrain

import (
	"strconv"

	"cellca/internal/core"
	"cellca/pkg/ca"
	pkgcore "cellca/pkg/core"
	"cellca/pkg/rules"
)

// Config holds parameters for Brian's Brain.
type Config struct {
	Width  int
	Height int
	// OneIn fires roughly one cell in OneIn at reset.
	OneIn  int
	Engine ca.Config
}

// DefaultConfig returns a 256×256 board with one cell in eight firing.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, OneIn: 8, Engine: ca.DefaultConfig()}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.Engine = ca.FromMap(cfg)
	for key, dst := range map[string]*int{"w": &c.Width, "h": &c.Height, "one_in": &c.OneIn} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	return c
}

// New creates a Brian's Brain playback.
func New(c Config) (*core.Playback, error) {
	engine := c.Engine
	engine.Logger = core.Logger()
	return core.NewPlayback(core.PlaybackOptions{
		Name: "briansbrain",
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{
			{
				Name:    "briansbrain",
				Summary: "three-state firing automaton",
				Params: []core.Parameter{
					{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Width)},
					{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Height)},
					{Key: "one_in", Label: "Seed density", Type: core.ParamTypeInt, Value: strconv.Itoa(c.OneIn)},
				},
			},
			core.EngineGroup(engine),
		}},
		Setup: func(seed int64) (*ca.Lattice[uint8], core.Evolver, error) {
			rng := pkgcore.NewRNG(seed)
			start := ca.New2D[uint8](c.Height, c.Width)
			cells := start.Cells()
			for i := range cells {
				if rng.IntN(c.OneIn) == 0 {
					cells[i] = rules.BrainOn
				}
			}
			return start, core.EngineEvolver(rules.BriansBrain[uint8](), engine), nil
		},
	})
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
