package elementary

import (
	"strconv"

	"cellca/internal/core"
	"cellca/pkg/ca"
	pkgcore "cellca/pkg/core"
	"cellca/pkg/rules"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint64
	// Random seeds every cell instead of a single centre cell.
	Random bool
	Engine ca.Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Rule: 110, Engine: ca.DefaultConfig()}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.Engine = ca.FromMap(cfg)
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil && parsed <= 255 {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Random = parsed
		}
	}
	return c
}

// New creates a playback of the Wolfram rule c.Rule, projected vertically.
func New(c Config) (*core.Playback, error) {
	rule, err := rules.NKSRule[uint8](c.Rule)
	if err != nil {
		return nil, err
	}
	engine := c.Engine
	engine.Logger = core.Logger()
	return core.NewPlayback(core.PlaybackOptions{
		Name:   "elementary",
		Height: c.Height,
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{
			{
				Name:    "elementary",
				Summary: "Wolfram rule on a ring",
				Params: []core.Parameter{
					{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Width)},
					{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Height)},
					{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Value: strconv.FormatUint(c.Rule, 10)},
					{Key: "random", Label: "Random", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.Random)},
				},
			},
			core.EngineGroup(engine),
		}},
		Setup: func(seed int64) (*ca.Lattice[uint8], core.Evolver, error) {
			start := ca.InitSimple[uint8](c.Width, 1)
			if c.Random {
				var err error
				start, err = ca.InitRandom[uint8](c.Width, 2, pkgcore.NewRNG(seed), -1, 0)
				if err != nil {
					return nil, nil, err
				}
			}
			return start, core.EngineEvolver(ca.Rule[uint8](rule), engine), nil
		},
	})
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
