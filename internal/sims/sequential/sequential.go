// Package sequential registers an asynchronous elementary automaton that
// updates a single cell per generation.
package sequential

import (
	"strconv"

	"cellca/internal/core"
	"cellca/pkg/ca"
	pkgcore "cellca/pkg/core"
	"cellca/pkg/rules"
)

// Config holds parameters for the sequential automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint64
	// Shuffle visits cells in a random order, reshuffled after each cell.
	Shuffle bool
}

// DefaultConfig returns rule 60 on 64 cells in left-to-right order.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 256, Rule: 60}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
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
	if v, ok := cfg["shuffle"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Shuffle = parsed
		}
	}
	return c
}

// New creates a sequential playback.
func New(c Config) (*core.Playback, error) {
	inner, err := rules.NKSRule[uint8](c.Rule)
	if err != nil {
		return nil, err
	}
	engine := ca.DefaultConfig()
	engine.Logger = core.Logger()
	return core.NewPlayback(core.PlaybackOptions{
		Name:   "sequential",
		Height: c.Height,
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{
			{
				Name:    "sequential",
				Summary: "one cell per generation",
				Params: []core.Parameter{
					{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Width)},
					{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Height)},
					{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Value: strconv.FormatUint(c.Rule, 10)},
					{Key: "shuffle", Label: "Shuffle", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.Shuffle)},
				},
			},
			core.EngineGroup(engine),
		}},
		Setup: func(seed int64) (*ca.Lattice[uint8], core.Evolver, error) {
			order := rules.UpdateOrder{Cols: c.Width}
			if c.Shuffle {
				order.Shuffle = pkgcore.NewRNG(seed)
			}
			rule, err := rules.NewAsynchronous[uint8](inner, order)
			if err != nil {
				return nil, nil, err
			}
			return ca.InitSimple[uint8](c.Width, 1), core.EngineEvolver(rule, engine), nil
		},
	})
}

func init() {
	core.Register("sequential", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
