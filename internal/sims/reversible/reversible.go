// Package reversible registers a second-order elementary automaton whose
// history can be run backwards.
package reversible

import (
	"strconv"

	"cellca/internal/core"
	"cellca/pkg/ca"
	pkgcore "cellca/pkg/core"
	"cellca/pkg/rules"
)

// Config holds parameters for the reversible automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint64
	// Band is the number of live cells in the centre of the initial row.
	// Zero seeds a random row instead.
	Band int
}

// DefaultConfig returns rule 122 with a centre band of 20 cells.
func DefaultConfig() Config {
	return Config{Width: 200, Height: 256, Rule: 122, Band: 20}
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
	if v, ok := cfg["band"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Band = parsed
		}
	}
	return c
}

// Initial returns the starting row: a centred band of ones, or a random row
// when Band is zero.
func Initial(c Config, seed int64) *ca.Lattice[uint8] {
	start := ca.New1D[uint8](c.Width)
	if c.Band == 0 {
		pkgcore.NewRNG(seed).FillStates(start.Cells(), 2)
		return start
	}
	band := min(c.Band, c.Width)
	lo := (c.Width - band) / 2
	for i := lo; i < lo+band; i++ {
		start.Set(0, i, 1)
	}
	return start
}

// New creates a reversible playback. The generation before the initial
// condition equals the initial condition.
func New(c Config) (*core.Playback, error) {
	inner, err := rules.NKSRule[uint8](c.Rule)
	if err != nil {
		return nil, err
	}
	engine := ca.DefaultConfig()
	engine.Logger = core.Logger()
	return core.NewPlayback(core.PlaybackOptions{
		Name:   "reversible",
		Height: c.Height,
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{
			{
				Name:    "reversible",
				Summary: "second-order XOR of an elementary rule",
				Params: []core.Parameter{
					{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Width)},
					{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Height)},
					{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Value: strconv.FormatUint(c.Rule, 10)},
					{Key: "band", Label: "Band", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Band)},
				},
			},
			core.EngineGroup(engine),
		}},
		Setup: func(seed int64) (*ca.Lattice[uint8], core.Evolver, error) {
			start := Initial(c, seed)
			rule := rules.NewReversible[uint8](inner, start)
			return start, core.EngineEvolver(rule, engine), nil
		},
	})
}

func init() {
	core.Register("reversible", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
