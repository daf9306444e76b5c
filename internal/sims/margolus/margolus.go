// Package margolus registers 2×2 block automata on the Margolus
// neighbourhood.
package margolus

import (
	"fmt"
	"strconv"

	"cellca/internal/core"
	"cellca/pkg/ca"
	pkgcore "cellca/pkg/core"
)

// Block rules understood by Config.Rule.
const (
	RuleCritters = "critters"
	RuleTron     = "tron"
)

// Config holds parameters for the block automaton.
type Config struct {
	Width  int
	Height int
	Rule   string
	// Seed is the side of the centred random square; the rest starts empty.
	Seed int
}

// DefaultConfig returns Critters on a 128×128 board.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Rule: RuleCritters, Seed: 32}
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
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["seed_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Seed = parsed
		}
	}
	return c
}

// Critters complements every block that does not hold exactly two live
// cells, and rotates blocks that held three by 180°.
func Critters(b ca.Block[uint8], _ int) ([]uint8, error) {
	out := append([]uint8(nil), b.Cells...)
	live := 0
	for _, v := range out {
		live += int(v)
	}
	if live == 2 {
		return out, nil
	}
	for i := range out {
		out[i] ^= 1
	}
	if live == 3 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// Tron complements uniform blocks and leaves the rest alone.
func Tron(b ca.Block[uint8], _ int) ([]uint8, error) {
	out := append([]uint8(nil), b.Cells...)
	for _, v := range out[1:] {
		if v != out[0] {
			return out, nil
		}
	}
	for i := range out {
		out[i] ^= 1
	}
	return out, nil
}

func blockRule(name string) (ca.BlockRule[uint8], error) {
	switch name {
	case RuleCritters:
		return ca.BlockFunc[uint8](Critters), nil
	case RuleTron:
		return ca.BlockFunc[uint8](Tron), nil
	default:
		return nil, fmt.Errorf("%w: unknown block rule %q", ca.ErrConfiguration, name)
	}
}

// New creates a block automaton playback.
func New(c Config) (*core.Playback, error) {
	rule, err := blockRule(c.Rule)
	if err != nil {
		return nil, err
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d board, 2x2 blocks", ca.ErrIndivisibleSize, c.Height, c.Width)
	}
	return core.NewPlayback(core.PlaybackOptions{
		Name: "margolus",
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{{
			Name:    "margolus",
			Summary: "2x2 partitioning automaton",
			Params: []core.Parameter{
				{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Width)},
				{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Height)},
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: c.Rule, Description: "critters or tron"},
				{Key: "seed_size", Label: "Seed square", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Seed)},
			},
		}}},
		Setup: func(seed int64) (*ca.Lattice[uint8], core.Evolver, error) {
			rng := pkgcore.NewRNG(seed)
			start := ca.New2D[uint8](c.Height, c.Width)
			side := min(c.Seed, c.Width, c.Height)
			r0, c0 := (c.Height-side)/2, (c.Width-side)/2
			for r := r0; r < r0+side; r++ {
				for col := c0; col < c0+side; col++ {
					if rng.Bool() {
						start.Set(r, col, 1)
					}
				}
			}
			return start, core.BlockEvolver(ca.BlockSize{Rows: 2, Cols: 2}, rule), nil
		},
	})
}

func init() {
	core.Register("margolus", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
