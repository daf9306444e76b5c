package life

import (
	"fmt"
	"strconv"

	"cellca/internal/core"
	"cellca/pkg/ca"
	pkgcore "cellca/pkg/core"
	"cellca/pkg/rules"
)

// Patterns understood by Config.Pattern.
const (
	PatternRandom = "random"
	PatternShips  = "ships"
)

// Config holds parameters for Conway's Game of Life.
type Config struct {
	Width   int
	Height  int
	Pattern string
	Engine  ca.Config
}

// DefaultConfig returns a random soup with recursive memoization, which
// collapses the empty regions of the board.
func DefaultConfig() Config {
	engine := ca.DefaultConfig()
	engine.Memoize = ca.MemoRecursive
	return Config{Width: 128, Height: 128, Pattern: PatternRandom, Engine: engine}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.Engine = ca.FromMap(cfg)
	if _, ok := cfg["memoize"]; !ok {
		c.Engine.Memoize = ca.MemoRecursive
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
	if v, ok := cfg["pattern"]; ok && v != "" {
		c.Pattern = v
	}
	return c
}

// Stamp sets the 'O' cells of pattern with its top-left corner at (row, col).
func Stamp(l *ca.Lattice[uint8], row, col int, pattern ...string) {
	for dr, line := range pattern {
		for dc, ch := range line {
			if ch == 'O' {
				l.Set(row+dr, col+dc, 1)
			}
		}
	}
}

// Ships places a glider, a blinker and a light-weight spaceship.
func Ships(rows, cols int) *ca.Lattice[uint8] {
	l := ca.New2D[uint8](rows, cols)
	Stamp(l, 1, 1, ".O.", "..O", "OOO")
	Stamp(l, rows/2, cols/2-1, "OOO")
	Stamp(l, rows/6, cols/2, ".O..O", "O....", "O...O", "OOOO.")
	return l
}

// New creates a Game of Life playback.
func New(c Config) (*core.Playback, error) {
	if c.Pattern != PatternRandom && c.Pattern != PatternShips {
		return nil, fmt.Errorf("%w: unknown life pattern %q", ca.ErrConfiguration, c.Pattern)
	}
	engine := c.Engine
	engine.Logger = core.Logger()
	return core.NewPlayback(core.PlaybackOptions{
		Name: "life",
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{
			{
				Name:    "life",
				Summary: "B3/S23 on a torus",
				Params: []core.Parameter{
					{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Width)},
					{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(c.Height)},
					{Key: "pattern", Label: "Pattern", Type: core.ParamTypeString, Value: c.Pattern, Description: "random or ships"},
				},
			},
			core.EngineGroup(engine),
		}},
		Setup: func(seed int64) (*ca.Lattice[uint8], core.Evolver, error) {
			var start *ca.Lattice[uint8]
			if c.Pattern == PatternShips {
				start = Ships(c.Height, c.Width)
			} else {
				start = ca.InitRandom2D[uint8](c.Height, c.Width, 2, pkgcore.NewRNG(seed))
			}
			return start, core.EngineEvolver(rules.GameOfLife[uint8](), engine), nil
		},
	})
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
