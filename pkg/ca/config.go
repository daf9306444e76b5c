package ca

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Memo selects how rule invocations are cached within one evolution.
type Memo string

const (
	// MemoNone invokes the rule for every cell of every generation.
	MemoNone Memo = "none"
	// MemoFlat caches results keyed by exact neighbourhood content.
	MemoFlat Memo = "flat"
	// MemoRecursive caches whole sub-blocks found by divide and conquer.
	MemoRecursive Memo = "recursive"
)

// ParseMemo resolves a memoization mode name.
func ParseMemo(name string) (Memo, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off", "false":
		return MemoNone, nil
	case "flat", "on", "true":
		return MemoFlat, nil
	case "recursive":
		return MemoRecursive, nil
	default:
		return "", fmt.Errorf("%w: unknown memoize mode %q", ErrConfiguration, name)
	}
}

// Stats collects counters for one evolution call.
type Stats struct {
	Generations int
	Invocations int64
	Hits        int64
	Misses      int64
}

// Config controls an evolution run.
type Config struct {
	// Radius is the neighbourhood radius r.
	Radius int
	// Topology is the 2-D neighbourhood shape. Ignored for 1-D lattices.
	Topology Topology
	// Memoize selects the caching strategy.
	Memoize Memo
	// Workers parallelises the uncached strategy across bands of cells when > 1.
	Workers int
	// FlatCacheSize bounds the flat cache when > 0.
	FlatCacheSize int

	// Logger receives run diagnostics. Nil disables logging.
	Logger *zap.Logger
	// Stats, when set, is overwritten with the run's counters.
	Stats *Stats
}

// DefaultConfig returns radius 1, Moore topology and no caching.
func DefaultConfig() Config {
	return Config{Radius: 1, Topology: Moore, Memoize: MemoNone, Workers: 1}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparsable numbers are ignored; topology and memoize names are validated
// when the evolution starts.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["r"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["neighbourhood"]; ok {
		c.Topology = Topology(v)
	}
	if v, ok := cfg["memoize"]; ok {
		c.Memoize = Memo(v)
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["flat_cache_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.FlatCacheSize = parsed
		}
	}
	return c
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
