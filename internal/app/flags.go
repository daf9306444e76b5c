package app

import (
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config represents the command-line parameters shared by the CLI and the
// viewer.
type Config struct {
	Sim    string
	Scale  int
	TPS    int
	Seed   int64
	Steps  int
	Set    string
	JSON   bool
	Params bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 3, TPS: 60, Seed: 42, Steps: 64}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 runs unpaced in the CLI)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Steps, "steps", c.Steps, "generations to run in the CLI")
	fs.StringVar(&c.Set, "set", c.Set, "comma-separated key=value simulation settings, e.g. w=64,rule=30,memoize=flat")
	fs.BoolVar(&c.JSON, "json", c.JSON, "log JSON instead of console output")
	fs.BoolVar(&c.Params, "params", c.Params, "print the simulation parameters before running")
}

// Settings parses Set into the map handed to the simulation factory.
func (c *Config) Settings() (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(c.Set, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("setting %q is not key=value", pair)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

// Logger builds the process logger: console output at debug level, or JSON
// at info level when JSON is set.
func (c *Config) Logger() (*zap.Logger, error) {
	if c.JSON {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
