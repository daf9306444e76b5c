package core

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Size describes the dimensions of a rendered automaton.
type Size struct {
	W int
	H int
}

// Sim is the playback contract shared by the CLI and the viewer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64) error
	Step() error
	Cells() []uint8
	Generation() int
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var (
	sims   = map[string]Factory{}
	logger = zap.NewNop()
)

// SetLogger sets the logger that registered sims hand to the engine.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the logger set by SetLogger.
func Logger() *zap.Logger { return logger }

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named simulation.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown simulation %q (available: %v)", name, Names())
	}
	return f(cfg)
}
