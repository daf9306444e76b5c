package core

import (
	"fmt"

	"cellca/pkg/ca"
)

// Evolver produces steps generations starting from cur. The returned history
// begins with cur itself.
type Evolver func(cur *ca.Lattice[uint8], steps int) (ca.History[uint8], error)

// EngineEvolver runs rule through ca.Evolve.
func EngineEvolver(rule ca.Rule[uint8], cfg ca.Config) Evolver {
	return func(cur *ca.Lattice[uint8], steps int) (ca.History[uint8], error) {
		return ca.Evolve(cur, steps, rule, cfg)
	}
}

// BlockEvolver runs a partitioning rule through ca.EvolveBlock.
func BlockEvolver(size ca.BlockSize, rule ca.BlockRule[uint8]) Evolver {
	return func(cur *ca.Lattice[uint8], steps int) (ca.History[uint8], error) {
		return ca.EvolveBlock(cur, steps, size, rule)
	}
}

// Setup builds the initial lattice and its evolver for one seed. It runs on
// every reset so stateful rules start fresh.
type Setup func(seed int64) (*ca.Lattice[uint8], Evolver, error)

// PlaybackOptions configures a Playback.
type PlaybackOptions struct {
	Name string
	// Height is the number of generations kept on screen for 1-D lattices.
	Height int
	// Batch is the number of generations computed per engine call. It is
	// rounded up to an even number so block offsets stay in phase.
	Batch  int
	Setup  Setup
	Params ParameterSnapshot
}

// Playback adapts an engine evolution to the Sim contract: generations are
// computed in batches and handed out one Step at a time.
type Playback struct {
	opts PlaybackOptions

	cur       *ca.Lattice[uint8]
	evolve    Evolver
	pending   ca.History[uint8]
	gen       int
	spacetime *Spacetime
}

// NewPlayback validates opts and resets the playback with seed 0.
func NewPlayback(opts PlaybackOptions) (*Playback, error) {
	if opts.Setup == nil {
		return nil, fmt.Errorf("%w: %s has no setup", ca.ErrConfiguration, opts.Name)
	}
	if opts.Batch < 1 {
		opts.Batch = 32
	}
	if opts.Batch%2 == 1 {
		opts.Batch++
	}
	if opts.Height < 1 {
		opts.Height = 128
	}
	p := &Playback{opts: opts}
	if err := p.Reset(0); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the simulation identifier.
func (p *Playback) Name() string { return p.opts.Name }

// Size returns the render dimensions. 1-D lattices render as a spacetime
// diagram Height rows deep.
func (p *Playback) Size() Size {
	if p.spacetime != nil {
		return Size{W: p.spacetime.W, H: p.spacetime.H}
	}
	return Size{W: p.cur.Cols(), H: p.cur.Rows()}
}

// Cells exposes the render buffer.
func (p *Playback) Cells() []uint8 {
	if p.spacetime != nil {
		return p.spacetime.Cells()
	}
	return p.cur.Cells()
}

// Lattice returns the current generation.
func (p *Playback) Lattice() *ca.Lattice[uint8] { return p.cur }

// Generation returns the number of steps taken since the last reset.
func (p *Playback) Generation() int { return p.gen }

// Parameters describes the configuration the playback was built with.
func (p *Playback) Parameters() ParameterSnapshot { return p.opts.Params }

// Reset rebuilds the initial condition and the rule from seed.
func (p *Playback) Reset(seed int64) error {
	cur, evolve, err := p.opts.Setup(seed)
	if err != nil {
		return fmt.Errorf("%s: reset: %w", p.opts.Name, err)
	}
	p.cur, p.evolve, p.pending, p.gen = cur, evolve, nil, 0
	p.spacetime = nil
	if cur.Dims() == 1 {
		p.spacetime = NewSpacetime(cur.Cols(), p.opts.Height)
		p.spacetime.Push(cur.Cells())
	}
	return nil
}

// Step advances by one generation, running the engine when the queue of
// precomputed generations is empty.
func (p *Playback) Step() error {
	if len(p.pending) == 0 {
		h, err := p.evolve(p.cur, p.opts.Batch+1)
		if err != nil {
			return fmt.Errorf("%s: generation %d: %w", p.opts.Name, p.gen+1, err)
		}
		if h.Len() < 2 {
			return fmt.Errorf("%w: %s produced no generations", ca.ErrConfiguration, p.opts.Name)
		}
		p.pending = h[1:]
	}
	p.cur, p.pending = p.pending[0], p.pending[1:]
	p.gen++
	if p.spacetime != nil {
		p.spacetime.Push(p.cur.Cells())
	}
	return nil
}
