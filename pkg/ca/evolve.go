package ca

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Continue decides, before generation t is computed, whether the evolution
// should go on. h holds generations 0..t-1.
type Continue[V Value] func(h History[V], t int) bool

// Evolve runs rule from initial until the history holds timesteps generations,
// the initial condition included.
//
// If the rule fails, the generations computed before the failure are returned
// together with the error.
func Evolve[V Value](initial *Lattice[V], timesteps int, rule Rule[V], cfg Config) (History[V], error) {
	if timesteps < 1 {
		return nil, fmt.Errorf("%w: timesteps must be at least 1, got %d", ErrConfiguration, timesteps)
	}
	return EvolveUntil(initial, func(_ History[V], t int) bool { return t < timesteps }, rule, cfg)
}

// EvolveUntil runs rule from initial for as long as cont returns true. A cont
// that never returns false loops forever.
func EvolveUntil[V Value](initial *Lattice[V], cont Continue[V], rule Rule[V], cfg Config) (History[V], error) {
	if initial == nil {
		return nil, fmt.Errorf("%w: nil initial lattice", ErrConfiguration)
	}
	if rule == nil || cont == nil {
		return nil, fmt.Errorf("%w: rule and continuation are required", ErrConfiguration)
	}
	x, err := newIndexer(initial.rows, initial.cols, initial.dims, cfg.Radius, cfg.Topology)
	if err != nil {
		return nil, err
	}
	s, err := newStepper(x, rule, cfg)
	if err != nil {
		return nil, err
	}
	defer s.close()

	logger := cfg.logger().With(zap.String("run_id", uuid.NewString()))
	logger.Debug("evolution started",
		zap.Int("rows", initial.rows),
		zap.Int("cols", initial.cols),
		zap.Int("radius", cfg.Radius),
		zap.String("memoize", string(cfg.Memoize)),
		zap.Int("workers", cfg.Workers),
	)

	started := time.Now()
	history := History[V]{initial.Clone()}
	var runErr error
	for t := 1; cont(history, t); t++ {
		next := initial.sameShape()
		if runErr = s.step(history[t-1], next, t); runErr != nil {
			break
		}
		history = append(history, next)
	}

	st := s.stats()
	st.Generations = len(history)
	if cfg.Stats != nil {
		*cfg.Stats = st
	}
	fields := []zap.Field{
		zap.Int("generations", st.Generations),
		zap.Int64("invocations", st.Invocations),
		zap.Int64("hits", st.Hits),
		zap.Int64("misses", st.Misses),
		zap.Duration("elapsed", time.Since(started)),
	}
	if runErr != nil {
		logger.Warn("evolution aborted", append(fields, zap.Error(runErr))...)
		return history, runErr
	}
	logger.Info("evolution finished", fields...)
	return history, nil
}

// UntilFixedPoint continues until the newest generation equals the one
// before it.
func UntilFixedPoint[V Value]() Continue[V] {
	return func(h History[V], _ int) bool {
		n := len(h)
		return n < 2 || !h[n-1].Equal(h[n-2])
	}
}
