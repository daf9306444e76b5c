package ca

import (
	"fmt"
	"unsafe"

	"golang.org/x/sync/errgroup"
)

// stepper produces generation t from prev into next. Implementations own
// their scratch buffers and caches for the length of one evolution call.
type stepper[V Value] interface {
	step(prev, next *Lattice[V], t int) error
	stats() Stats
	close()
}

func newStepper[V Value](x *indexer, rule Rule[V], cfg Config) (stepper[V], error) {
	memo, err := ParseMemo(string(cfg.Memoize))
	if err != nil {
		return nil, err
	}
	stateful := isStateful(rule)
	if stateful && memo != MemoNone {
		return nil, fmt.Errorf("%w: stateful rule cannot be memoized (%s)", ErrConfiguration, memo)
	}
	if stateful && cfg.Workers > 1 {
		return nil, fmt.Errorf("%w: stateful rule cannot run on %d workers", ErrConfiguration, cfg.Workers)
	}
	switch memo {
	case MemoFlat:
		return newFlat(x, rule, cfg.FlatCacheSize)
	case MemoRecursive:
		return newRecursive(x, rule), nil
	default:
		return newDirect(x, rule, cfg.Workers), nil
	}
}

// direct calls the rule once per cell per generation.
type direct[V Value] struct {
	x       *indexer
	rule    Rule[V]
	workers int
	buf     []V
	calls   int64
}

func newDirect[V Value](x *indexer, rule Rule[V], workers int) *direct[V] {
	if workers < 1 {
		workers = 1
	}
	return &direct[V]{x: x, rule: rule, workers: workers, buf: make([]V, x.windowLen())}
}

func (d *direct[V]) step(prev, next *Lattice[V], t int) error {
	total := prev.Len()
	if d.workers == 1 || total < 2*d.workers {
		n, err := applyRange(d.x, d.rule, prev, next, t, 0, total, d.buf)
		d.calls += n
		return err
	}

	var (
		eg       errgroup.Group
		perBand  = (total + d.workers - 1) / d.workers
		counts   = make([]int64, d.workers)
		windowSz = d.x.windowLen()
	)
	for i := range d.workers {
		var (
			start = i * perBand
			end   = min(start+perBand, total)
		)
		if start >= total {
			break
		}
		eg.Go(func() error {
			n, err := applyRange(d.x, d.rule, prev, next, t, start, end, make([]V, windowSz))
			counts[i] = n
			return err
		})
	}
	err := eg.Wait()
	for _, n := range counts {
		d.calls += n
	}
	return err
}

func (d *direct[V]) stats() Stats { return Stats{Invocations: d.calls} }

func (d *direct[V]) close() {}

// applyRange updates the cells with linear index in [start, end). Each cell is
// written exactly once, so disjoint ranges may run concurrently.
func applyRange[V Value](x *indexer, rule Rule[V], prev, next *Lattice[V], t, start, end int, buf []V) (int64, error) {
	var calls int64
	for i := start; i < end; i++ {
		row, col := i/prev.cols, i%prev.cols
		v, err := invoke(x, rule, prev, row, col, t, buf)
		calls++
		if err != nil {
			return calls, err
		}
		next.data[i] = v
	}
	return calls, nil
}

func invoke[V Value](x *indexer, rule Rule[V], prev *Lattice[V], row, col, t int, buf []V) (V, error) {
	n := gather(x, prev, row, col, buf)
	cell := Cell{Row: row, Col: col}
	v, err := rule.Apply(n, cell, t)
	if err != nil {
		return v, fmt.Errorf("cell %s at t=%d: %w", cell, t, err)
	}
	return v, nil
}

// bytesOf reinterprets a value slice as its raw bytes. The result aliases s.
func bytesOf[V Value](s []V) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero V
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
