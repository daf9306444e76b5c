package rules

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"cellca/pkg/ca"
)

// Reversible turns any integer rule into a second-order, invertible one: the
// result is the inner rule's result XOR the cell's value one generation back.
type Reversible[V constraints.Integer] struct {
	inner ca.Rule[V]
	cols  int
	prev  []V
}

// NewReversible wraps inner. prev is the generation preceding the initial
// condition and is copied.
func NewReversible[V constraints.Integer](inner ca.Rule[V], prev *ca.Lattice[V]) *Reversible[V] {
	return &Reversible[V]{
		inner: inner,
		cols:  prev.Cols(),
		prev:  append([]V(nil), prev.Cells()...),
	}
}

// Stateful reports true: each call records the cell's current value.
func (r *Reversible[V]) Stateful() bool { return true }

// Apply implements ca.Rule.
func (r *Reversible[V]) Apply(n ca.Neighbourhood[V], c ca.Cell, t int) (V, error) {
	idx := c.Row*r.cols + c.Col
	if idx < 0 || idx >= len(r.prev) {
		return 0, fmt.Errorf("%w: cell %s outside the previous state", ca.ErrConfiguration, c)
	}
	v, err := r.inner.Apply(n, c, t)
	if err != nil {
		return v, err
	}
	out := v ^ r.prev[idx]
	r.prev[idx] = n.Center()
	return out, nil
}
