package rules

import (
	"fmt"

	"cellca/pkg/ca"
	"cellca/pkg/core"
)

// UpdateOrder configures an Asynchronous rule. Either Cells or a positive
// Cols must be set.
type UpdateOrder struct {
	// Cells is an explicit order of distinct cells.
	Cells []ca.Cell
	// Rows and Cols generate a row-major order over the whole lattice when
	// Cells is empty. 1-D lattices use Rows 0 or 1.
	Rows, Cols int
	// Shuffle, when set, permutes the order at construction and again every
	// time the cursor advances.
	Shuffle *core.RNG
}

// Asynchronous updates a single cell per generation: the cell under the
// cursor gets the inner rule's result, every other cell keeps its value.
type Asynchronous[V ca.Value] struct {
	inner   ca.Rule[V]
	order   []ca.Cell
	members map[ca.Cell]struct{}
	rng     *core.RNG

	cursor  int
	applied int
}

// NewAsynchronous wraps inner with the given update order.
func NewAsynchronous[V ca.Value](inner ca.Rule[V], o UpdateOrder) (*Asynchronous[V], error) {
	order := append([]ca.Cell(nil), o.Cells...)
	if len(order) == 0 {
		if o.Cols <= 0 {
			return nil, fmt.Errorf("%w: asynchronous rule needs an update order or a cell count", ca.ErrConfiguration)
		}
		rows := max(o.Rows, 1)
		for r := 0; r < rows; r++ {
			for c := 0; c < o.Cols; c++ {
				order = append(order, ca.Cell{Row: r, Col: c})
			}
		}
	}
	members := make(map[ca.Cell]struct{}, len(order))
	for _, c := range order {
		if _, dup := members[c]; dup {
			return nil, fmt.Errorf("%w: cell %s appears twice in the update order", ca.ErrConfiguration, c)
		}
		members[c] = struct{}{}
	}
	a := &Asynchronous[V]{inner: inner, order: order, members: members, rng: o.Shuffle}
	a.shuffle()
	return a, nil
}

// Stateful reports true: the cursor moves as the rule is applied.
func (a *Asynchronous[V]) Stateful() bool { return true }

// Current returns the cell whose turn it is.
func (a *Asynchronous[V]) Current() ca.Cell { return a.order[a.cursor] }

// Order returns a copy of the current update order.
func (a *Asynchronous[V]) Order() []ca.Cell { return append([]ca.Cell(nil), a.order...) }

// Apply implements ca.Rule.
func (a *Asynchronous[V]) Apply(n ca.Neighbourhood[V], c ca.Cell, t int) (V, error) {
	if _, ok := a.members[c]; !ok {
		return n.Center(), nil
	}
	out := n.Center()
	if c == a.order[a.cursor] {
		v, err := a.inner.Apply(n, c, t)
		if err != nil {
			return v, err
		}
		out = v
	}
	a.applied++
	if a.applied == len(a.order) {
		a.applied = 0
		a.cursor = (a.cursor + 1) % len(a.order)
		a.shuffle()
	}
	return out, nil
}

func (a *Asynchronous[V]) shuffle() {
	if a.rng == nil {
		return
	}
	a.rng.Shuffle(len(a.order), func(i, j int) { a.order[i], a.order[j] = a.order[j], a.order[i] })
}
