package rules

import (
	"golang.org/x/exp/constraints"

	"cellca/pkg/ca"
)

// SandpileCapacity is the height at which a sandpile cell topples.
const SandpileCapacity = 4

type grain struct {
	cell ca.Cell
	t    int
}

// Sandpile is the Bak–Tang–Wiesenfeld sandpile on a radius-1 neighbourhood.
// A cell at or above capacity loses four grains and each neighbour at or
// above capacity gives it one.
type Sandpile[V constraints.Integer] struct {
	rows, cols int
	closed     bool
	grains     map[grain]int
}

// NewSandpile returns a sandpile for a rows×cols lattice. With a closed
// boundary the outermost ring of cells is held at 0 and grains fall off.
func NewSandpile[V constraints.Integer](rows, cols int, closed bool) *Sandpile[V] {
	return &Sandpile[V]{rows: rows, cols: cols, closed: closed, grains: make(map[grain]int)}
}

// AddGrain schedules one extra grain on cell c in generation t.
func (s *Sandpile[V]) AddGrain(c ca.Cell, t int) {
	s.grains[grain{cell: c, t: t}]++
}

// Stateful reports true: results depend on the cell and the timestep.
func (s *Sandpile[V]) Stateful() bool { return true }

func (s *Sandpile[V]) boundary(c ca.Cell) bool {
	return c.Row == 0 || c.Row == s.rows-1 || c.Col == 0 || c.Col == s.cols-1
}

// Apply implements ca.Rule.
func (s *Sandpile[V]) Apply(n ca.Neighbourhood[V], c ca.Cell, t int) (V, error) {
	if s.closed && s.boundary(c) {
		return 0, nil
	}
	key, err := KeyOf(n)
	if err != nil {
		return 0, err
	}
	out := key[0]
	for _, neighbour := range key[1:] {
		if neighbour >= SandpileCapacity {
			out++
		}
	}
	if key[0] >= SandpileCapacity {
		out -= SandpileCapacity
	}
	out += V(s.grains[grain{cell: c, t: t}])
	return out, nil
}
