package ca

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// Value is the set of cell types a lattice can hold.
type Value interface {
	constraints.Integer | constraints.Float
}

// Cell identifies a lattice site. 1-D lattices use Row 0.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Lattice stores a 1-D or 2-D grid of cell values in row-major order.
// A 1-D lattice of N cells is stored as a single row.
type Lattice[V Value] struct {
	rows, cols int
	dims       int
	data       []V
}

// New1D allocates a zeroed 1-D lattice of n cells.
func New1D[V Value](n int) *Lattice[V] {
	if n <= 0 {
		n = 1
	}
	return &Lattice[V]{rows: 1, cols: n, dims: 1, data: make([]V, n)}
}

// New2D allocates a zeroed rows×cols lattice.
func New2D[V Value](rows, cols int) *Lattice[V] {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &Lattice[V]{rows: rows, cols: cols, dims: 2, data: make([]V, rows*cols)}
}

// FromSlice builds a 1-D lattice holding a copy of cells.
func FromSlice[V Value](cells []V) *Lattice[V] {
	l := New1D[V](len(cells))
	copy(l.data, cells)
	return l
}

// FromRows builds a 2-D lattice from equally sized rows.
func FromRows[V Value](rows [][]V) (*Lattice[V], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty lattice", ErrConfiguration)
	}
	l := New2D[V](len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != l.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrConfiguration, r, len(row), l.cols)
		}
		copy(l.data[r*l.cols:], row)
	}
	return l, nil
}

// Rows returns the number of rows (1 for a 1-D lattice).
func (l *Lattice[V]) Rows() int { return l.rows }

// Cols returns the number of columns.
func (l *Lattice[V]) Cols() int { return l.cols }

// Dims reports whether the lattice is 1-D or 2-D.
func (l *Lattice[V]) Dims() int { return l.dims }

// Len returns the number of cells.
func (l *Lattice[V]) Len() int { return len(l.data) }

// Cells exposes the backing slice. Generations held by a History must not be
// modified through it.
func (l *Lattice[V]) Cells() []V { return l.data }

// Index returns the linear slice index for (row, col).
func (l *Lattice[V]) Index(row, col int) int { return row*l.cols + col }

// Wrap applies toroidal wrapping to the provided coordinates.
func (l *Lattice[V]) Wrap(row, col int) (int, int) {
	return wrap(row, l.rows), wrap(col, l.cols)
}

// At returns the value at (row, col) after wrapping.
func (l *Lattice[V]) At(row, col int) V {
	row, col = l.Wrap(row, col)
	return l.data[l.Index(row, col)]
}

// Set stores v at (row, col) after wrapping.
func (l *Lattice[V]) Set(row, col int, v V) {
	row, col = l.Wrap(row, col)
	l.data[l.Index(row, col)] = v
}

// Row returns a copy of row r.
func (l *Lattice[V]) Row(r int) []V {
	r = wrap(r, l.rows)
	return slices.Clone(l.data[r*l.cols : (r+1)*l.cols])
}

// Col returns a copy of column c.
func (l *Lattice[V]) Col(c int) []V {
	c = wrap(c, l.cols)
	out := make([]V, l.rows)
	for r := range out {
		out[r] = l.data[r*l.cols+c]
	}
	return out
}

// Clone returns a deep copy.
func (l *Lattice[V]) Clone() *Lattice[V] {
	return &Lattice[V]{rows: l.rows, cols: l.cols, dims: l.dims, data: slices.Clone(l.data)}
}

// Equal reports whether both lattices have the same shape and content.
func (l *Lattice[V]) Equal(o *Lattice[V]) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.rows == o.rows && l.cols == o.cols && slices.Equal(l.data, o.data)
}

// sameShape returns an empty lattice with l's dimensions.
func (l *Lattice[V]) sameShape() *Lattice[V] {
	return &Lattice[V]{rows: l.rows, cols: l.cols, dims: l.dims, data: make([]V, len(l.data))}
}

func wrap(i, n int) int {
	return (i%n + n) % n
}

// History is the sequence of generations of one evolution. Index 0 holds the
// initial condition.
type History[V Value] []*Lattice[V]

// Len returns the number of generations.
func (h History[V]) Len() int { return len(h) }

// At returns generation t.
func (h History[V]) At(t int) *Lattice[V] { return h[t] }

// Last returns the newest generation, or nil for an empty history.
func (h History[V]) Last() *Lattice[V] {
	if len(h) == 0 {
		return nil
	}
	return h[len(h)-1]
}

// Equal reports whether both histories hold identical generations.
func (h History[V]) Equal(o History[V]) bool {
	return slices.EqualFunc(h, o, func(a, b *Lattice[V]) bool { return a.Equal(b) })
}

// Column returns the values of 1-D cell col across all generations.
func (h History[V]) Column(col int) []V {
	out := make([]V, len(h))
	for t, l := range h {
		out[t] = l.At(0, col)
	}
	return out
}

// Rows returns a 1-D history as a spacetime matrix, one row per generation.
func (h History[V]) Rows() [][]V {
	out := make([][]V, len(h))
	for t, l := range h {
		out[t] = l.Row(0)
	}
	return out
}
