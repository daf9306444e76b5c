package ca

import "fmt"

// Neighbourhood is a read-only window onto the previous generation centred on
// the cell being updated. It is a view into an engine-owned buffer and is only
// valid for the duration of the rule call that receives it.
//
// 1-D neighbourhoods have one row of 2r+1 cells. 2-D neighbourhoods are
// (2r+1)×(2r+1) blocks; under the von Neumann topology the cells outside the
// diamond are masked and read as zero.
type Neighbourhood[V Value] struct {
	rows, cols int
	cells      []V
	mask       []bool
}

// NewNeighbourhood1D wraps cells as a 1-D neighbourhood, mainly for exercising
// rules outside an evolution.
func NewNeighbourhood1D[V Value](cells ...V) Neighbourhood[V] {
	return Neighbourhood[V]{rows: 1, cols: len(cells), cells: cells}
}

// NewNeighbourhood2D builds an unmasked 2-D neighbourhood from square rows.
func NewNeighbourhood2D[V Value](rows [][]V) (Neighbourhood[V], error) {
	l, err := FromRows(rows)
	if err != nil {
		return Neighbourhood[V]{}, err
	}
	return Neighbourhood[V]{rows: l.rows, cols: l.cols, cells: l.data}, nil
}

// Rows returns the block height.
func (n Neighbourhood[V]) Rows() int { return n.rows }

// Cols returns the block width.
func (n Neighbourhood[V]) Cols() int { return n.cols }

// At returns the value at block position (r, c).
func (n Neighbourhood[V]) At(r, c int) V { return n.cells[r*n.cols+c] }

// Masked reports whether (r, c) lies outside the neighbourhood's topology.
func (n Neighbourhood[V]) Masked(r, c int) bool {
	return n.mask != nil && n.mask[r*n.cols+c]
}

// Center returns the value of the cell being updated.
func (n Neighbourhood[V]) Center() V { return n.At(n.rows/2, n.cols/2) }

// Len returns the number of unmasked cells.
func (n Neighbourhood[V]) Len() int {
	if n.mask == nil {
		return len(n.cells)
	}
	count := 0
	for _, m := range n.mask {
		if !m {
			count++
		}
	}
	return count
}

// Values returns a copy of the unmasked cells in row-major order.
func (n Neighbourhood[V]) Values() []V {
	out := make([]V, 0, len(n.cells))
	for i, v := range n.cells {
		if n.mask != nil && n.mask[i] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Sum adds up the unmasked cells.
func (n Neighbourhood[V]) Sum() V {
	var total V
	for i, v := range n.cells {
		if n.mask != nil && n.mask[i] {
			continue
		}
		total += v
	}
	return total
}

func (n Neighbourhood[V]) String() string {
	return fmt.Sprintf("%dx%d%v", n.rows, n.cols, n.cells)
}
