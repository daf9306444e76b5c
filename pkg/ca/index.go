package ca

import (
	"fmt"
	"strings"
)

// Topology selects the shape of a 2-D neighbourhood.
type Topology string

const (
	// Moore uses the full (2r+1)×(2r+1) block.
	Moore Topology = "Moore"
	// VonNeumann uses the diamond of cells within Manhattan distance r.
	VonNeumann Topology = "von Neumann"
)

// ParseTopology resolves a topology name.
func ParseTopology(name string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "moore":
		return Moore, nil
	case "von neumann", "vonneumann", "von_neumann", "von-neumann":
		return VonNeumann, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTopology, name)
	}
}

// indexer holds the wrapped window indices of every row and column for one
// lattice shape and radius. Wrapping is separable, so the window of cell
// (r, c) is rowIdx[r] × colIdx[c].
type indexer struct {
	rows, cols int
	rr, rc     int
	rowIdx     [][]int
	colIdx     [][]int
	mask       []bool
}

func newIndexer(rows, cols, dims, radius int, topology Topology) (*indexer, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: negative radius %d", ErrConfiguration, radius)
	}
	x := &indexer{rows: rows, cols: cols, rc: radius}
	if dims == 2 {
		x.rr = radius
		topo, err := ParseTopology(string(topology))
		if err != nil {
			return nil, err
		}
		if topo == VonNeumann {
			x.mask = vonNeumannMask(radius)
		}
	}
	x.rowIdx = windowIndices(rows, x.rr)
	x.colIdx = windowIndices(cols, x.rc)
	return x, nil
}

// windowIndices returns, for each position in [0, size), the wrapped indices
// of the window [i-r, i+r].
func windowIndices(size, r int) [][]int {
	out := make([][]int, size)
	for i := range out {
		w := make([]int, 2*r+1)
		for j := range w {
			w[j] = wrap(i-r+j, size)
		}
		out[i] = w
	}
	return out
}

// vonNeumannMask marks the cells of a (2r+1)² block outside the diamond.
func vonNeumannMask(r int) []bool {
	side := 2*r + 1
	mask := make([]bool, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			mask[i*side+j] = abs(i-r)+abs(j-r) > r
		}
	}
	return mask
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (x *indexer) window() (int, int) { return 2*x.rr + 1, 2*x.rc + 1 }

func (x *indexer) windowLen() int {
	h, w := x.window()
	return h * w
}

// gather fills buf with the neighbourhood of (row, col) from src and returns
// the view. Masked cells are zeroed.
func gather[V Value](x *indexer, src *Lattice[V], row, col int, buf []V) Neighbourhood[V] {
	h, w := x.window()
	cols := x.colIdx[col]
	i := 0
	for _, sr := range x.rowIdx[row] {
		base := sr * src.cols
		for _, sc := range cols {
			if x.mask != nil && x.mask[i] {
				var zero V
				buf[i] = zero
			} else {
				buf[i] = src.data[base+sc]
			}
			i++
		}
	}
	return Neighbourhood[V]{rows: h, cols: w, cells: buf[:h*w], mask: x.mask}
}

// gatherBlock copies the wrapped block covering rows [r0-rr, r1+rr) and
// columns [c0-rc, c1+rc) into buf, growing it as needed.
func gatherBlock[V Value](x *indexer, src *Lattice[V], g region, buf []V) ([]V, blockShape) {
	shape := blockShape{rows: g.r1 - g.r0 + 2*x.rr, cols: g.c1 - g.c0 + 2*x.rc}
	buf = buf[:0]
	for r := g.r0 - x.rr; r < g.r1+x.rr; r++ {
		base := wrap(r, x.rows) * src.cols
		for c := g.c0 - x.rc; c < g.c1+x.rc; c++ {
			buf = append(buf, src.data[base+wrap(c, x.cols)])
		}
	}
	return buf, shape
}
