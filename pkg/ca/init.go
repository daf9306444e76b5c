package ca

import (
	"fmt"

	"cellca/pkg/core"
)

// InitSimple returns a 1-D lattice of n zeros with the centre cell set to val.
func InitSimple[V Value](n int, val V) *Lattice[V] {
	l := New1D[V](n)
	l.data[l.cols/2] = val
	return l
}

// InitRandom returns a 1-D lattice whose centred run of nRandomized cells
// holds random states in [0, k); the remaining cells hold empty. A negative
// nRandomized randomizes every cell.
func InitRandom[V Value](n, k int, rng *core.RNG, nRandomized int, empty V) (*Lattice[V], error) {
	if nRandomized < 0 {
		nRandomized = n
	}
	if nRandomized > n {
		return nil, fmt.Errorf("%w: %d randomized sites on a lattice of %d", ErrConfiguration, nRandomized, n)
	}
	l := New1D[V](n)
	left := (n - nRandomized) / 2
	for i := range l.data {
		if i >= left && i < left+nRandomized {
			l.data[i] = V(rng.IntN(k))
		} else {
			l.data[i] = empty
		}
	}
	return l, nil
}

// InitSimple2D returns a rows×cols lattice of zeros with one cell set to val:
// at when given, the centre otherwise.
func InitSimple2D[V Value](rows, cols int, val V, at *Cell) (*Lattice[V], error) {
	l := New2D[V](rows, cols)
	if at == nil {
		l.data[l.Index(l.rows/2, l.cols/2)] = val
		return l, nil
	}
	if at.Row < 0 || at.Row >= l.rows || at.Col < 0 || at.Col >= l.cols {
		return nil, fmt.Errorf("%w: coordinate %s outside %dx%d lattice", ErrConfiguration, *at, l.rows, l.cols)
	}
	l.data[l.Index(at.Row, at.Col)] = val
	return l, nil
}

// InitRandom2D returns a rows×cols lattice of random states in [0, k).
func InitRandom2D[V Value](rows, cols, k int, rng *core.RNG) *Lattice[V] {
	l := New2D[V](rows, cols)
	for i := range l.data {
		l.data[i] = V(rng.IntN(k))
	}
	return l
}
