package ca

import "fmt"

// BlockSize is the shape of one partition block. 1-D lattices use Rows 1.
type BlockSize struct {
	Rows, Cols int
}

// Block is the content of one partition block, row-major. Cells is a copy
// owned by the callee for the duration of the call.
type Block[V Value] struct {
	Rows, Cols int
	Cells      []V
}

// At returns the value at block position (r, c).
func (b Block[V]) At(r, c int) V { return b.Cells[r*b.Cols+c] }

// BlockRule maps a block and the timestep to the block's next contents.
type BlockRule[V Value] interface {
	ApplyBlock(b Block[V], t int) ([]V, error)
}

// BlockFunc adapts a function to BlockRule.
type BlockFunc[V Value] func(b Block[V], t int) ([]V, error)

// ApplyBlock calls f(b, t).
func (f BlockFunc[V]) ApplyBlock(b Block[V], t int) ([]V, error) { return f(b, t) }

// EvolveBlock runs a partitioning (Margolus) automaton. Generation t tiles the
// lattice with blocks starting at offset 0 when t is odd and at offset 1 in
// every dimension when t is even; blocks crossing an edge wrap around.
func EvolveBlock[V Value](initial *Lattice[V], timesteps int, size BlockSize, rule BlockRule[V]) (History[V], error) {
	if initial == nil || rule == nil {
		return nil, fmt.Errorf("%w: initial lattice and block rule are required", ErrConfiguration)
	}
	if timesteps < 1 {
		return nil, fmt.Errorf("%w: timesteps must be at least 1, got %d", ErrConfiguration, timesteps)
	}
	if initial.dims == 1 && size.Rows == 0 {
		size.Rows = 1
	}
	if size.Rows < 1 || size.Cols < 1 {
		return nil, fmt.Errorf("%w: block size %dx%d", ErrConfiguration, size.Rows, size.Cols)
	}
	if initial.rows%size.Rows != 0 || initial.cols%size.Cols != 0 {
		return nil, fmt.Errorf("%w: %dx%d lattice, %dx%d blocks",
			ErrIndivisibleSize, initial.rows, initial.cols, size.Rows, size.Cols)
	}

	history := History[V]{initial.Clone()}
	buf := make([]V, size.Rows*size.Cols)
	for t := 1; t < timesteps; t++ {
		prev, next := history[t-1], initial.sameShape()
		off := 1
		if t%2 == 1 {
			off = 0
		}
		for br := off; br < initial.rows+off; br += size.Rows {
			for bc := off; bc < initial.cols+off; bc += size.Cols {
				if err := applyBlock(prev, next, br, bc, size, rule, t, buf); err != nil {
					return history, err
				}
			}
		}
		history = append(history, next)
	}
	return history, nil
}

func applyBlock[V Value](prev, next *Lattice[V], br, bc int, size BlockSize, rule BlockRule[V], t int, buf []V) error {
	for i := 0; i < size.Rows; i++ {
		for j := 0; j < size.Cols; j++ {
			buf[i*size.Cols+j] = prev.At(br+i, bc+j)
		}
	}
	out, err := rule.ApplyBlock(Block[V]{Rows: size.Rows, Cols: size.Cols, Cells: buf}, t)
	if err != nil {
		return fmt.Errorf("block %s at t=%d: %w", Cell{Row: br, Col: bc}, t, err)
	}
	if len(out) != len(buf) {
		return fmt.Errorf("%w: block rule returned %d cells, want %d", ErrConfiguration, len(out), len(buf))
	}
	for i := 0; i < size.Rows; i++ {
		for j := 0; j < size.Cols; j++ {
			next.Set(br+i, bc+j, out[i*size.Cols+j])
		}
	}
	return nil
}
