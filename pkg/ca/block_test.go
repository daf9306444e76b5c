package ca

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvolveBlockAlternatesOffset1D(t *testing.T) {
	swap := BlockFunc[int](func(b Block[int], _ int) ([]int, error) {
		out := slices.Clone(b.Cells)
		slices.Reverse(out)
		return out, nil
	})
	h, err := EvolveBlock(FromSlice([]int{0, 1, 2, 3, 4, 5}), 3, BlockSize{Cols: 2}, swap)
	require.NoError(t, err)

	require.Len(t, h, 3)
	assert.Equal(t, []int{1, 0, 3, 2, 5, 4}, h[1].Row(0))
	assert.Equal(t, []int{4, 3, 0, 5, 2, 1}, h[2].Row(0))
}

func TestEvolveBlockWrapsMargolus2D(t *testing.T) {
	fill := BlockFunc[int](func(b Block[int], _ int) ([]int, error) {
		sum := 0
		for _, v := range b.Cells {
			sum += v
		}
		out := make([]int, len(b.Cells))
		for i := range out {
			out[i] = sum
		}
		return out, nil
	})
	start, err := InitSimple2D(4, 4, 1, &Cell{})
	require.NoError(t, err)

	h, err := EvolveBlock(start, 3, BlockSize{Rows: 2, Cols: 2}, fill)
	require.NoError(t, err)

	want1, err := FromRows([][]int{{1, 1, 0, 0}, {1, 1, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})
	require.NoError(t, err)
	assert.True(t, h[1].Equal(want1))
	// Every offset block straddles exactly one live cell.
	for _, v := range h[2].Cells() {
		assert.Equal(t, 1, v)
	}
}

func TestEvolveBlockErrors(t *testing.T) {
	ident := BlockFunc[int](func(b Block[int], _ int) ([]int, error) { return b.Cells, nil })
	_, err := EvolveBlock(New1D[int](5), 2, BlockSize{Cols: 2}, ident)
	assert.ErrorIs(t, err, ErrIndivisibleSize)

	_, err = EvolveBlock(New2D[int](4, 6), 2, BlockSize{Rows: 2, Cols: 4}, ident)
	assert.ErrorIs(t, err, ErrIndivisibleSize)

	short := BlockFunc[int](func(b Block[int], _ int) ([]int, error) { return b.Cells[:1], nil })
	h, err := EvolveBlock(New1D[int](4), 3, BlockSize{Cols: 2}, short)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Len(t, h, 1)

	_, err = EvolveBlock(New1D[int](4), 0, BlockSize{Cols: 2}, ident)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestBlockAt(t *testing.T) {
	b := Block[int]{Rows: 2, Cols: 2, Cells: []int{1, 2, 3, 4}}
	assert.Equal(t, 3, b.At(1, 0))
}
