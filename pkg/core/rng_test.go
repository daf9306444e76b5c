package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGIsDeterministic(t *testing.T) {
	a, b := NewRNG(9), NewRNG(9)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
	assert.Zero(t, a.IntN(0))
	assert.Zero(t, a.IntN(-3))
}

func TestFillStatesRange(t *testing.T) {
	buf := make([]uint8, 512)
	NewRNG(1).FillStates(buf, 3)
	seen := map[uint8]bool{}
	for _, v := range buf {
		assert.Less(t, v, uint8(3))
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}

func TestShufflePermutes(t *testing.T) {
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	NewRNG(4).Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, xs)

	bools := 0
	r := NewRNG(5)
	for i := 0; i < 200; i++ {
		if r.Bool() {
			bools++
		}
	}
	assert.InDelta(t, 100, bools, 40)
}
