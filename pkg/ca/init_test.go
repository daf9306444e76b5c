package ca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSimple(t *testing.T) {
	l := InitSimple(6, 3)
	assert.Equal(t, []int{0, 0, 0, 3, 0, 0}, l.Row(0))
}

func TestInitRandomPadsAroundCentre(t *testing.T) {
	l, err := InitRandom(10, 3, testRNG(), 4, -1)
	require.NoError(t, err)

	cells := l.Row(0)
	assert.Equal(t, []int{-1, -1, -1}, cells[:3])
	assert.Equal(t, []int{-1, -1, -1}, cells[7:])
	for _, v := range cells[3:7] {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}

	again, err := InitRandom(10, 3, testRNG(), 4, -1)
	require.NoError(t, err)
	assert.True(t, l.Equal(again))

	_, err = InitRandom(10, 2, testRNG(), 11, 0)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestInitSimple2D(t *testing.T) {
	l, err := InitSimple2D[uint8](3, 5, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), l.At(1, 2))

	l, err = InitSimple2D[uint8](3, 5, 2, &Cell{Row: 2, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), l.At(2, 4))

	_, err = InitSimple2D[uint8](3, 5, 1, &Cell{Row: 3, Col: 0})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestInitRandom2DRange(t *testing.T) {
	l := InitRandom2D[float64](4, 4, 3, testRNG())
	for _, v := range l.Cells() {
		assert.Contains(t, []float64{0, 1, 2}, v)
	}
}
