package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellca/pkg/ca"
	"cellca/pkg/rules"
)

func TestBlinkerOscillation(t *testing.T) {
	l := ca.New2D[uint8](5, 5)
	Stamp(l, 1, 2, "O", "O", "O")

	h, err := ca.Evolve(l, 3, rules.GameOfLife[uint8](), ca.DefaultConfig())
	require.NoError(t, err)

	horizontal := ca.New2D[uint8](5, 5)
	Stamp(horizontal, 2, 1, "OOO")
	assert.True(t, h[1].Equal(horizontal))
	assert.True(t, h[2].Equal(l))
}

func TestFromMapDefaultsToRecursive(t *testing.T) {
	c := FromMap(map[string]string{"w": "40", "pattern": PatternShips})
	assert.Equal(t, 40, c.Width)
	assert.Equal(t, PatternShips, c.Pattern)
	assert.Equal(t, ca.MemoRecursive, c.Engine.Memoize)

	assert.Equal(t, ca.MemoNone, FromMap(map[string]string{"memoize": "none"}).Engine.Memoize)
}

func TestShipsPlaybackMatchesUncached(t *testing.T) {
	c := DefaultConfig()
	c.Width, c.Height, c.Pattern = 40, 40, PatternShips
	p, err := New(c)
	require.NoError(t, err)

	want, err := ca.Evolve(Ships(40, 40), 41, rules.GameOfLife[uint8](), ca.DefaultConfig())
	require.NoError(t, err)
	for gen := 1; gen <= 40; gen++ {
		require.NoError(t, p.Step())
		require.True(t, p.Lattice().Equal(want[gen]), "generation %d", gen)
	}
}

func TestUnknownPattern(t *testing.T) {
	c := DefaultConfig()
	c.Pattern = "acorn"
	_, err := New(c)
	assert.ErrorIs(t, err, ca.ErrConfiguration)
}
