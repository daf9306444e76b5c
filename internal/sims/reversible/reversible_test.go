package reversible

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellca/pkg/ca"
	"cellca/pkg/rules"
)

func TestInitialBand(t *testing.T) {
	l := Initial(Config{Width: 10, Band: 4}, 0)
	assert.Equal(t, []uint8{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}, l.Cells())

	assert.Len(t, Initial(Config{Width: 3, Band: 9}, 0).Cells(), 3)
	assert.Equal(t, Initial(Config{Width: 30}, 5).Cells(), Initial(Config{Width: 30}, 5).Cells())
}

func TestPlaybackContinuesAcrossBatches(t *testing.T) {
	c := DefaultConfig()
	c.Width, c.Height = 60, 16
	p, err := New(c)
	require.NoError(t, err)

	inner, err := rules.NKSRule[uint8](122)
	require.NoError(t, err)
	start := Initial(c, 0)
	want, err := ca.Evolve(start, 81, rules.NewReversible[uint8](inner, start), ca.DefaultConfig())
	require.NoError(t, err)

	// 80 generations span three engine batches.
	for gen := 1; gen <= 80; gen++ {
		require.NoError(t, p.Step())
		require.Equal(t, want[gen].Cells(), p.Lattice().Cells(), "generation %d", gen)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"band": "0", "rule": "300"})
	assert.Zero(t, c.Band)
	assert.EqualValues(t, 122, c.Rule)
}
