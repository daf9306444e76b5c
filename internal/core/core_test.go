package core

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellca/pkg/ca"
)

var rule90 = ca.PureFunc(func(n ca.Neighbourhood[uint8]) uint8 { return n.At(0, 0) ^ n.At(0, 2) })

func rule90Setup(seed int64) (*ca.Lattice[uint8], Evolver, error) {
	return ca.InitSimple[uint8](9, 1), EngineEvolver(rule90, ca.DefaultConfig()), nil
}

func TestPlaybackMatchesEvolve(t *testing.T) {
	p, err := NewPlayback(PlaybackOptions{Name: "r90", Height: 4, Batch: 3, Setup: rule90Setup})
	require.NoError(t, err)
	assert.Equal(t, Size{W: 9, H: 4}, p.Size())

	want, err := ca.Evolve(ca.InitSimple[uint8](9, 1), 10, rule90, ca.DefaultConfig())
	require.NoError(t, err)
	for gen := 1; gen < want.Len(); gen++ {
		require.NoError(t, p.Step())
		assert.True(t, p.Lattice().Equal(want[gen]), "generation %d", gen)
	}
	assert.Equal(t, 9, p.Generation())

	// Row 0 is the newest generation, row 3 three steps older.
	cells := p.Cells()
	assert.Equal(t, want[9].Cells(), cells[:9])
	assert.Equal(t, want[6].Cells(), cells[27:36])

	require.NoError(t, p.Reset(1))
	assert.Zero(t, p.Generation())
	assert.Equal(t, want[0].Cells(), p.Cells()[:9])
	assert.Equal(t, make([]uint8, 9), p.Cells()[9:18])
}

func TestPlayback2DUsesLattice(t *testing.T) {
	p, err := NewPlayback(PlaybackOptions{
		Name: "flat",
		Setup: func(int64) (*ca.Lattice[uint8], Evolver, error) {
			return ca.New2D[uint8](3, 5), EngineEvolver(rule90, ca.DefaultConfig()), nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Size{W: 5, H: 3}, p.Size())
	assert.Len(t, p.Cells(), 15)
}

func TestPlaybackWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := ca.RuleFunc[uint8](func(ca.Neighbourhood[uint8], ca.Cell, int) (uint8, error) { return 0, boom })
	p, err := NewPlayback(PlaybackOptions{
		Name: "failing",
		Setup: func(int64) (*ca.Lattice[uint8], Evolver, error) {
			return ca.New1D[uint8](4), EngineEvolver(failing, ca.DefaultConfig()), nil
		},
	})
	require.NoError(t, err)

	err = p.Step()
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing: generation 1")

	_, err = NewPlayback(PlaybackOptions{Name: "none"})
	assert.ErrorIs(t, err, ca.ErrConfiguration)
}

func TestSpacetimePush(t *testing.T) {
	s := NewSpacetime(3, 2)
	s.Push([]uint8{1, 2, 3})
	s.Push([]uint8{4, 5})
	assert.Equal(t, []uint8{4, 5, 0}, s.Row(0))
	assert.Equal(t, []uint8{1, 2, 3}, s.Row(1))
	s.Clear()
	assert.Equal(t, make([]uint8, 6), s.Cells())
}

func TestRegistry(t *testing.T) {
	Register("test-registry", func(map[string]string) (Sim, error) {
		return NewPlayback(PlaybackOptions{Name: "test-registry", Setup: rule90Setup})
	})
	Register("", nil)

	assert.Contains(t, Names(), "test-registry")
	sim, err := New("test-registry", nil)
	require.NoError(t, err)
	assert.Equal(t, "test-registry", sim.Name())

	_, err = New("missing", nil)
	assert.ErrorContains(t, err, `unknown simulation "missing"`)
}

func TestFixedStep(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	assert.Equal(t, 100*time.Millisecond, fs.Interval())
	assert.True(t, fs.ShouldStep())
	assert.False(t, fs.ShouldStep())

	clock = clock.Add(60 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	clock = clock.Add(40 * time.Millisecond)
	assert.True(t, fs.ShouldStep())

	// A long stall yields one extra tick, not a burst.
	clock = clock.Add(time.Second)
	assert.True(t, fs.ShouldStep())
	assert.True(t, fs.ShouldStep())
	assert.False(t, fs.ShouldStep())
}

func TestFixedStepWaitHonoursContext(t *testing.T) {
	fs := NewFixedStep(1)
	require.NoError(t, fs.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, fs.Wait(ctx), context.Canceled)
}

func TestParameterSnapshotWriteTo(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{EngineGroup(ca.DefaultConfig())}}
	var buf bytes.Buffer
	n, err := snap.WriteTo(&buf)
	require.NoError(t, err)

	assert.EqualValues(t, buf.Len(), n)
	assert.Contains(t, buf.String(), "engine: neighbourhood and caching")
	assert.Contains(t, buf.String(), "memoize=none")
	assert.Contains(t, buf.String(), "r=1")
}
