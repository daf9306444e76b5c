package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellca/pkg/ca"
	"cellca/pkg/core"
)

func TestReversibleRunsBackwards(t *testing.T) {
	inner, err := NKSRule[uint8](122)
	require.NoError(t, err)

	cells := make([]uint8, 30)
	for i := 10; i < 20; i++ {
		cells[i] = 1
	}
	start := ca.FromSlice(cells)
	const steps = 40
	fwd, err := ca.Evolve(start, steps, ca.Rule[uint8](NewReversible(ca.Rule[uint8](inner), start)), ca.DefaultConfig())
	require.NoError(t, err)

	back := NewReversible(ca.Rule[uint8](inner), fwd[steps-1])
	rev, err := ca.Evolve(fwd[steps-2], steps-1, ca.Rule[uint8](back), ca.DefaultConfig())
	require.NoError(t, err)

	require.Len(t, rev, steps-1)
	for i := range rev {
		assert.True(t, rev[i].Equal(fwd[steps-2-i]), "step %d", i)
	}
}

func TestReversibleRejectsCaching(t *testing.T) {
	inner, err := NKSRule[uint8](90)
	require.NoError(t, err)
	start := ca.InitSimple[uint8](9, 1)
	cfg := ca.DefaultConfig()
	cfg.Memoize = ca.MemoFlat

	_, err = ca.Evolve(start, 3, ca.Rule[uint8](NewReversible(ca.Rule[uint8](inner), start)), cfg)
	assert.ErrorIs(t, err, ca.ErrConfiguration)
}

func TestSequential2D(t *testing.T) {
	inner, err := NewTotalistic[int](2, 9, 126)
	require.NoError(t, err)
	r, err := NewAsynchronous(ca.Rule[int](inner), UpdateOrder{Rows: 3, Cols: 3})
	require.NoError(t, err)

	start, err := ca.InitSimple2D(3, 3, 1, nil)
	require.NoError(t, err)
	h, err := ca.Evolve(start, 18, ca.Rule[int](r), ca.DefaultConfig())
	require.NoError(t, err)

	expected := [][][]int{
		{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}, {{1, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		{{1, 1, 0}, {0, 1, 0}, {0, 0, 0}}, {{1, 1, 1}, {0, 1, 0}, {0, 0, 0}},
		{{1, 1, 1}, {1, 1, 0}, {0, 0, 0}}, {{1, 1, 1}, {1, 1, 0}, {0, 0, 0}},
		{{1, 1, 1}, {1, 1, 1}, {0, 0, 0}}, {{1, 1, 1}, {1, 1, 1}, {1, 0, 0}},
		{{1, 1, 1}, {1, 1, 1}, {1, 0, 0}}, {{1, 1, 1}, {1, 1, 1}, {1, 0, 0}},
		{{0, 1, 1}, {1, 1, 1}, {1, 0, 0}}, {{0, 1, 1}, {1, 1, 1}, {1, 0, 0}},
		{{0, 1, 1}, {1, 1, 1}, {1, 0, 0}}, {{0, 1, 1}, {1, 1, 1}, {1, 0, 0}},
		{{0, 1, 1}, {1, 1, 1}, {1, 0, 0}}, {{0, 1, 1}, {1, 1, 1}, {1, 0, 0}},
		{{0, 1, 1}, {1, 1, 1}, {1, 0, 0}}, {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	}
	require.Len(t, h, len(expected))
	for gen, rows := range expected {
		want, err := ca.FromRows(rows)
		require.NoError(t, err)
		assert.True(t, h[gen].Equal(want), "generation %d", gen)
	}
}

func TestAsynchronousOneCellPerStep(t *testing.T) {
	flip := ca.PureFunc(func(n ca.Neighbourhood[uint8]) uint8 { return 1 - n.Center() })
	order := []ca.Cell{{Col: 4}, {Col: 1}, {Col: 7}, {Col: 2}, {Col: 9}}
	r, err := NewAsynchronous(flip, UpdateOrder{Cells: order})
	require.NoError(t, err)

	h, err := ca.Evolve(ca.New1D[uint8](12), len(order)+1, ca.Rule[uint8](r), ca.DefaultConfig())
	require.NoError(t, err)

	updated := map[int]int{}
	for gen := 1; gen < h.Len(); gen++ {
		changed := 0
		for c := 0; c < 12; c++ {
			if h[gen].At(0, c) != h[gen-1].At(0, c) {
				changed++
				updated[c]++
				assert.Equal(t, order[gen-1].Col, c)
			}
		}
		assert.Equal(t, 1, changed, "generation %d", gen)
	}
	assert.Len(t, updated, len(order))
	assert.Equal(t, order[0], r.Current())
}

func TestAsynchronousShuffledCycle(t *testing.T) {
	flip := ca.PureFunc(func(n ca.Neighbourhood[uint8]) uint8 { return 1 - n.Center() })
	r, err := NewAsynchronous(flip, UpdateOrder{Cols: 16, Shuffle: core.NewRNG(7)})
	require.NoError(t, err)
	var all []ca.Cell
	for c := 0; c < 16; c++ {
		all = append(all, ca.Cell{Col: c})
	}
	assert.ElementsMatch(t, all, r.Order())

	h, err := ca.Evolve(ca.New1D[uint8](16), 40, ca.Rule[uint8](r), ca.DefaultConfig())
	require.NoError(t, err)
	for gen := 1; gen < h.Len(); gen++ {
		changed := 0
		for c := 0; c < 16; c++ {
			if h[gen].At(0, c) != h[gen-1].At(0, c) {
				changed++
			}
		}
		assert.Equal(t, 1, changed, "generation %d", gen)
	}
}

func TestAsynchronousNeedsOrder(t *testing.T) {
	_, err := NewAsynchronous(GameOfLife[uint8](), UpdateOrder{})
	assert.ErrorIs(t, err, ca.ErrConfiguration)

	_, err = NewAsynchronous(GameOfLife[uint8](), UpdateOrder{Cells: []ca.Cell{{Col: 1}, {Col: 1}}})
	assert.ErrorIs(t, err, ca.ErrConfiguration)
}

func TestSandpileSettles(t *testing.T) {
	pile := NewSandpile[int](5, 5, true)
	start := ca.New2D[int](5, 5)
	start.Set(2, 2, 6)

	cfg := ca.DefaultConfig()
	cfg.Topology = ca.VonNeumann
	h, err := ca.EvolveUntil(start, ca.UntilFixedPoint[int](), ca.Rule[int](pile), cfg)
	require.NoError(t, err)

	require.Len(t, h, 3)
	want, err := ca.FromRows([][]int{
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 2, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	assert.True(t, h[1].Equal(want))
	assert.True(t, h[2].Equal(h[1]))
}

func TestSandpileAvalancheHalts(t *testing.T) {
	const size = 9
	pile := NewSandpile[int](size, size, true)
	start := ca.New2D[int](size, size)
	for r := 1; r < size-1; r++ {
		for c := 1; c < size-1; c++ {
			start.Set(r, c, 3)
		}
	}
	pile.AddGrain(ca.Cell{Row: 4, Col: 4}, 1)

	cfg := ca.DefaultConfig()
	cfg.Topology = ca.VonNeumann
	h, err := ca.EvolveUntil(start, func(h ca.History[int], t int) bool {
		return t < 500 && ca.UntilFixedPoint[int]()(h, t)
	}, ca.Rule[int](pile), cfg)
	require.NoError(t, err)

	n := h.Len()
	require.Greater(t, n, 3)
	require.Less(t, n, 500)
	assert.True(t, h[n-1].Equal(h[n-2]))
	for _, v := range h.Last().Cells() {
		assert.Less(t, v, SandpileCapacity)
	}
}

func TestSandpileScheduledGrain(t *testing.T) {
	pile := NewSandpile[int](5, 5, true)
	pile.AddGrain(ca.Cell{Row: 2, Col: 2}, 2)
	pile.AddGrain(ca.Cell{Row: 0, Col: 2}, 2)

	cfg := ca.DefaultConfig()
	cfg.Topology = ca.VonNeumann
	h, err := ca.Evolve(ca.New2D[int](5, 5), 4, ca.Rule[int](pile), cfg)
	require.NoError(t, err)

	assert.Equal(t, 0, h[1].At(2, 2))
	assert.Equal(t, 1, h[2].At(2, 2))
	assert.Equal(t, 1, h[3].At(2, 2))
	assert.Equal(t, 0, h[2].At(0, 2))
}

func TestGameOfLifeBlinker(t *testing.T) {
	start := ca.New2D[uint8](5, 5)
	start.Set(1, 2, 1)
	start.Set(2, 2, 1)
	start.Set(3, 2, 1)

	h, err := ca.Evolve(start, 3, GameOfLife[uint8](), ca.DefaultConfig())
	require.NoError(t, err)

	want, err := ca.FromRows([][]uint8{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	assert.True(t, h[1].Equal(want))
	assert.True(t, h[2].Equal(start))
}

func TestBriansBrainCycle(t *testing.T) {
	start := ca.New2D[uint8](6, 6)
	start.Set(2, 2, BrainOn)
	start.Set(2, 3, BrainOn)

	h, err := ca.Evolve(start, 3, BriansBrain[uint8](), ca.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, uint8(BrainDying), h[1].At(2, 2))
	assert.Equal(t, uint8(BrainOn), h[1].At(1, 2))
	assert.Equal(t, uint8(BrainOn), h[1].At(3, 3))
	assert.Equal(t, uint8(BrainDead), h[2].At(2, 2))
}
