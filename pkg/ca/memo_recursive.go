package ca

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// region is a half-open rectangle [r0, r1) × [c0, c1) of the lattice interior.
type region struct {
	r0, r1 int
	c0, c1 int
}

func (g region) single() bool { return g.r1-g.r0 == 1 && g.c1-g.c0 == 1 }

// split halves every dimension longer than one cell: quadrants in 2-D,
// bisection along the row in 1-D.
func (g region) split() []region {
	rs := [][2]int{{g.r0, g.r1}}
	if g.r1-g.r0 > 1 {
		mid := (g.r0 + g.r1) / 2
		rs = [][2]int{{g.r0, mid}, {mid, g.r1}}
	}
	cs := [][2]int{{g.c0, g.c1}}
	if g.c1-g.c0 > 1 {
		mid := (g.c0 + g.c1) / 2
		cs = [][2]int{{g.c0, mid}, {mid, g.c1}}
	}
	out := make([]region, 0, len(rs)*len(cs))
	for _, r := range rs {
		for _, c := range cs {
			out = append(out, region{r0: r[0], r1: r[1], c0: c[0], c1: c[1]})
		}
	}
	return out
}

// blockShape is the size of an enlarged block (interior plus margin).
type blockShape struct {
	rows, cols int
}

type cacheEntry[V Value] struct {
	shape    blockShape
	interior []V
}

// blockCache maps the hash of an enlarged block to the interiors computed from
// it. Blocks of different shapes may share a hash, so each bucket is keyed
// again by shape.
type blockCache[V Value] struct {
	buckets map[uint64][]cacheEntry[V]
}

func newBlockCache[V Value]() *blockCache[V] {
	return &blockCache[V]{buckets: make(map[uint64][]cacheEntry[V])}
}

func (c *blockCache[V]) has(sum uint64, shape blockShape) bool {
	for _, e := range c.buckets[sum] {
		if e.shape == shape {
			return true
		}
	}
	return false
}

func (c *blockCache[V]) get(sum uint64, shape blockShape) ([]V, error) {
	for _, e := range c.buckets[sum] {
		if e.shape == shape {
			return e.interior, nil
		}
	}
	return nil, fmt.Errorf("%w: hash %016x has no %dx%d entry", ErrCacheShapeAmbiguity, sum, shape.rows, shape.cols)
}

func (c *blockCache[V]) store(sum uint64, shape blockShape, interior []V) {
	if c.has(sum, shape) {
		return
	}
	c.buckets[sum] = append(c.buckets[sum], cacheEntry[V]{shape: shape, interior: interior})
}

// recursive computes a generation by divide and conquer, reusing the interior
// of any partition whose enlarged block was seen before.
type recursive[V Value] struct {
	x       *indexer
	rule    Rule[V]
	cache   *blockCache[V]
	scratch []V
	cellBuf []V
	st      Stats
}

func newRecursive[V Value](x *indexer, rule Rule[V]) *recursive[V] {
	return &recursive[V]{
		x:       x,
		rule:    rule,
		cache:   newBlockCache[V](),
		cellBuf: make([]V, x.windowLen()),
	}
}

func (m *recursive[V]) step(prev, next *Lattice[V], t int) error {
	return m.solve(prev, next, region{r0: 0, r1: prev.rows, c0: 0, c1: prev.cols}, t)
}

func (m *recursive[V]) solve(prev, next *Lattice[V], g region, t int) error {
	// The scratch buffer is reused by the sub-partitions, so only the hash and
	// shape survive past this point.
	block, shape := gatherBlock(m.x, prev, g, m.scratch)
	m.scratch = block
	sum := xxhash.Sum64(bytesOf(block))

	if m.cache.has(sum, shape) {
		interior, err := m.cache.get(sum, shape)
		if err != nil {
			return err
		}
		m.st.Hits++
		writeRegion(next, g, interior)
		return nil
	}
	m.st.Misses++

	if g.single() {
		v, err := invoke(m.x, m.rule, prev, g.r0, g.c0, t, m.cellBuf)
		m.st.Invocations++
		if err != nil {
			return err
		}
		next.data[next.Index(g.r0, g.c0)] = v
	} else {
		for _, sub := range g.split() {
			if err := m.solve(prev, next, sub, t); err != nil {
				return err
			}
		}
	}
	m.cache.store(sum, shape, readRegion(next, g))
	return nil
}

func (m *recursive[V]) stats() Stats { return m.st }

func (m *recursive[V]) close() { m.cache = nil }

func readRegion[V Value](l *Lattice[V], g region) []V {
	out := make([]V, 0, (g.r1-g.r0)*(g.c1-g.c0))
	for r := g.r0; r < g.r1; r++ {
		out = append(out, l.data[r*l.cols+g.c0:r*l.cols+g.c1]...)
	}
	return out
}

func writeRegion[V Value](l *Lattice[V], g region, interior []V) {
	w := g.c1 - g.c0
	for r := g.r0; r < g.r1; r++ {
		copy(l.data[r*l.cols+g.c0:r*l.cols+g.c1], interior[(r-g.r0)*w:])
	}
}
