package ca

import (
	"fmt"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

// flat caches rule results by the exact bytes of the neighbourhood. With a
// positive size the table is a bounded ristretto cache; evicted or not yet
// admitted entries are recomputed, so results never change.
type flat[V Value] struct {
	x       *indexer
	rule    Rule[V]
	buf     []V
	table   map[string]V
	bounded *ristretto.Cache[string, V]
	st      Stats
}

func newFlat[V Value](x *indexer, rule Rule[V], size int) (*flat[V], error) {
	f := &flat[V]{x: x, rule: rule, buf: make([]V, x.windowLen())}
	if size <= 0 {
		f.table = make(map[string]V)
		return f, nil
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: int64(size) * 10,
		MaxCost:     int64(size),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: flat cache: %v", ErrConfiguration, err)
	}
	f.bounded = cache
	return f, nil
}

func (f *flat[V]) lookup(key []byte) (V, bool) {
	if f.bounded != nil {
		return f.bounded.Get(string(key))
	}
	v, ok := f.table[string(key)]
	return v, ok
}

func (f *flat[V]) store(key []byte, v V) {
	if f.bounded != nil {
		f.bounded.Set(string(key), v, 1)
		return
	}
	f.table[string(key)] = v
}

func (f *flat[V]) step(prev, next *Lattice[V], t int) error {
	for i := range next.data {
		row, col := i/prev.cols, i%prev.cols
		n := gather(f.x, prev, row, col, f.buf)
		key := bytesOf(n.cells)
		if v, ok := f.lookup(key); ok {
			f.st.Hits++
			next.data[i] = v
			continue
		}
		f.st.Misses++
		cell := Cell{Row: row, Col: col}
		v, err := f.rule.Apply(n, cell, t)
		f.st.Invocations++
		if err != nil {
			return fmt.Errorf("cell %s at t=%d: %w", cell, t, err)
		}
		f.store(key, v)
		next.data[i] = v
	}
	return nil
}

func (f *flat[V]) stats() Stats { return f.st }

func (f *flat[V]) close() {
	if f.bounded != nil {
		f.bounded.Close()
	}
}
