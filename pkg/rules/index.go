// Package rules provides transition rules for the ca engine: lookup-table
// rules indexed by neighbourhood value, totalistic and table-driven rules,
// CTRBL rules for von Neumann neighbourhoods, and the stateful reversible,
// asynchronous and sandpile rules.
package rules

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/constraints"

	"cellca/pkg/ca"
)

// Scheme selects how an index rule's table is ordered.
type Scheme int

const (
	// Lexicographic lists neighbourhoods from all-zero upwards.
	Lexicographic Scheme = iota
	// NKS lists neighbourhoods from all-(k-1) downwards, as in
	// Wolfram's rule numbering.
	NKS
)

// IndexRule reads the neighbourhood as a base-k number, leftmost cell most
// significant, and looks the result up in a table of k^width entries.
type IndexRule[V constraints.Integer] struct {
	k      int
	width  int
	table  []V
	scheme Scheme
}

// NewIndexRule builds an index rule from an explicit table.
func NewIndexRule[V constraints.Integer](k, width int, table []V, scheme Scheme) (*IndexRule[V], error) {
	if k < 2 || width < 1 {
		return nil, fmt.Errorf("%w: k=%d width=%d", ca.ErrRuleRange, k, width)
	}
	size := new(big.Int).Exp(big.NewInt(int64(k)), big.NewInt(int64(width)), nil)
	if !size.IsInt64() || size.Int64() != int64(len(table)) {
		return nil, fmt.Errorf("%w: table has %d entries, want %s", ca.ErrRuleRange, len(table), size)
	}
	return &IndexRule[V]{k: k, width: width, table: append([]V(nil), table...), scheme: scheme}, nil
}

// NewNumberRule builds an index rule whose table is the base-k expansion of
// rule, most significant digit first.
func NewNumberRule[V constraints.Integer](k, width int, rule *big.Int, scheme Scheme) (*IndexRule[V], error) {
	if k < 2 || width < 1 || width > 24 {
		return nil, fmt.Errorf("%w: k=%d width=%d", ca.ErrRuleRange, k, width)
	}
	if rule == nil || rule.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative rule number", ca.ErrRuleRange)
	}
	base := big.NewInt(int64(k))
	size := new(big.Int).Exp(base, big.NewInt(int64(width)), nil)
	if !size.IsInt64() || size.Int64() > 1<<24 {
		return nil, fmt.Errorf("%w: %d^%d entries", ca.ErrRuleRange, k, width)
	}
	limit := new(big.Int).Exp(base, size, nil)
	if rule.Cmp(limit) >= 0 {
		return nil, fmt.Errorf("%w: rule %s exceeds %d^%s - 1", ca.ErrRuleRange, rule, k, size)
	}

	n := int(size.Int64())
	table := make([]V, n)
	rest, digit := new(big.Int).Set(rule), new(big.Int)
	for i := n - 1; i >= 0; i-- {
		rest.QuoRem(rest, base, digit)
		table[i] = V(digit.Int64())
	}
	return NewIndexRule(k, width, table, scheme)
}

// NewBinaryRule builds a two-state index rule over width cells.
func NewBinaryRule[V constraints.Integer](rule *big.Int, width int, scheme Scheme) (*IndexRule[V], error) {
	return NewNumberRule[V](2, width, rule, scheme)
}

// NKSRule returns the elementary (radius 1, two-state) rule with Wolfram
// number rule.
func NKSRule[V constraints.Integer](rule uint64) (*IndexRule[V], error) {
	return NewBinaryRule[V](new(big.Int).SetUint64(rule), 3, NKS)
}

// Table returns a copy of the lookup table in the rule's scheme order.
func (r *IndexRule[V]) Table() []V { return append([]V(nil), r.table...) }

// Apply implements ca.Rule.
func (r *IndexRule[V]) Apply(n ca.Neighbourhood[V], _ ca.Cell, _ int) (V, error) {
	if n.Len() != r.width {
		return 0, fmt.Errorf("%w: neighbourhood of %d cells, rule expects %d", ca.ErrRuleRange, n.Len(), r.width)
	}
	idx := 0
	for _, v := range n.Values() {
		if int(v) < 0 || int(v) >= r.k {
			return 0, fmt.Errorf("%w: state %d outside alphabet of %d", ca.ErrRuleRange, v, r.k)
		}
		idx = idx*r.k + int(v)
	}
	if r.scheme == NKS {
		idx = len(r.table) - 1 - idx
	}
	return r.table[idx], nil
}
