package rules

import (
	"fmt"
	"maps"
	"slices"

	"cellca/pkg/ca"
)

// CTRBLKey is the (centre, top, right, bottom, left) tuple of a radius-1
// von Neumann neighbourhood.
type CTRBLKey[V ca.Value] [5]V

// Rotate turns the key by 90 degrees: (c,t,r,b,l) becomes (c,l,t,r,b).
func (k CTRBLKey[V]) Rotate() CTRBLKey[V] {
	return CTRBLKey[V]{k[0], k[4], k[1], k[2], k[3]}
}

func (k CTRBLKey[V]) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v, %v)", k[0], k[1], k[2], k[3], k[4])
}

// CTRBL is a table rule over the five von Neumann cells of a 3×3
// neighbourhood.
type CTRBL[V ca.Value] struct {
	table map[CTRBLKey[V]]V

	// Fallback, when set, computes the result for keys absent from the table
	// instead of failing.
	Fallback func(key CTRBLKey[V], c ca.Cell, t int) (V, error)
}

// NewCTRBL builds a CTRBL rule. With addRotations the table is closed under
// the three 90-degree rotations of every entry; entries given explicitly
// always take precedence over generated ones.
func NewCTRBL[V ca.Value](table map[CTRBLKey[V]]V, addRotations bool) *CTRBL[V] {
	out := maps.Clone(table)
	if out == nil {
		out = make(map[CTRBLKey[V]]V)
	}
	if addRotations {
		keys := slices.SortedFunc(maps.Keys(table), func(a, b CTRBLKey[V]) int {
			return slices.Compare(a[:], b[:])
		})
		for _, key := range keys {
			r := key
			for range 3 {
				r = r.Rotate()
				if _, ok := out[r]; !ok {
					out[r] = table[key]
				}
			}
		}
	}
	return &CTRBL[V]{table: out}
}

// Table returns a copy of the expanded rule table.
func (r *CTRBL[V]) Table() map[CTRBLKey[V]]V { return maps.Clone(r.table) }

// KeyOf extracts the CTRBL key from a 3×3 neighbourhood.
func KeyOf[V ca.Value](n ca.Neighbourhood[V]) (CTRBLKey[V], error) {
	if n.Rows() != 3 || n.Cols() != 3 {
		return CTRBLKey[V]{}, fmt.Errorf("%w: CTRBL needs a 3x3 neighbourhood, got %dx%d", ca.ErrConfiguration, n.Rows(), n.Cols())
	}
	return CTRBLKey[V]{n.At(1, 1), n.At(0, 1), n.At(1, 2), n.At(2, 1), n.At(1, 0)}, nil
}

// Apply implements ca.Rule.
func (r *CTRBL[V]) Apply(n ca.Neighbourhood[V], c ca.Cell, t int) (V, error) {
	key, err := KeyOf(n)
	if err != nil {
		return 0, err
	}
	if v, ok := r.table[key]; ok {
		return v, nil
	}
	if r.Fallback != nil {
		return r.Fallback(key, c, t)
	}
	return 0, fmt.Errorf("%w: neighbourhood state %s not in rule table", ca.ErrUnknownState, key)
}
