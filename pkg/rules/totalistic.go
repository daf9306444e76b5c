package rules

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"cellca/pkg/ca"
)

// Totalistic maps the sum of a neighbourhood to a base-k digit of the rule
// number: digit 0 (least significant) for sum 0, digit s for sum s.
type Totalistic[V constraints.Integer] struct {
	k      int
	size   int
	digits []V
}

// NewTotalistic builds a k-state totalistic rule for neighbourhoods of size
// cells. The rule number may use at most size·(k-1)+1 base-k digits.
func NewTotalistic[V constraints.Integer](k, size int, rule uint64) (*Totalistic[V], error) {
	if k < 2 || size < 1 {
		return nil, fmt.Errorf("%w: k=%d size=%d", ca.ErrRuleRange, k, size)
	}
	n := size*(k-1) + 1
	digits := make([]V, n)
	rest := rule
	for i := 0; i < n && rest > 0; i++ {
		digits[i] = V(rest % uint64(k))
		rest /= uint64(k)
	}
	if rest > 0 {
		return nil, fmt.Errorf("%w: rule %d needs more than %d base-%d digits", ca.ErrRuleRange, rule, n, k)
	}
	return &Totalistic[V]{k: k, size: size, digits: digits}, nil
}

// Apply implements ca.Rule.
func (r *Totalistic[V]) Apply(n ca.Neighbourhood[V], _ ca.Cell, _ int) (V, error) {
	if n.Len() != r.size {
		return 0, fmt.Errorf("%w: neighbourhood of %d cells, rule expects %d", ca.ErrRuleRange, n.Len(), r.size)
	}
	sum := int(n.Sum())
	if sum < 0 || sum >= len(r.digits) {
		return 0, fmt.Errorf("%w: neighbourhood sum %d outside [0, %d)", ca.ErrRuleRange, sum, len(r.digits))
	}
	return r.digits[sum], nil
}
