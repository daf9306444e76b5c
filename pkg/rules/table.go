package rules

import (
	"fmt"
	"maps"
	"strings"

	"cellca/pkg/ca"
)

// TableRule looks up the neighbourhood in an explicit table. The key is the
// concatenation of the decimal forms of the unmasked cells, so the 1-D
// neighbourhood [1 0 2] has key "102".
type TableRule[V ca.Value] struct {
	table map[string]V
}

// NewTableRule copies table into a rule.
func NewTableRule[V ca.Value](table map[string]V) *TableRule[V] {
	return &TableRule[V]{table: maps.Clone(table)}
}

// Key returns the table key of n.
func Key[V ca.Value](n ca.Neighbourhood[V]) string {
	var b strings.Builder
	for _, v := range n.Values() {
		fmt.Fprint(&b, v)
	}
	return b.String()
}

// Apply implements ca.Rule.
func (r *TableRule[V]) Apply(n ca.Neighbourhood[V], _ ca.Cell, _ int) (V, error) {
	key := Key(n)
	v, ok := r.table[key]
	if !ok {
		return v, fmt.Errorf("%w: neighbourhood state %q not in rule table", ca.ErrUnknownState, key)
	}
	return v, nil
}
