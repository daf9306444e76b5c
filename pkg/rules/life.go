package rules

import (
	"golang.org/x/exp/constraints"

	"cellca/pkg/ca"
)

// Brian's Brain states.
const (
	BrainDead  = 0
	BrainOn    = 1
	BrainDying = 2
)

// GameOfLife is Conway's B3/S23 rule on a Moore neighbourhood.
func GameOfLife[V constraints.Integer]() ca.Rule[V] {
	return ca.PureFunc(func(n ca.Neighbourhood[V]) V {
		alive := n.Sum() - n.Center()
		if alive == 3 || (alive == 2 && n.Center() == 1) {
			return 1
		}
		return 0
	})
}

// BriansBrain fires a dead cell with exactly two firing neighbours; firing
// cells start dying and dying cells die.
func BriansBrain[V constraints.Integer]() ca.Rule[V] {
	return ca.PureFunc(func(n ca.Neighbourhood[V]) V {
		switch n.Center() {
		case BrainOn:
			return BrainDying
		case BrainDying:
			return BrainDead
		}
		firing := 0
		for _, v := range n.Values() {
			if v == BrainOn {
				firing++
			}
		}
		if firing == 2 {
			return BrainOn
		}
		return BrainDead
	})
}
