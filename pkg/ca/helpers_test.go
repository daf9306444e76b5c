package ca

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cellca/pkg/core"
)

func testRNG() *core.RNG { return core.NewRNG(42) }

// rule30 is left XOR (centre OR right).
var rule30 = PureFunc(func(n Neighbourhood[uint8]) uint8 {
	return n.At(0, 0) ^ (n.At(0, 1) | n.At(0, 2))
})

var lifeRule = PureFunc(func(n Neighbourhood[uint8]) uint8 {
	alive := n.Sum() - n.Center()
	switch {
	case n.Center() == 1 && (alive == 2 || alive == 3):
		return 1
	case n.Center() == 0 && alive == 3:
		return 1
	default:
		return 0
	}
})

// statefulRule counts its calls and declares itself stateful.
type statefulRule struct{ calls int }

func (s *statefulRule) Apply(n Neighbourhood[uint8], _ Cell, _ int) (uint8, error) {
	s.calls++
	return n.Center(), nil
}

func (s *statefulRule) Stateful() bool { return true }

var errBoom = errors.New("boom")

func stamp(l *Lattice[uint8], r0, c0 int, pattern ...string) {
	for dr, line := range pattern {
		for dc, ch := range line {
			if ch == 'O' {
				l.Set(r0+dr, c0+dc, 1)
			}
		}
	}
}

// lifeSoup returns a 60×60 lattice holding a glider, a blinker and a
// light-weight spaceship.
func lifeSoup() *Lattice[uint8] {
	l := New2D[uint8](60, 60)
	stamp(l, 1, 1, ".O.", "..O", "OOO")
	stamp(l, 30, 29, "OOO")
	stamp(l, 10, 30, ".O..O", "O....", "O...O", "OOOO.")
	return l
}

func parseRow(t *testing.T, s string) []uint8 {
	t.Helper()
	out := make([]uint8, 0, len(s))
	for _, ch := range strings.TrimSpace(s) {
		switch ch {
		case '0':
			out = append(out, 0)
		case '1':
			out = append(out, 1)
		default:
			require.Failf(t, "bad row", "unexpected %q", ch)
		}
	}
	return out
}
