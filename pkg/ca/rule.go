package ca

// Rule computes the next value of cell c from its neighbourhood at timestep t.
// t is the index of the generation being produced, starting at 1.
type Rule[V Value] interface {
	Apply(n Neighbourhood[V], c Cell, t int) (V, error)
}

// RuleFunc adapts an ordinary function to the Rule interface.
type RuleFunc[V Value] func(n Neighbourhood[V], c Cell, t int) (V, error)

// Apply calls f(n, c, t).
func (f RuleFunc[V]) Apply(n Neighbourhood[V], c Cell, t int) (V, error) { return f(n, c, t) }

// PureFunc adapts a function of the neighbourhood alone.
func PureFunc[V Value](f func(n Neighbourhood[V]) V) Rule[V] {
	return RuleFunc[V](func(n Neighbourhood[V], _ Cell, _ int) (V, error) { return f(n), nil })
}

// Stateful is implemented by rules whose result depends on more than the
// neighbourhood content: private mutable state, the cell identity or the
// timestep. The engine will not memoize or parallelise a rule that reports
// true. Plain functions carry no such declaration; keeping them pure when
// caching is enabled is the caller's responsibility.
type Stateful interface {
	Stateful() bool
}

func isStateful[V Value](r Rule[V]) bool {
	s, ok := r.(Stateful)
	return ok && s.Stateful()
}
