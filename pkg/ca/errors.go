package ca

import "errors"

var (
	// ErrUnknownTopology is returned for a 2-D neighbourhood name that is not
	// Moore or von Neumann.
	ErrUnknownTopology = errors.New("unknown neighbourhood topology")

	// ErrRuleRange is returned when a rule number or lookup table does not fit
	// the neighbourhood's encoding space.
	ErrRuleRange = errors.New("rule out of range")

	// ErrUnknownState is returned by table-driven rules for a neighbourhood
	// that has no entry in the table.
	ErrUnknownState = errors.New("neighbourhood state not in rule table")

	// ErrIndivisibleSize is returned when a block size does not tile the
	// lattice.
	ErrIndivisibleSize = errors.New("lattice size not divisible by block size")

	// ErrCacheShapeAmbiguity signals a broken invariant in the recursive
	// cache. It is not expected to surface.
	ErrCacheShapeAmbiguity = errors.New("cache entry shape ambiguity")

	// ErrConfiguration is returned for invalid arguments to the engine,
	// initialisers and rules.
	ErrConfiguration = errors.New("invalid configuration")
)
