// Package score computes the |L|x|R| similarity matrix between two graphs'
// states (§4.1): a local, finite-depth refinement scorer, a global
// linear-equation fixed-point scorer, and a dynamic selector between them.
package score

import "errors"

// Sentinel errors for scorer preconditions and numerical failure (§7).
var (
	// ErrPrecondition marks a programmer-error precondition violation: an
	// empty graph given to a non-trivial scorer, an out-of-range tunable,
	// or a directional score escaping [-1,1] (a Walkinshaw-guarantee
	// violation the scorer is required to assert).
	ErrPrecondition = errors.New("score: precondition violation")

	// ErrNumerical marks a numerical failure distinct from a precondition
	// violation, so callers can retry with a different scorer (§7): the
	// global scorer's linear solver reported a singular system.
	ErrNumerical = errors.New("score: numerical failure")
)
