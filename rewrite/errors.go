// Package rewrite implements §4.4's post-merge graph rewriters: each one
// inspects a DiffAutomaton for a specific pattern and, if found, folds it
// into a smaller equivalent structure. A driver runs the registered set to
// a round-robin fixed point.
package rewrite

import "errors"

// ErrPrecondition marks a programmer-error precondition violation (§7):
// a forbidden set overlapping source/target in an oracle call.
var ErrPrecondition = errors.New("rewrite: precondition violation")

// ErrInvariantViolation marks a structural invariant a rewriter is
// required to maintain but failed to (§7) — e.g. an entangled state left
// with residual incident transitions after its split. Per §7, the caller
// must treat the graph as unusable once this is returned.
var ErrInvariantViolation = errors.New("rewrite: structural invariant violation")
