package core

import "errors"

// Sentinel errors for the core graph model. Callers branch on these via
// errors.Is; messages are never matched by string comparison.
var (
	// ErrUnknownState is returned when an operation references a state id
	// that is not present in the graph (never inserted, or already removed).
	ErrUnknownState = errors.New("core: unknown state id")

	// ErrUnknownTransition is returned when RemoveTransition is asked to
	// remove a transition handle the graph does not recognize.
	ErrUnknownTransition = errors.New("core: unknown transition")

	// ErrPrecondition marks a programmer-error precondition violation per
	// spec §7 (e.g. operating on an empty graph where the operation
	// requires at least one state). Always wrapped with context.
	ErrPrecondition = errors.New("core: precondition violation")
)
