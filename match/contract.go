package match

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// Matching maps left-graph state ids to right-graph state ids (§4.2). Every
// matcher variant returns one; it is always injective and every pair is
// C_S-combinable.
type Matching map[int]int

// ValidateContract checks a computed Matching against §4.2's contract:
// keys are a subset of L's states, values a subset of R's states, values
// are pairwise distinct, and every pair is C_S-combinable. Every matcher
// in this package calls this before returning so a contract violation is
// never silently handed to a caller.
func ValidateContract[S, T any](l, r *core.Graph[S, T], cs core.Combiner[S], m Matching) error {
	lIDs := make(map[int]struct{}, l.Size())
	for _, id := range l.States() {
		lIDs[id] = struct{}{}
	}
	rIDs := make(map[int]struct{}, r.Size())
	for _, id := range r.States() {
		rIDs[id] = struct{}{}
	}

	seenRight := make(map[int]struct{}, len(m))
	for lID, rID := range m {
		if _, ok := lIDs[lID]; !ok {
			return fmt.Errorf("match: matched left state %d not in L: %w", lID, ErrContractViolation)
		}
		if _, ok := rIDs[rID]; !ok {
			return fmt.Errorf("match: matched right state %d not in R: %w", rID, ErrContractViolation)
		}
		if _, dup := seenRight[rID]; dup {
			return fmt.Errorf("match: right state %d matched more than once: %w", rID, ErrContractViolation)
		}
		seenRight[rID] = struct{}{}

		lp, err := l.Prop(lID)
		if err != nil {
			return fmt.Errorf("match: %w", err)
		}
		rp, err := r.Prop(rID)
		if err != nil {
			return fmt.Errorf("match: %w", err)
		}
		if !cs.AreCombinable(lp, rp) {
			return fmt.Errorf("match: matched pair (%d,%d) not C_S-combinable: %w", lID, rID, ErrContractViolation)
		}
	}

	return nil
}
