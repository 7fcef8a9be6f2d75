// Package match implements the four matcher variants of §4.2: the exact
// Kuhn-Munkres assignment, the Walkinshaw landmark-and-expand heuristic,
// the brute-force forced-move searcher, and a dynamic dispatcher between
// the first two by input size.
package match

import "errors"

// ErrPrecondition reports a matcher contract or configuration violation
// (§7): an out-of-range tunable, an invalid candidate set, or similar.
var ErrPrecondition = errors.New("match: precondition violation")

// ErrContractViolation reports a computed matching that does not satisfy
// the matcher contract (§4.2): non-injective, out-of-range, or an
// uncombinable pair.
var ErrContractViolation = errors.New("match: contract violation")
