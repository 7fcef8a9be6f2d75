// Package merge implements §4.3's merger: given two graphs and a matching
// between them, it produces a fresh merged graph plus the projections from
// each input into it. The merger never mutates L or R.
package merge

import "errors"

// ErrPrecondition marks a programmer-error precondition violation (§7): a
// transition target the projections do not account for. A matching that
// fails the matcher contract is reported as match.ErrContractViolation.
var ErrPrecondition = errors.New("merge: precondition violation")
