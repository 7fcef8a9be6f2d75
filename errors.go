package lvdiff

import "errors"

// ErrPrecondition marks an orchestrator-level precondition violation (§7):
// an invalid option value supplied to Compare, caught before any stage
// of the pipeline runs.
var ErrPrecondition = errors.New("lvdiff: precondition violation")
