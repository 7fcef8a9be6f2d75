package score

import "github.com/katalvlaran/lvdiff/core"

// Dynamic thresholds (§4.1): above these sizes the exact global scorer's
// O(n^3) linear solve becomes impractical, so Dynamic steps down to the
// cheaper local refinement scorer, trading a fixed amount of precision for
// bounded cost.
const (
	GlobalSizeThreshold      = 45
	LocalDeepRefinementBound = 500
	localDeepRefinements     = 5
	localShallowRefinements  = 1
)

// Dynamic picks a scorer by input size (§4.1): Global (optimized) for small
// inputs, Local with 5 refinements for medium inputs, Local with a single
// refinement for everything larger.
func Dynamic[S, T any](l, r *core.Graph[S, T], cfg Config[S, T]) (*Matrix, error) {
	size := l.Size()
	if r.Size() > size {
		size = r.Size()
	}

	switch {
	case size <= GlobalSizeThreshold:
		return Global(l, r, cfg, true)
	case size <= LocalDeepRefinementBound:
		return Local(l, r, cfg, localDeepRefinements)
	default:
		return Local(l, r, cfg, localShallowRefinements)
	}
}
