package lvdiff

import (
	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/merge"
	"github.com/katalvlaran/lvdiff/rewrite"
)

// DefaultRewriters builds the standard rewriter set for a difference
// automaton (§4.4.7): local-redundancy first (folds literal duplicate
// transitions), then entanglement (splits UNCHANGED states straddling an
// ADDED/REMOVED boundary), then the two funnel-folding skip rewriters.
// Disentanglement (§4.4.3) is a stricter alternative to entanglement and
// is deliberately not included here — register it in place of
// rewrite.Entanglement if that variant is wanted instead.
//
// foldCombiner is the combiner skip-fork/skip-join use to recognize a
// combinable sibling pair — typically core.DiffTransitionCombiner, since
// the funnel pattern pairs an ADDED and a REMOVED transition with the
// same inner label (see DESIGN.md's merge-time-vs-rewrite-time note).
// strictCombiner is what local-redundancy uses to fold genuine parallel
// duplicates — typically core.DiffPropertyCombiner.
func DefaultRewriters[U any](strictCombiner, foldCombiner core.Combiner[core.DiffProperty[U]], h core.Hider[core.DiffProperty[U]], isIncludedIn rewrite.InclusionPredicate[U]) []rewrite.Rewriter[U] {
	cs := core.DiffAutomatonStateCombiner()

	return []rewrite.Rewriter[U]{
		rewrite.LocalRedundancyRewriter[U](strictCombiner),
		rewrite.Entanglement[U](),
		rewrite.SkipFork[U](cs, foldCombiner, h, isIncludedIn),
		rewrite.SkipJoin[U](cs, foldCombiner, h, isIncludedIn),
	}
}

// CompareAutomaton implements §4.4.7's full pipeline for a difference
// automaton: Compare (merge(L, R, match(L, R))) followed by driving
// rewriters to a fixed point (rewrite.Run). Pass the result of
// DefaultRewriters, or a hand-assembled list, as rewriters.
func CompareAutomaton[U any](
	l, r rewrite.Automaton[U],
	cs core.Combiner[core.DiffAutomatonStateProperty],
	ct core.Combiner[core.DiffProperty[U]],
	rewriters []rewrite.Rewriter[U],
	opts ...Option[core.DiffAutomatonStateProperty, core.DiffProperty[U]],
) (rewrite.Automaton[U], *merge.Projections, error) {
	d, proj, err := Compare[core.DiffAutomatonStateProperty, core.DiffProperty[U]](l, r, cs, ct, opts...)
	if err != nil {
		return nil, nil, err
	}

	if _, err := rewrite.Run(d, rewriters); err != nil {
		return nil, nil, err
	}

	return d, proj, nil
}
