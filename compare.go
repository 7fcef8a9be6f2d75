package lvdiff

import (
	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/match"
	"github.com/katalvlaran/lvdiff/merge"
	"github.com/katalvlaran/lvdiff/score"
)

// Compare implements §4.4.7's orchestrator: `compare(L, R) = merge(L, R,
// match(L, R))`. It scores the two graphs (unless the chosen matcher
// doesn't need a score matrix, e.g. brute force), matches them, then
// merges the result. cs and ct are the state/transition combiners every
// stage shares (§3); opts overrides the scorer/matcher choice and their
// tunables from the §6-documented defaults.
//
// Compare never mutates l or r; the returned graph is freshly allocated.
// On a difference automaton, callers additionally drive the rewriter
// fixed point — see CompareAutomaton.
func Compare[S, T any](l, r *core.Graph[S, T], cs core.Combiner[S], ct core.Combiner[T], opts ...Option[S, T]) (*core.Graph[S, T], *merge.Projections, error) {
	o := ApplyOptions(DefaultOptions(cs, ct), opts...)
	if err := o.validate(); err != nil {
		return nil, nil, err
	}

	m, err := computeMatching(l, r, o)
	if err != nil {
		return nil, nil, err
	}

	return merge.Merge(l, r, m, o.StateCombiner, o.TransitionCombiner)
}

func computeMatching[S, T any](l, r *core.Graph[S, T], o Options[S, T]) (match.Matching, error) {
	if o.Matcher == MatcherBruteForce {
		return match.BruteForce(l, r, o.StateCombiner, o.TransitionCombiner, o.BruteForceBonus)
	}

	raw, err := computeScore(l, r, o)
	if err != nil {
		return nil, err
	}
	normalized := match.Normalize(raw)

	switch o.Matcher {
	case MatcherKuhnMunkres:
		return match.KuhnMunkres(l, r, normalized, o.StateCombiner)
	case MatcherWalkinshaw:
		return match.Walkinshaw(l, r, normalized, walkinshawConfig(o), o.StateCombiner)
	default: // MatcherDynamic
		size := maxSize(l, r)
		if size > o.MatcherSizeThreshold {
			return match.Walkinshaw(l, r, normalized, walkinshawConfig(o), o.StateCombiner)
		}

		return match.KuhnMunkres(l, r, normalized, o.StateCombiner)
	}
}

func walkinshawConfig[S, T any](o Options[S, T]) match.WalkinshawConfig[S, T] {
	return match.WalkinshawConfig[S, T]{
		Tau:                o.Tau,
		Rho:                o.Rho,
		TransitionCombiner: o.TransitionCombiner,
		Fallback:           o.WalkinshawFallback,
	}
}

// dynamicLocalDeepRefinements/dynamicLocalShallowRefinements mirror
// score.Dynamic's unexported refinement counts (§4.1.5): duplicated here,
// rather than exported from score, because ScorerDynamic's own threshold
// fields (GlobalScorerSizeThreshold, LocalScorerDeepRefinementBound) are
// configurable per-call, while score.Dynamic's are compile-time constants.
const (
	dynamicLocalDeepRefinements    = 5
	dynamicLocalShallowRefinements = 1
)

func computeScore[S, T any](l, r *core.Graph[S, T], o Options[S, T]) (*score.Matrix, error) {
	cfg := score.Config[S, T]{
		StateCombiner:      o.StateCombiner,
		TransitionCombiner: o.TransitionCombiner,
		Alpha:              o.Alpha,
		Adjustment:         o.Adjustment,
	}

	switch o.Scorer {
	case ScorerGlobal:
		return score.Global(l, r, cfg, o.OptimizeStaticallyDeterminableScores)
	case ScorerLocal:
		return score.Local(l, r, cfg, o.NrOfRefinements)
	default: // ScorerDynamic
		size := maxSize(l, r)
		switch {
		case size <= o.GlobalScorerSizeThreshold:
			return score.Global(l, r, cfg, o.OptimizeStaticallyDeterminableScores)
		case size <= o.LocalScorerDeepRefinementBound:
			return score.Local(l, r, cfg, dynamicLocalDeepRefinements)
		default:
			return score.Local(l, r, cfg, dynamicLocalShallowRefinements)
		}
	}
}

func maxSize[S, T any](l, r *core.Graph[S, T]) int {
	size := l.Size()
	if r.Size() > size {
		size = r.Size()
	}

	return size
}
