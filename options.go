package lvdiff

import (
	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/match"
	"github.com/katalvlaran/lvdiff/score"
)

// ScorerKind selects which scorer Compare drives (§4.1, §6).
type ScorerKind int

const (
	// ScorerDynamic picks Global or Local by input size (§4.1.5).
	ScorerDynamic ScorerKind = iota
	// ScorerGlobal always uses the exact linear-system scorer.
	ScorerGlobal
	// ScorerLocal always uses the fixed-point-iteration scorer.
	ScorerLocal
)

// MatcherKind selects which matcher Compare drives (§4.2, §6).
type MatcherKind int

const (
	// MatcherDynamic picks Kuhn-Munkres or Walkinshaw by input size (§4.2.5).
	MatcherDynamic MatcherKind = iota
	// MatcherKuhnMunkres always uses the optimal bipartite assignment.
	MatcherKuhnMunkres
	// MatcherWalkinshaw always uses the landmark-expansion matcher.
	MatcherWalkinshaw
	// MatcherBruteForce always uses exhaustive search.
	MatcherBruteForce
)

// Options bundles every tunable `compare(L, R)` recognizes per §6's
// enumerated configuration list, plus the combiners §3/§4 thread through
// every stage. Build one with DefaultOptions and the With* functions
// below rather than constructing it directly, so future fields keep a
// sensible default.
type Options[S, T any] struct {
	StateCombiner      core.Combiner[S]
	TransitionCombiner core.Combiner[T]
	Adjustment         score.Adjustment[S, T]

	Scorer  ScorerKind
	Matcher MatcherKind

	Alpha                                 float64
	Tau                                   float64
	Rho                                   float64
	NrOfRefinements                       int
	GlobalScorerSizeThreshold             int
	LocalScorerDeepRefinementBound        int
	MatcherSizeThreshold                  int
	OptimizeStaticallyDeterminableScores bool

	WalkinshawFallback match.FallbackHook[S, T]
	BruteForceBonus    match.BonusHook[S, T]
}

// Option mutates an Options value; apply with ApplyOptions or by folding
// over a slice before calling Compare.
type Option[S, T any] func(*Options[S, T])

// DefaultOptions returns the §6-documented defaults for the plain GLTS
// variant: dynamic scorer/matcher selection, α=0.6, τ=0.25, ρ=1.5, no
// initial-state bonus anywhere, optimized global scorer.
func DefaultOptions[S, T any](cs core.Combiner[S], ct core.Combiner[T]) Options[S, T] {
	return Options[S, T]{
		StateCombiner:                        cs,
		TransitionCombiner:                   ct,
		Adjustment:                           score.NoAdjustment[S, T](),
		Scorer:                               ScorerDynamic,
		Matcher:                              MatcherDynamic,
		Alpha:                                score.DefaultAlpha,
		Tau:                                  match.DefaultTau,
		Rho:                                  match.DefaultRho,
		NrOfRefinements:                      1,
		GlobalScorerSizeThreshold:            score.GlobalSizeThreshold,
		LocalScorerDeepRefinementBound:       score.LocalDeepRefinementBound,
		MatcherSizeThreshold:                 match.DynamicSizeThreshold,
		OptimizeStaticallyDeterminableScores: true,
		WalkinshawFallback:                   match.DefaultFallback[S, T](),
		BruteForceBonus:                      match.NoBonus[S, T](),
	}
}

// ApplyOptions folds a sequence of Option values onto a base Options,
// returning the result. Compare calls this internally; exported so
// callers assembling Options incrementally across call sites can reuse it.
func ApplyOptions[S, T any](base Options[S, T], opts ...Option[S, T]) Options[S, T] {
	for _, opt := range opts {
		opt(&base)
	}

	return base
}

// WithLTSVariant switches every variant-sensitive hook (the global/local
// scorer's backward-direction adjustment, the Walkinshaw fallback, the
// brute-force bonus) to the LTS policy in one call, per §4's documented
// LTS-variant overrides — these three hooks are always toggled together,
// never independently, in every scenario the spec describes.
func WithLTSVariant[S, T any]() Option[S, T] {
	return func(o *Options[S, T]) {
		o.Adjustment = score.LTSAdjustment[S, T]()
		o.WalkinshawFallback = match.LTSFallback[S, T]()
		o.BruteForceBonus = match.LTSBonus[S, T]()
	}
}

// WithScorer fixes the scorer instead of letting Compare pick dynamically.
func WithScorer[S, T any](k ScorerKind) Option[S, T] {
	return func(o *Options[S, T]) { o.Scorer = k }
}

// WithMatcher fixes the matcher instead of letting Compare pick dynamically.
func WithMatcher[S, T any](k MatcherKind) Option[S, T] {
	return func(o *Options[S, T]) { o.Matcher = k }
}

// WithAlpha overrides the directional-score attenuation factor (§4.1, §6).
func WithAlpha[S, T any](alpha float64) Option[S, T] {
	return func(o *Options[S, T]) { o.Alpha = alpha }
}

// WithLandmarkThreshold overrides the Walkinshaw matcher's τ (§4.2.2, §6).
func WithLandmarkThreshold[S, T any](tau float64) Option[S, T] {
	return func(o *Options[S, T]) { o.Tau = tau }
}

// WithLandmarkRatio overrides the Walkinshaw matcher's ρ (§4.2.2, §6).
func WithLandmarkRatio[S, T any](rho float64) Option[S, T] {
	return func(o *Options[S, T]) { o.Rho = rho }
}

// WithRefinements overrides the local scorer's refinement count, used
// only when Scorer is fixed to ScorerLocal (§4.1.4, §6).
func WithRefinements[S, T any](n int) Option[S, T] {
	return func(o *Options[S, T]) { o.NrOfRefinements = n }
}

// WithDynamicSizeThresholds overrides the three breakpoints ScorerDynamic
// and MatcherDynamic use to pick between their candidate implementations
// (§4.1.5, §4.2.5, §6): globalScorer selects Global at or below it, Local
// above; localDeepBound selects 5 refinements at or below it, 1 above;
// matcher selects Kuhn-Munkres at or below it, Walkinshaw above.
func WithDynamicSizeThresholds[S, T any](globalScorer, localDeepBound, matcher int) Option[S, T] {
	return func(o *Options[S, T]) {
		o.GlobalScorerSizeThreshold = globalScorer
		o.LocalScorerDeepRefinementBound = localDeepBound
		o.MatcherSizeThreshold = matcher
	}
}

// WithOptimizeStaticallyDeterminableScores toggles the global scorer's
// optimization that resolves statically-determinable cells (every neighbor
// pair a cell depends on already has a known score) without consulting the
// linear solver.
func WithOptimizeStaticallyDeterminableScores[S, T any](optimize bool) Option[S, T] {
	return func(o *Options[S, T]) { o.OptimizeStaticallyDeterminableScores = optimize }
}

// WithWalkinshawFallback overrides the landmark matcher's phase-1 fallback
// policy directly, for callers whose variant doesn't fit the LTS/plain
// dichotomy WithLTSVariant covers.
func WithWalkinshawFallback[S, T any](fb match.FallbackHook[S, T]) Option[S, T] {
	return func(o *Options[S, T]) { o.WalkinshawFallback = fb }
}

// WithBruteForceBonus overrides the brute-force matcher's objective bonus
// hook directly.
func WithBruteForceBonus[S, T any](bonus match.BonusHook[S, T]) Option[S, T] {
	return func(o *Options[S, T]) { o.BruteForceBonus = bonus }
}

func (o Options[S, T]) validate() error {
	if o.Alpha < 0 || o.Alpha > 1 {
		return ErrPrecondition
	}
	if o.Tau < 0 || o.Tau > 1 {
		return ErrPrecondition
	}
	if o.Rho < 1.0 {
		return ErrPrecondition
	}
	if o.NrOfRefinements <= 0 {
		return ErrPrecondition
	}
	if o.Adjustment == nil || o.WalkinshawFallback == nil || o.BruteForceBonus == nil {
		return ErrPrecondition
	}

	return nil
}
