package score_test

import (
	"testing"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/score"
	"github.com/stretchr/testify/require"
)

func intCombiner() core.Combiner[int] {
	return core.Combiner[int]{
		AreCombinable: func(a, b int) bool { return a == b },
		Combine:       func(a, b int) int { return a },
	}
}

// twoChains builds two isomorphic 3-state chains (0->1->2) with identical
// int labels on states and transitions, so the diagonal is the only
// C_S-combinable pairing and every off-diagonal cell is forced to NegInf.
func twoChains(t *testing.T) (*core.Graph[int, int], *core.Graph[int, int]) {
	t.Helper()

	l := core.NewGraph[int, int]()
	l0 := l.AddState(0)
	l1 := l.AddState(1)
	l2 := l.AddState(2)
	_, err := l.AddTransition(l0, l1, 0)
	require.NoError(t, err)
	_, err = l.AddTransition(l1, l2, 0)
	require.NoError(t, err)

	r := core.NewGraph[int, int]()
	r0 := r.AddState(0)
	r1 := r.AddState(1)
	r2 := r.AddState(2)
	_, err = r.AddTransition(r0, r1, 0)
	require.NoError(t, err)
	_, err = r.AddTransition(r1, r2, 0)
	require.NoError(t, err)

	return l, r
}

func TestLocal_IsomorphicChains_DiagonalFixedPoint(t *testing.T) {
	l, r := twoChains(t)
	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())

	m, err := score.Local(l, r, cfg, 5)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 3, m.Cols())

	// Chain endpoints have no incoming (state 0) or no outgoing (state 2)
	// transitions, so one direction is vacuously 0 for them; only the
	// middle state gets symmetric contributions from both directions.
	// These are the formula's exact two-refinement fixed point, not
	// approximations.
	require.InDelta(t, 0.325, m.At(0, 0), 1e-9)
	require.InDelta(t, 0.5, m.At(1, 1), 1e-9)
	require.InDelta(t, 0.325, m.At(2, 2), 1e-9)

	// Off-diagonal pairs have mismatched state labels and are gated by C_S.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				require.Equal(t, score.NegInf, m.At(i, j))
			}
		}
	}
}

func TestGlobal_MatchesLocal_OnIsomorphicChains(t *testing.T) {
	l, r := twoChains(t)
	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())

	localM, err := score.Local(l, r, cfg, 20)
	require.NoError(t, err)
	globalM, err := score.Global(l, r, cfg, true)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, localM.At(i, j), globalM.At(i, j), 1e-6)
		}
	}
}

func TestGlobal_OptimizeToggle_SameResult(t *testing.T) {
	l, r := twoChains(t)
	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())

	optimized, err := score.Global(l, r, cfg, true)
	require.NoError(t, err)
	unoptimized, err := score.Global(l, r, cfg, false)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, optimized.At(i, j), unoptimized.At(i, j), 1e-9)
		}
	}
}

func TestGlobal_StateIncompatiblePair_IsNegInf(t *testing.T) {
	l := core.NewGraph[int, int]()
	l.AddState(0)
	r := core.NewGraph[int, int]()
	r.AddState(1) // different label, not combinable

	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())
	m, err := score.Global(l, r, cfg, true)
	require.NoError(t, err)
	require.Equal(t, score.NegInf, m.At(0, 0))
}

func TestDynamic_SmallInputUsesGlobal(t *testing.T) {
	l, r := twoChains(t)
	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())

	dyn, err := score.Dynamic(l, r, cfg)
	require.NoError(t, err)
	global, err := score.Global(l, r, cfg, true)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, global.At(i, j), dyn.At(i, j))
		}
	}
}

func TestScorers_RejectEmptyGraphs(t *testing.T) {
	empty := core.NewGraph[int, int]()
	nonEmpty := core.NewGraph[int, int]()
	nonEmpty.AddState(0)
	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())

	_, err := score.Local(empty, nonEmpty, cfg, 1)
	require.ErrorIs(t, err, score.ErrPrecondition)

	_, err = score.Global(empty, nonEmpty, cfg, true)
	require.ErrorIs(t, err, score.ErrPrecondition)
}

func TestLocal_RejectsBadRefinementCount(t *testing.T) {
	l, r := twoChains(t)
	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())

	_, err := score.Local(l, r, cfg, 0)
	require.ErrorIs(t, err, score.ErrPrecondition)
}

func TestConfig_ValidateRejectsBadAlpha(t *testing.T) {
	l, r := twoChains(t)
	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())
	cfg.Alpha = 1.5

	_, err := score.Local(l, r, cfg, 1)
	require.ErrorIs(t, err, score.ErrPrecondition)
}

func TestLTSAdjustment_RewardsSharedInitial(t *testing.T) {
	l := core.NewGraph[int, int]()
	l0 := l.AddState(0)
	require.NoError(t, l.MarkInitial(l0, true))

	r := core.NewGraph[int, int]()
	r0 := r.AddState(0)
	require.NoError(t, r.MarkInitial(r0, true))

	cfg := score.DefaultConfig[int, int](intCombiner(), intCombiner())
	cfg.Adjustment = score.LTSAdjustment[int, int]()

	m, err := score.Global(l, r, cfg, true)
	require.NoError(t, err)
	// No transitions on either side: forward has no neighbors and no
	// adjustment (0), backward gets the shared-initial bonus (0.5); the
	// final score is their average.
	require.InDelta(t, 0.25, m.At(0, 0), 1e-9)
}

func TestMatrix_EmptyDimensionsAreSafe(t *testing.T) {
	m := score.NewMatrix(0, 0)
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 0, m.Cols())
}

func TestMatrix_CloneIsIndependent(t *testing.T) {
	m := score.NewMatrix(2, 2)
	m.Set(0, 0, 1)
	clone := m.Clone()
	clone.Set(0, 0, 2)
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 2.0, clone.At(0, 0))
}
