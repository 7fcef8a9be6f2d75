package merge_test

import (
	"testing"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/match"
	"github.com/katalvlaran/lvdiff/merge"
	"github.com/stretchr/testify/require"
)

func sumCombiner() core.Combiner[int] {
	return core.Combiner[int]{
		AreCombinable: func(a, b int) bool { return a == b },
		Combine:       func(a, b int) int { return a + b },
	}
}

// s1Graphs builds scenario S1: two identical 2-state LTSs, 0 initial, one
// transition 0->1 labeled with transition property 1.
func s1Graphs(t *testing.T) (*core.Graph[int, int], *core.Graph[int, int]) {
	t.Helper()

	l := core.NewGraph[int, int]()
	l0, l1 := l.AddState(0), l.AddState(1)
	require.NoError(t, l.MarkInitial(l0, true))
	_, err := l.AddTransition(l0, l1, 1)
	require.NoError(t, err)

	r := core.NewGraph[int, int]()
	r0, r1 := r.AddState(0), r.AddState(1)
	require.NoError(t, r.MarkInitial(r0, true))
	_, err = r.AddTransition(r0, r1, 1)
	require.NoError(t, err)

	return l, r
}

func TestMerge_S1_TwoStatesOneTransition(t *testing.T) {
	l, r := s1Graphs(t)
	m := match.Matching{l.States()[0]: r.States()[0], l.States()[1]: r.States()[1]}

	d, proj, err := merge.Merge(l, r, m, sumCombiner(), sumCombiner())
	require.NoError(t, err)
	require.Equal(t, 2, d.Size())

	l0, l1 := l.States()[0], l.States()[1]
	d0, d1 := proj.Left[l0], proj.Left[l1]
	require.True(t, d.IsInitial(d0))
	require.False(t, d.IsInitial(d1))

	out := d.Outgoing(d0)
	require.Len(t, out, 1)
	require.Equal(t, d1, out[0].Target)
	require.Equal(t, 2, out[0].Prop) // C_T.combine(1,1) = 1+1
}

func TestMerge_PreservesStateCount(t *testing.T) {
	l := core.NewGraph[int, int]()
	la, lb, lc := l.AddState(1), l.AddState(2), l.AddState(3)
	_, err := l.AddTransition(la, lb, 10)
	require.NoError(t, err)

	r := core.NewGraph[int, int]()
	ra, rb := r.AddState(1), r.AddState(9)

	// only (la,ra) matched; lb, lc unmatched-left; rb unmatched-right.
	m := match.Matching{la: ra}

	d, proj, err := merge.Merge(l, r, m, sumCombiner(), sumCombiner())
	require.NoError(t, err)

	// |states(D)| = |M| + (|L|-|M|) + (|R|-|M|) = 1 + 2 + 1 = 4.
	require.Equal(t, 4, d.Size())
	require.Contains(t, proj.Left, lb)
	require.Contains(t, proj.Left, lc)
	require.Contains(t, proj.Right, rb)

	// la's transition to unmatched lb must survive as a left-side projection.
	laOut := d.Outgoing(proj.Left[la])
	require.Len(t, laOut, 1)
	require.Equal(t, proj.Left[lb], laOut[0].Target)
	require.Equal(t, 10, laOut[0].Prop)
}

func TestMerge_CombinesCombinableTransitionOverUnchanged(t *testing.T) {
	l := core.NewGraph[int, int]()
	la, lb := l.AddState(1), l.AddState(2)
	_, err := l.AddTransition(la, lb, 5)
	require.NoError(t, err)

	r := core.NewGraph[int, int]()
	ra, rb := r.AddState(1), r.AddState(2)
	_, err = r.AddTransition(ra, rb, 5)
	require.NoError(t, err)
	// an extra, non-combinable transition that must survive unconsumed.
	_, err = r.AddTransition(ra, rb, 9)
	require.NoError(t, err)

	m := match.Matching{la: ra, lb: rb}
	d, proj, err := merge.Merge(l, r, m, sumCombiner(), sumCombiner())
	require.NoError(t, err)

	out := d.Outgoing(proj.Left[la])
	require.Len(t, out, 2)

	var sawCombined, sawLeftover bool
	for _, tr := range out {
		switch tr.Prop {
		case 10:
			sawCombined = true
			require.Equal(t, proj.Left[lb], tr.Target)
		case 9:
			sawLeftover = true
			require.Equal(t, proj.Right[rb], tr.Target)
		}
	}
	require.True(t, sawCombined, "matching transitions should combine")
	require.True(t, sawLeftover, "unconsumed right transition should be projected unchanged")
}

func TestMerge_RejectsContractViolatingMatching(t *testing.T) {
	l := core.NewGraph[int, int]()
	l0 := l.AddState(1)
	r := core.NewGraph[int, int]()
	r0 := r.AddState(2) // not combinable under equality

	_, _, err := merge.Merge(l, r, match.Matching{l0: r0}, sumCombiner(), sumCombiner())
	require.ErrorIs(t, err, match.ErrContractViolation)
}
