package core_test

import (
	"testing"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/stretchr/testify/require"
)

func stringCombiner() core.Combiner[string] {
	return core.Combiner[string]{
		AreCombinable: func(a, b string) bool { return a == b },
		Combine:       func(a, b string) string { return a },
	}
}

func TestDiffKindCombiner_Law(t *testing.T) {
	require.True(t, core.DiffKindCombiner.AreCombinable(core.Added, core.Added))
	require.Equal(t, core.Added, core.DiffKindCombiner.Combine(core.Added, core.Added))

	require.True(t, core.DiffKindCombiner.AreCombinable(core.Removed, core.Unchanged))
	require.Equal(t, core.Removed, core.DiffKindCombiner.Combine(core.Removed, core.Unchanged))

	require.False(t, core.DiffKindCombiner.AreCombinable(core.Added, core.Removed))
}

func TestDiffPropertyCombiner_StrictLaw(t *testing.T) {
	c := core.DiffPropertyCombiner(stringCombiner())
	added := core.DiffProperty[string]{Inner: "x", Kind: core.Added}
	removed := core.DiffProperty[string]{Inner: "x", Kind: core.Removed}
	unchanged := core.DiffProperty[string]{Inner: "x", Kind: core.Unchanged}

	require.False(t, c.AreCombinable(added, removed))
	require.True(t, c.AreCombinable(added, unchanged))
	require.Equal(t, core.Added, c.Combine(added, unchanged).Kind)
}

func TestDiffTransitionCombiner_MergeTimeConvention(t *testing.T) {
	c := core.DiffTransitionCombiner(stringCombiner())
	removed := core.DiffProperty[string]{Inner: "a", Kind: core.Removed}
	added := core.DiffProperty[string]{Inner: "a", Kind: core.Added}

	require.True(t, c.AreCombinable(removed, added))
	combined := c.Combine(removed, added)
	require.Equal(t, core.Unchanged, combined.Kind)
	require.Equal(t, "a", combined.Inner)

	mismatched := core.DiffProperty[string]{Inner: "b", Kind: core.Added}
	require.False(t, c.AreCombinable(removed, mismatched))
}

func TestDiffAutomatonStateCombiner(t *testing.T) {
	c := core.DiffAutomatonStateCombiner()
	u := core.Unchanged
	left := core.DiffAutomatonStateProperty{Accepting: false, StateKind: core.Removed, InitKind: &u}
	right := core.DiffAutomatonStateProperty{Accepting: true, StateKind: core.Added, InitKind: nil}

	require.True(t, c.AreCombinable(left, right))
	combined := c.Combine(left, right)
	require.Equal(t, core.Unchanged, combined.StateKind)
	require.True(t, combined.Accepting)
	require.NotNil(t, combined.InitKind)
	require.Equal(t, core.Unchanged, *combined.InitKind)
}
