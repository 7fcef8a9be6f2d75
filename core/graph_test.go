package core_test

import (
	"testing"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddStateAssignsDenseIDs(t *testing.T) {
	g := core.NewGraph[string, string]()
	a := g.AddState("A")
	b := g.AddState("B")
	require.Equal(t, 0, a)
	require.Equal(t, 1, b)
	require.Equal(t, 2, g.Size())
	require.Equal(t, []int{0, 1}, g.States())
}

func TestGraph_AddTransitionAndAdjacency(t *testing.T) {
	g := core.NewGraph[string, string]()
	a := g.AddState("A")
	b := g.AddState("B")
	tr, err := g.AddTransition(a, b, "x")
	require.NoError(t, err)

	out := g.Outgoing(a)
	require.Len(t, out, 1)
	require.Same(t, tr, out[0])

	in := g.Incoming(b)
	require.Len(t, in, 1)
	require.Same(t, tr, in[0])
}

func TestGraph_AddTransitionUnknownState(t *testing.T) {
	g := core.NewGraph[string, string]()
	a := g.AddState("A")
	_, err := g.AddTransition(a, 99, "x")
	require.ErrorIs(t, err, core.ErrUnknownState)
}

func TestGraph_RemoveStateRemovesIncidentTransitions(t *testing.T) {
	g := core.NewGraph[string, string]()
	a := g.AddState("A")
	b := g.AddState("B")
	c := g.AddState("C")
	_, err := g.AddTransition(a, b, "x")
	require.NoError(t, err)
	_, err = g.AddTransition(b, c, "y")
	require.NoError(t, err)

	require.NoError(t, g.RemoveState(b))
	require.Equal(t, []int{0, 2}, g.States())
	require.Empty(t, g.Outgoing(a))
	require.Empty(t, g.Incoming(c))
}

func TestGraph_RemoveTransition(t *testing.T) {
	g := core.NewGraph[string, string]()
	a := g.AddState("A")
	b := g.AddState("B")
	t1, err := g.AddTransition(a, b, "x")
	require.NoError(t, err)
	t2, err := g.AddTransition(a, b, "y")
	require.NoError(t, err)

	require.NoError(t, g.RemoveTransition(t1))
	out := g.Outgoing(a)
	require.Len(t, out, 1)
	require.Same(t, t2, out[0])

	err = g.RemoveTransition(t1)
	require.ErrorIs(t, err, core.ErrUnknownTransition)
}

func TestGraph_InitialAndAccepting(t *testing.T) {
	g := core.NewGraph[string, string]()
	a := g.AddState("A")
	b := g.AddState("B")
	require.NoError(t, g.MarkInitial(a, true))
	require.NoError(t, g.MarkAccepting(b, true))

	require.True(t, g.IsInitial(a))
	require.False(t, g.IsInitial(b))
	require.Equal(t, []int{a}, g.InitialStates())
	require.True(t, g.IsAccepting(b))

	err := g.MarkInitial(42, true)
	require.ErrorIs(t, err, core.ErrUnknownState)
}

func TestGraph_IDsNeverReused(t *testing.T) {
	g := core.NewGraph[string, string]()
	a := g.AddState("A")
	require.NoError(t, g.RemoveState(a))
	b := g.AddState("B")
	require.NotEqual(t, a, b)
	require.Equal(t, a+1, b)
}
