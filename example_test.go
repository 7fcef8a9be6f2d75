package lvdiff_test

import (
	"fmt"

	"github.com/katalvlaran/lvdiff"
	"github.com/katalvlaran/lvdiff/core"
)

// ExampleCompare merges two structurally identical two-state LTSs, each
// with one initial state and a single labeled transition to the other.
func ExampleCompare() {
	build := func() *core.Graph[int, int] {
		g := core.NewGraph[int, int]()
		s0, s1 := g.AddState(0), g.AddState(1)
		_ = g.MarkInitial(s0, true)
		_, _ = g.AddTransition(s0, s1, 1)

		return g
	}
	l, r := build(), build()

	cs := core.Combiner[int]{
		AreCombinable: func(a, b int) bool { return a == b },
		Combine:       func(a, b int) int { return a },
	}

	d, _, err := lvdiff.Compare[int, int](l, r, cs, cs, lvdiff.WithLTSVariant[int, int]())
	if err != nil {
		panic(err)
	}

	fmt.Println(d.Size())
	// Output:
	// 2
}
