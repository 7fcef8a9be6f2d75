package rewrite

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// LocalRedundancy implements §4.4.1: for each state, partitions its
// outgoing transitions into classes sharing a target and pairwise
// C_T-combinable properties; any class of size >= 2 collapses to one
// transition carrying the combined property. Generic over any graph shape
// (not automaton-specific), so the same routine serves both a plain
// merged graph and a DiffAutomaton via LocalRedundancyRewriter.
func LocalRedundancy[S, T any](g *core.Graph[S, T], ct core.Combiner[T]) (bool, error) {
	changed := false
	for _, s := range g.States() {
		out := g.Outgoing(s)
		folded := make([]bool, len(out))

		for i := range out {
			if folded[i] {
				continue
			}
			class := []int{i}
			for j := i + 1; j < len(out); j++ {
				if folded[j] || out[j].Target != out[i].Target {
					continue
				}
				// Combinability need not be transitive (e.g. UNCHANGED
				// absorbs both ADDED and REMOVED while they never combine
				// with each other), so j must combine with every member
				// already accepted into the class, not just out[i].
				combinesWithClass := true
				for _, idx := range class {
					if !ct.AreCombinable(out[idx].Prop, out[j].Prop) {
						combinesWithClass = false
						break
					}
				}
				if combinesWithClass {
					class = append(class, j)
					folded[j] = true
				}
			}
			if len(class) < 2 {
				continue
			}

			combined := out[class[0]].Prop
			for _, idx := range class[1:] {
				combined = ct.Combine(combined, out[idx].Prop)
			}
			target := out[class[0]].Target
			for _, idx := range class {
				if err := g.RemoveTransition(out[idx]); err != nil {
					return changed, fmt.Errorf("rewrite: %w", err)
				}
			}
			if _, err := g.AddTransition(s, target, combined); err != nil {
				return changed, fmt.Errorf("rewrite: %w", err)
			}
			changed = true
		}
	}

	return changed, nil
}

// LocalRedundancyRewriter adapts LocalRedundancy to the Rewriter[U]
// signature the driver expects, for use within an automaton's rewriter set.
func LocalRedundancyRewriter[U any](ct core.Combiner[core.DiffProperty[U]]) Rewriter[U] {
	return func(g Automaton[U]) (bool, error) {
		return LocalRedundancy[core.DiffAutomatonStateProperty, core.DiffProperty[U]](g, ct)
	}
}
