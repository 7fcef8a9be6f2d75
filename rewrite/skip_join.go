package rewrite

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// SkipJoin implements §4.4.5, the dual of SkipFork obtained by reversing
// every edge in the skip-fork rewrite and swapping "initial" for
// "accepting" as the dual special-state marker (standard automaton-
// reversal duality): instead of two outgoing transitions sharing a source,
// it looks at two incoming transitions sharing a target, and routes the
// skip edge the other way.
func SkipJoin[U any](cs core.Combiner[core.DiffAutomatonStateProperty], ct core.Combiner[core.DiffProperty[U]], h core.Hider[core.DiffProperty[U]], isIncludedIn InclusionPredicate[U]) Rewriter[U] {
	return func(g Automaton[U]) (bool, error) {
		for _, target := range g.States() {
			in := g.Incoming(target)
			for i := range in {
				for j := range in {
					if i == j {
						continue
					}
					left, right := in[i], in[j]
					if !ct.AreCombinable(left.Prop, right.Prop) {
						continue
					}
					changed, err := trySkipJoin(g, cs, ct, h, isIncludedIn, target, left, right)
					if err != nil {
						return false, err
					}
					if changed {
						return true, nil
					}
				}
			}
		}

		return false, nil
	}
}

func trySkipJoin[U any](g Automaton[U], cs core.Combiner[core.DiffAutomatonStateProperty], ct core.Combiner[core.DiffProperty[U]], h core.Hider[core.DiffProperty[U]], isIncludedIn InclusionPredicate[U], target int, left, right *core.Transition[core.DiffProperty[U]]) (bool, error) {
	leftSource, rightSource := left.Source, right.Source
	if target == leftSource || target == rightSource || leftSource == rightSource {
		return false, nil
	}
	if g.IsAccepting(rightSource) {
		return false, nil
	}

	leftProp, err := g.Prop(leftSource)
	if err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}
	rightProp, err := g.Prop(rightSource)
	if err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}
	if !cs.AreCombinable(leftProp, rightProp) {
		return false, nil
	}

	rsOutgoing := g.Outgoing(rightSource)
	if len(rsOutgoing) != 1 || rsOutgoing[0] != right {
		return false, nil
	}

	for _, t := range g.Incoming(rightSource) {
		if !isIncludedIn(h(t.Prop), h(right.Prop)) {
			return false, nil
		}
	}

	skippable, err := SkippableStructureReversed(g, rightSource, leftSource, map[int]bool{target: true})
	if err != nil {
		return false, err
	}
	if !skippable {
		return false, nil
	}

	synthetic := core.DiffAutomatonStateProperty{Accepting: rightProp.Accepting, StateKind: left.Prop.Kind}
	if err := g.SetStateProperty(rightSource, cs.Combine(rightProp, synthetic)); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	combined := ct.Combine(left.Prop, right.Prop)
	if err := g.RemoveTransition(right); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}
	if _, err := g.AddTransition(rightSource, target, combined); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	if _, err := g.AddTransition(leftSource, rightSource, h(left.Prop)); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	if err := g.RemoveTransition(left); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	return true, nil
}
