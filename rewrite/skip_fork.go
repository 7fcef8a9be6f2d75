package rewrite

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// InclusionPredicate decides whether all combinable information in e1 is
// contained in e2 (§4.4.4 guard 5) — domain-specific, supplied by the
// caller.
type InclusionPredicate[U any] func(e1, e2 core.DiffProperty[U]) bool

// EqualInner builds an InclusionPredicate that only accepts exact equality
// of the inner label, ignoring the DiffKind tag — the simplest faithful
// choice when the domain label type has no finer notion of "contains".
func EqualInner[U comparable]() InclusionPredicate[U] {
	return func(e1, e2 core.DiffProperty[U]) bool { return e1.Inner == e2.Inner }
}

// AlwaysIncluded builds an InclusionPredicate that accepts any pair —
// for domains where containment between labels has no meaningful
// structure finer than "the fold is being requested at all".
func AlwaysIncluded[U any]() InclusionPredicate[U] {
	return func(_, _ core.DiffProperty[U]) bool { return true }
}

// SkipFork implements §4.4.4. For a state source with two distinct,
// combinable outgoing transitions (left, right), if rightTarget is a
// dead-end funnel back to leftTarget — not initial, reached only via right,
// every one of its own outgoing transitions included in H(right) — and a
// skippable structure exists between them barred by source, folds right
// into source and adds a hidden skip edge from rightTarget to leftTarget,
// dropping left.
func SkipFork[U any](cs core.Combiner[core.DiffAutomatonStateProperty], ct core.Combiner[core.DiffProperty[U]], h core.Hider[core.DiffProperty[U]], isIncludedIn InclusionPredicate[U]) Rewriter[U] {
	return func(g Automaton[U]) (bool, error) {
		for _, source := range g.States() {
			out := g.Outgoing(source)
			for i := range out {
				for j := range out {
					if i == j {
						continue
					}
					left, right := out[i], out[j]
					if !ct.AreCombinable(left.Prop, right.Prop) {
						continue
					}
					changed, err := trySkipFork(g, cs, ct, h, isIncludedIn, source, left, right)
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

func trySkipFork[U any](g Automaton[U], cs core.Combiner[core.DiffAutomatonStateProperty], ct core.Combiner[core.DiffProperty[U]], h core.Hider[core.DiffProperty[U]], isIncludedIn InclusionPredicate[U], source int, left, right *core.Transition[core.DiffProperty[U]]) (bool, error) {
	leftTarget, rightTarget := left.Target, right.Target
	if source == leftTarget || source == rightTarget || leftTarget == rightTarget {
		return false, nil
	}
	if g.IsInitial(rightTarget) {
		return false, nil
	}

	leftProp, err := g.Prop(leftTarget)
	if err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}
	rightProp, err := g.Prop(rightTarget)
	if err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}
	if !cs.AreCombinable(leftProp, rightProp) {
		return false, nil
	}

	rtIncoming := g.Incoming(rightTarget)
	if len(rtIncoming) != 1 || rtIncoming[0] != right {
		return false, nil
	}

	for _, t := range g.Outgoing(rightTarget) {
		if !isIncludedIn(h(t.Prop), h(right.Prop)) {
			return false, nil
		}
	}

	skippable, err := SkippableStructure(g, rightTarget, leftTarget, map[int]bool{source: true})
	if err != nil {
		return false, err
	}
	if !skippable {
		return false, nil
	}

	synthetic := core.DiffAutomatonStateProperty{Accepting: rightProp.Accepting, StateKind: left.Prop.Kind}
	if err := g.SetStateProperty(rightTarget, cs.Combine(rightProp, synthetic)); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	combined := ct.Combine(left.Prop, right.Prop)
	if err := g.RemoveTransition(right); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}
	if _, err := g.AddTransition(source, rightTarget, combined); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	if _, err := g.AddTransition(rightTarget, leftTarget, h(left.Prop)); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	if err := g.RemoveTransition(left); err != nil {
		return false, fmt.Errorf("rewrite: %w", err)
	}

	return true, nil
}
