package rewrite

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// Disentanglement implements §4.4.3, the stricter alternative to
// Entanglement: a "tangle" is an UNCHANGED state whose every incident
// transition is ADDED or REMOVED. Rather than deleting the original state,
// it peels an ADDED copy off (moving only the ADDED transitions) and
// re-labels the original REMOVED, keeping the REMOVED transitions attached
// to it. Entanglement and Disentanglement are alternative strategies for
// the same situation — register one or the other, never both, in a given
// rewriter set.
func Disentanglement[U any]() Rewriter[U] {
	return func(g Automaton[U]) (bool, error) {
		changed := false
		for _, s := range g.States() {
			prop, err := g.Prop(s)
			if err != nil {
				return changed, fmt.Errorf("rewrite: %w", err)
			}
			if prop.StateKind != core.Unchanged {
				continue
			}
			if !isTangle(g, s) {
				continue
			}
			if err := splitTangle(g, s, prop); err != nil {
				return changed, err
			}
			changed = true
		}

		return changed, nil
	}
}

// isTangle reports every incident transition being ADDED or REMOVED, and
// requires at least one incident transition to exist — an incidence-free
// UNCHANGED state has nothing to disentangle, and treating it as a tangle
// would manufacture an empty, unreachable ADDED copy on every leaf state.
func isTangle[U any](g Automaton[U], s int) bool {
	incoming := g.Incoming(s)
	outgoing := g.Outgoing(s)
	if len(incoming)+len(outgoing) == 0 {
		return false
	}
	for _, t := range incoming {
		if t.Prop.Kind == core.Unchanged {
			return false
		}
	}
	for _, t := range outgoing {
		if t.Prop.Kind == core.Unchanged {
			return false
		}
	}

	return true
}

func splitTangle[U any](g Automaton[U], s int, prop core.DiffAutomatonStateProperty) error {
	wasInitial := g.IsInitial(s)
	sA := g.AddState(core.DiffAutomatonStateProperty{Accepting: prop.Accepting, StateKind: core.Added})

	if wasInitial && prop.InitKind != nil && *prop.InitKind != core.Removed {
		added := core.Added
		if err := g.MarkInitial(sA, true); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}
		if err := g.SetStateProperty(sA, core.DiffAutomatonStateProperty{Accepting: prop.Accepting, StateKind: core.Added, InitKind: &added}); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}
	}

	incoming := g.Incoming(s)
	outgoing := g.Outgoing(s)
	seen := make(map[*core.Transition[core.DiffProperty[U]]]bool, len(incoming)+len(outgoing))
	moveAdded := func(t *core.Transition[core.DiffProperty[U]]) error {
		if seen[t] || t.Prop.Kind != core.Added {
			return nil
		}
		seen[t] = true

		newSrc, newTgt := t.Source, t.Target
		if t.Source == s {
			newSrc = sA
		}
		if t.Target == s {
			newTgt = sA
		}
		if err := g.RemoveTransition(t); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}
		if _, err := g.AddTransition(newSrc, newTgt, t.Prop); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}

		return nil
	}
	for _, t := range outgoing {
		if err := moveAdded(t); err != nil {
			return err
		}
	}
	for _, t := range incoming {
		if err := moveAdded(t); err != nil {
			return err
		}
	}

	newS := core.DiffAutomatonStateProperty{Accepting: prop.Accepting, StateKind: core.Removed}
	removedInit := wasInitial && (prop.InitKind == nil || *prop.InitKind != core.Added)
	switch {
	case removedInit:
		removed := core.Removed
		newS.InitKind = &removed
	case wasInitial:
		if err := g.MarkInitial(s, false); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}
	}

	return g.SetStateProperty(s, newS)
}
