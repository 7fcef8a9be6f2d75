package rewrite

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// Entanglement implements §4.4.2: splits every entangled state — an
// UNCHANGED state with no UNCHANGED incident transition and at least one
// ADDED and one REMOVED incident transition — into an ADDED copy and a
// REMOVED copy, each keeping only the incident transitions of its own kind,
// then deletes the original.
func Entanglement[U any]() Rewriter[U] {
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

			incoming := g.Incoming(s)
			outgoing := g.Outgoing(s)
			var hasUnchanged, hasAdded, hasRemoved bool
			for _, t := range append(append([]*core.Transition[core.DiffProperty[U]]{}, incoming...), outgoing...) {
				switch t.Prop.Kind {
				case core.Unchanged:
					hasUnchanged = true
				case core.Added:
					hasAdded = true
				case core.Removed:
					hasRemoved = true
				}
			}
			if hasUnchanged || !hasAdded || !hasRemoved {
				continue
			}

			if err := splitEntangled(g, s, prop, incoming, outgoing); err != nil {
				return changed, err
			}
			changed = true
		}

		return changed, nil
	}
}

func splitEntangled[U any](g Automaton[U], s int, prop core.DiffAutomatonStateProperty, incoming, outgoing []*core.Transition[core.DiffProperty[U]]) error {
	sA := g.AddState(core.DiffAutomatonStateProperty{Accepting: prop.Accepting, StateKind: core.Added})
	sR := g.AddState(core.DiffAutomatonStateProperty{Accepting: prop.Accepting, StateKind: core.Removed})

	if prop.InitKind != nil && g.IsInitial(s) {
		if *prop.InitKind == core.Unchanged || *prop.InitKind == core.Added {
			added := core.Added
			if err := g.MarkInitial(sA, true); err != nil {
				return fmt.Errorf("rewrite: %w", err)
			}
			if err := g.SetStateProperty(sA, core.DiffAutomatonStateProperty{Accepting: prop.Accepting, StateKind: core.Added, InitKind: &added}); err != nil {
				return fmt.Errorf("rewrite: %w", err)
			}
		}
		if *prop.InitKind == core.Unchanged || *prop.InitKind == core.Removed {
			removed := core.Removed
			if err := g.MarkInitial(sR, true); err != nil {
				return fmt.Errorf("rewrite: %w", err)
			}
			if err := g.SetStateProperty(sR, core.DiffAutomatonStateProperty{Accepting: prop.Accepting, StateKind: core.Removed, InitKind: &removed}); err != nil {
				return fmt.Errorf("rewrite: %w", err)
			}
		}
	}

	seen := make(map[*core.Transition[core.DiffProperty[U]]]bool, len(incoming)+len(outgoing))
	move := func(t *core.Transition[core.DiffProperty[U]]) error {
		if seen[t] {
			return nil
		}
		seen[t] = true

		dest := sA
		if t.Prop.Kind == core.Removed {
			dest = sR
		}
		newSrc, newTgt := t.Source, t.Target
		if t.Source == s {
			newSrc = dest
		}
		if t.Target == s {
			newTgt = dest
		}
		if err := g.RemoveTransition(t); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}
		if _, err := g.AddTransition(newSrc, newTgt, t.Prop); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}

		return nil
	}

	for _, t := range incoming {
		if err := move(t); err != nil {
			return err
		}
	}
	for _, t := range outgoing {
		if err := move(t); err != nil {
			return err
		}
	}

	if len(g.Incoming(s)) != 0 || len(g.Outgoing(s)) != 0 {
		return fmt.Errorf("rewrite: entangled state %d retained incident transitions: %w", s, ErrInvariantViolation)
	}

	return g.RemoveState(s)
}
