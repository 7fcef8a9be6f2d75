package core

// DiffKind tags a merged property with how it relates to the two graphs the
// comparison engine was given (§3).
type DiffKind int

const (
	// Unchanged marks a property present, and combinable, on both sides.
	Unchanged DiffKind = iota
	// Added marks a property present only on the right-hand graph.
	Added
	// Removed marks a property present only on the left-hand graph.
	Removed
)

// String renders a DiffKind for diagnostics and test failure messages.
func (k DiffKind) String() string {
	switch k {
	case Unchanged:
		return "UNCHANGED"
	case Added:
		return "ADDED"
	case Removed:
		return "REMOVED"
	default:
		return "INVALID"
	}
}

// kindCombinable implements the general DiffKind law (§3): ADDED/ADDED and
// REMOVED/REMOVED combine with themselves, UNCHANGED absorbs anything, and
// ADDED/REMOVED never combine.
func kindCombinable(a, b DiffKind) bool {
	if a == Unchanged || b == Unchanged {
		return true
	}

	return a == b
}

// combineKind implements the general DiffKind law's combine half. Only
// meaningful where kindCombinable(a, b) holds.
func combineKind(a, b DiffKind) DiffKind {
	if a == Unchanged {
		return b
	}
	if b == Unchanged {
		return a
	}

	return a // a == b by the AreCombinable precondition
}

// DiffKindCombiner is the general DiffKind law of §3, exposed as a
// Combiner[DiffKind] for direct reuse (e.g. by rewriters comparing two
// already-tagged transitions within the same merged graph).
var DiffKindCombiner = Combiner[DiffKind]{
	AreCombinable: kindCombinable,
	Combine:       combineKind,
}

// DiffProperty pairs a domain property value with the DiffKind that relates
// it to the two input graphs (§3).
type DiffProperty[T any] struct {
	Inner T
	Kind  DiffKind
}

// DiffPropertyCombiner builds the *strict* combiner over DiffProperty[T]
// that applies the literal DiffKind law from §3 to the Kind component, in
// addition to delegating to inner for the Inner component. This is the
// combiner rewriters (§4.4) use when recognizing/folding two properties
// that already belong to the same merged graph — e.g. two parallel
// transitions the merge step produced, one tagged ADDED and one tagged
// UNCHANGED, fold to UNCHANGED; two tagged ADDED and REMOVED never fold.
func DiffPropertyCombiner[T any](inner Combiner[T]) Combiner[DiffProperty[T]] {
	return Combiner[DiffProperty[T]]{
		AreCombinable: func(a, b DiffProperty[T]) bool {
			return kindCombinable(a.Kind, b.Kind) && inner.AreCombinable(a.Inner, b.Inner)
		},
		Combine: func(a, b DiffProperty[T]) DiffProperty[T] {
			return DiffProperty[T]{Inner: inner.Combine(a.Inner, b.Inner), Kind: combineKind(a.Kind, b.Kind)}
		},
	}
}

// DiffTransitionCombiner builds the *merge-time* combiner over
// DiffProperty[T] used as the C_T argument to Compare when diffing two
// DiffKind-tagged automata. By the diffing convention, every left-graph
// transition enters Compare pre-tagged Removed (it is a candidate for
// removal unless matched) and every right-graph transition enters pre-
// tagged Added; AreCombinable therefore only consults the inner label
// (the two sides' Kind tags are always opposite and carry no matching
// information yet), and a successful match always resolves to Unchanged —
// it exists, combinably, on both sides. This is deliberately distinct from
// DiffPropertyCombiner's strict law: applying the strict law here would
// make every genuine cross-side match impossible, since Added and Removed
// never combine under that law.
func DiffTransitionCombiner[T any](inner Combiner[T]) Combiner[DiffProperty[T]] {
	return Combiner[DiffProperty[T]]{
		AreCombinable: func(a, b DiffProperty[T]) bool {
			return inner.AreCombinable(a.Inner, b.Inner)
		},
		Combine: func(a, b DiffProperty[T]) DiffProperty[T] {
			return DiffProperty[T]{Inner: inner.Combine(a.Inner, b.Inner), Kind: Unchanged}
		},
	}
}

// DiffAutomatonStateProperty is the state property of a difference
// automaton (§3): whether the state accepts, how the state itself relates
// to the two input graphs, and — if the state is initial — how its initial
// marker relates to them. InitKind is nil exactly when the state is not
// initial.
type DiffAutomatonStateProperty struct {
	Accepting bool
	StateKind DiffKind
	InitKind  *DiffKind
}

// combineInitKind merges two optional init-kind tags under the same
// merge-time convention as DiffTransitionCombiner: nil is absorbed, and two
// present tags always resolve to Unchanged (a state that is initial on
// both matched sides is an unchanged initial state).
func combineInitKind(a, b *DiffKind) *DiffKind {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	u := Unchanged

	return &u
}

// DiffAutomatonStateCombiner builds the merge-time combiner over
// DiffAutomatonStateProperty used as the C_S argument to Compare. A
// difference-automaton state carries no domain label of its own (§3's
// GLOSSARY: states are unlabeled beyond init/accept markers in this
// formalism — structural identity comes from neighboring transitions,
// which the scorer already accounts for) so AreCombinable imposes no gate
// beyond "both sides are states"; Combine resolves StateKind to Unchanged
// and merges Accepting/InitKind, following the same cross-side convention
// as DiffTransitionCombiner.
func DiffAutomatonStateCombiner() Combiner[DiffAutomatonStateProperty] {
	return Combiner[DiffAutomatonStateProperty]{
		AreCombinable: func(DiffAutomatonStateProperty, DiffAutomatonStateProperty) bool { return true },
		Combine: func(a, b DiffAutomatonStateProperty) DiffAutomatonStateProperty {
			return DiffAutomatonStateProperty{
				Accepting: a.Accepting || b.Accepting,
				StateKind: Unchanged,
				InitKind:  combineInitKind(a.InitKind, b.InitKind),
			}
		},
	}
}
