package core

// Combiner is a pluggable operator pair over a property type X (§3). The
// contract — enforced only by convention, as Go has no trait laws — is:
//
//   - AreCombinable is reflexive and symmetric.
//   - Combine is defined wherever AreCombinable holds, and is commutative
//     (and, extended over combinable triples, associative).
//
// Per Design Note "Generics over property types", property types never leak
// into scorer/matcher/merger/rewriter internals beyond this interface.
type Combiner[X any] struct {
	AreCombinable func(a, b X) bool
	Combine       func(a, b X) X
}

// Hider is an idempotent neutralizing map over a property type X (§3): for
// all combinable x, y, Hider(x) must be combinable with Hider(y), and
// Hider(Combine(Hider(x), Hider(y))) must equal Combine(Hider(x), Hider(y)).
// Used by the skip rewriters to strip a diff tag while preserving the inner
// label for the inclusion check (§4.4.4 step 5).
type Hider[X any] func(x X) X

// Identity returns a Hider that performs no neutralization — useful when a
// property type carries no diff tag to strip.
func Identity[X any]() Hider[X] {
	return func(x X) X { return x }
}
