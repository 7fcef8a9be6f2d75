// Package lvdiff compares two graphs — plain labeled-transition systems or
// difference automata — and produces a single merged graph annotated with
// how each state and transition relates to the two inputs.
//
// The pipeline has four stages, each in its own package:
//
//   - score: computes a [0,1]-or-(-Inf) similarity matrix between every
//     state of L and every state of R, either by an exact linear-system
//     solve (score.Global) or by fixed-point local refinement (score.Local).
//   - match: turns a score matrix into an injective, combinable mapping
//     between L's and R's states, by optimal bipartite assignment
//     (match.KuhnMunkres), landmark expansion (match.Walkinshaw), or
//     exhaustive search (match.BruteForce).
//   - merge: given a matching, builds the merged graph and the two
//     projections (left state id -> merged id, right state id -> merged id).
//   - rewrite: for difference automata, a fixed-point-driven set of local
//     graph transformations (local-redundancy folding, entanglement
//     splitting, skip-fork/skip-join funnel folding) that simplify the
//     merged automaton without changing what it accepts.
//
// Compare drives score+match+merge for any graph shape. CompareAutomaton
// additionally drives the rewriter fixed point for the difference-automaton
// case. Both are configured through Options and the With* functional
// options, built from DefaultOptions.
package lvdiff
