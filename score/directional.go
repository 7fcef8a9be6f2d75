package score

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// rangeEpsilon tolerates floating-point rounding when asserting a
// directional score lies in [-1,1] (Walkinshaw's guarantee, §4.1).
const rangeEpsilon = 1e-9

// neighborPair is a common-neighbor pair N(l,r) produced while walking one
// direction's incidence of a state pair (§4.1).
type neighborPair struct{ lID, rID int }

// neighbors walks l and r's transitions in direction dir, pairing the
// endpoints of every combinable (under ct) transition pair, and counts
// U(l,r) (l-transitions matching no r-transition) and its symmetric V(l,r).
func neighbors[S, T any](l, r *core.Graph[S, T], lID, rID int, dir Direction, ct core.Combiner[T]) (pairs []neighborPair, u, v int) {
	var lTrans, rTrans []*core.Transition[T]
	if dir == Forward {
		lTrans, rTrans = l.Outgoing(lID), r.Outgoing(rID)
	} else {
		lTrans, rTrans = l.Incoming(lID), r.Incoming(rID)
	}

	rMatched := make([]bool, len(rTrans))
	for _, lt := range lTrans {
		matchedAny := false
		for j, rt := range rTrans {
			if !ct.AreCombinable(lt.Prop, rt.Prop) {
				continue
			}
			matchedAny = true
			rMatched[j] = true
			if dir == Forward {
				pairs = append(pairs, neighborPair{lID: lt.Target, rID: rt.Target})
			} else {
				pairs = append(pairs, neighborPair{lID: lt.Source, rID: rt.Source})
			}
		}
		if !matchedAny {
			u++
		}
	}
	for _, matched := range rMatched {
		if !matched {
			v++
		}
	}

	return pairs, u, v
}

// stateCombinable reports whether C_S gates pair (lID,rID) to the -1
// sentinel (§4.1: "if C_S(l.prop,r.prop) is not combinable, score = -1").
func stateCombinable[S, T any](l, r *core.Graph[S, T], lID, rID int, cs core.Combiner[S]) (bool, error) {
	lp, err := l.Prop(lID)
	if err != nil {
		return false, fmt.Errorf("score: %w", err)
	}
	rp, err := r.Prop(rID)
	if err != nil {
		return false, fmt.Errorf("score: %w", err)
	}

	return cs.AreCombinable(lp, rp), nil
}

// formula evaluates §4.1's directional-score equation given the neighbor
// pairs, their (already-determined) scores, and the context adjustment,
// asserting the Walkinshaw [-1,1] guarantee.
func formula(pairs []neighborPair, u, v int, alpha, deltaNum, deltaDen float64, lookup func(neighborPair) float64) (float64, error) {
	numerator := deltaNum
	for _, p := range pairs {
		numerator += 1 + alpha*lookup(p)
	}
	denominator := 2 * (float64(u+v+len(pairs)) + deltaDen)

	var sc float64
	if denominator == 0 && len(pairs) == 0 {
		sc = 0
	} else {
		sc = numerator / denominator
	}

	if sc < -1-rangeEpsilon || sc > 1+rangeEpsilon {
		return 0, fmt.Errorf("score: directional score %v outside [-1,1]: %w", sc, ErrPrecondition)
	}

	return sc, nil
}

// combineDirectional applies §4.1's final conversion: if either directional
// score is negative the pair is incompatible (NegInf); otherwise the final
// score is their average.
func combineDirectional(fwd, bwd float64) float64 {
	if fwd < 0 || bwd < 0 {
		return NegInf
	}

	return (fwd + bwd) / 2
}

// validateGraphs enforces the §7 precondition that non-trivial scorers
// require at least one state on each side.
func validateGraphs[S, T any](l, r *core.Graph[S, T]) error {
	if l.Size() == 0 || r.Size() == 0 {
		return fmt.Errorf("score: empty graph given to non-trivial scorer: %w", ErrPrecondition)
	}

	return nil
}
