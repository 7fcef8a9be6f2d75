package score

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// Local computes the score matrix via the finite-depth neighborhood
// refinement scorer (§4.1): S_0 is the zero matrix, and each of the
// nrOfRefinements iterations reads the previous iteration's matrix and
// writes a fresh one (double-buffered, per the Design Note 1 resolution —
// never updated in place).
func Local[S, T any](l, r *core.Graph[S, T], cfg Config[S, T], nrOfRefinements int) (*Matrix, error) {
	if err := validateGraphs(l, r); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if nrOfRefinements < 1 {
		return nil, fmt.Errorf("score: nrOfRefinements must be >= 1: %w", ErrPrecondition)
	}

	lIDs, rIDs := l.States(), r.States()
	n, m := len(lIDs), len(rIDs)
	lIndex, rIndex := indexOf(lIDs), indexOf(rIDs)

	fwd := NewMatrix(n, m)
	bwd := NewMatrix(n, m)

	for iter := 0; iter < nrOfRefinements; iter++ {
		nextFwd := NewMatrix(n, m)
		nextBwd := NewMatrix(n, m)
		for i, lID := range lIDs {
			for j, rID := range rIDs {
				fwdScore, err := directionalCell(l, r, lID, rID, Forward, cfg, func(p neighborPair) float64 {
					return fwd.At(lIndex[p.lID], rIndex[p.rID])
				})
				if err != nil {
					return nil, err
				}
				nextFwd.Set(i, j, fwdScore)

				bwdScore, err := directionalCell(l, r, lID, rID, Backward, cfg, func(p neighborPair) float64 {
					return bwd.At(lIndex[p.lID], rIndex[p.rID])
				})
				if err != nil {
					return nil, err
				}
				nextBwd.Set(i, j, bwdScore)
			}
		}
		fwd, bwd = nextFwd, nextBwd
	}

	out := NewMatrix(n, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			out.Set(i, j, combineDirectional(fwd.At(i, j), bwd.At(i, j)))
		}
	}

	return out, nil
}

// directionalCell evaluates the §4.1 directional formula for one (lID,rID)
// pair: the C_S gate first, then the neighbor-pair formula using lookup to
// resolve each neighbor's previous-iteration score.
func directionalCell[S, T any](l, r *core.Graph[S, T], lID, rID int, dir Direction, cfg Config[S, T], lookup func(neighborPair) float64) (float64, error) {
	combinable, err := stateCombinable(l, r, lID, rID, cfg.StateCombiner)
	if err != nil {
		return 0, err
	}
	if !combinable {
		return -1, nil
	}

	pairs, u, v := neighbors(l, r, lID, rID, dir, cfg.TransitionCombiner)
	deltaNum, deltaDen := cfg.Adjustment(l, r, lID, rID, dir)

	return formula(pairs, u, v, cfg.Alpha, deltaNum, deltaDen, lookup)
}

// indexOf builds a state-id -> stable-order-index map, shared by every
// scorer that needs to address a Matrix cell from a state id pair.
func indexOf(ids []int) map[int]int {
	idx := make(map[int]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}

	return idx
}
