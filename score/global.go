package score

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/internal/linalg"
)

// pairKey identifies a (left index, right index) cell of the score matrix
// being solved, used as a map key by the static-determination worklist.
type pairKey struct{ i, j int }

// Global computes the score matrix as the joint fixed point of the §4.1
// directional equation, solved directionally (once forward, once backward)
// via a linear system, then combined by the §4.1 final conversion.
//
// When optimize is true, §4.1 step 1's worklist first resolves every pair
// whose score is statically determinable (either because C_S rejects it,
// or because every neighbor pair it depends on is already known), leaving
// only the genuinely cyclic remainder for the linear solve. When false,
// only the C_S-rejection rule is applied up front and everything else
// goes straight to the solver — mathematically the same system, solved
// without the shortcut, which is the assertable invariant Design Notes
// calls for (§9: "must not change the result vs. solving the full system").
func Global[S, T any](l, r *core.Graph[S, T], cfg Config[S, T], optimize bool) (*Matrix, error) {
	if err := validateGraphs(l, r); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fwd, err := solveDirectional(l, r, cfg, Forward, optimize)
	if err != nil {
		return nil, err
	}
	bwd, err := solveDirectional(l, r, cfg, Backward, optimize)
	if err != nil {
		return nil, err
	}

	n, m := l.Size(), r.Size()
	out := NewMatrix(n, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			out.Set(i, j, combineDirectional(fwd.At(i, j), bwd.At(i, j)))
		}
	}

	return out, nil
}

// solveDirectional computes one directional score matrix for dir via
// §4.1's two-stage procedure: static determination, then a linear solve
// for the remainder.
func solveDirectional[S, T any](l, r *core.Graph[S, T], cfg Config[S, T], dir Direction, optimize bool) (*Matrix, error) {
	lIDs, rIDs := l.States(), r.States()
	n, m := len(lIDs), len(rIDs)
	lIndex, rIndex := indexOf(lIDs), indexOf(rIDs)

	known := make(map[pairKey]float64, n*m)
	unknown := make(map[pairKey]bool, n*m)

	// Stage 1 rule (a): C_S-incompatible pairs are known immediately.
	for i, lID := range lIDs {
		for j, rID := range rIDs {
			combinable, err := stateCombinable(l, r, lID, rID, cfg.StateCombiner)
			if err != nil {
				return nil, err
			}
			if combinable {
				unknown[pairKey{i, j}] = true
			} else {
				known[pairKey{i, j}] = -1
			}
		}
	}

	// cache each still-unknown pair's neighbor list so both the static
	// worklist and the linear-system assembly compute it exactly once.
	type cell struct {
		pairs          []neighborPair
		u, v           int
		deltaNum, delD float64
	}
	cells := make(map[pairKey]cell, len(unknown))
	for k := range unknown {
		lID, rID := lIDs[k.i], rIDs[k.j]
		pairs, u, v := neighbors(l, r, lID, rID, dir, cfg.TransitionCombiner)
		deltaNum, deltaDen := cfg.Adjustment(l, r, lID, rID, dir)
		cells[k] = cell{pairs: pairs, u: u, v: v, deltaNum: deltaNum, delD: deltaDen}
	}

	if optimize {
		// Stage 1 rule (b): reverse-neighbor-keyed worklist fixed point.
		reverseDeps := make(map[pairKey][]pairKey)
		toKey := func(p neighborPair) pairKey { return pairKey{lIndex[p.lID], rIndex[p.rID]} }
		for k, c := range cells {
			for _, p := range c.pairs {
				n := toKey(p)
				reverseDeps[n] = append(reverseDeps[n], k)
			}
		}

		queue := make([]pairKey, 0, len(unknown))
		for k := range unknown {
			queue = append(queue, k)
		}
		for len(queue) > 0 {
			k := queue[0]
			queue = queue[1:]
			if !unknown[k] {
				continue // already resolved
			}
			c := cells[k]
			allKnown := true
			for _, p := range c.pairs {
				if _, ok := known[toKey(p)]; !ok {
					allKnown = false

					break
				}
			}
			if !allKnown {
				continue
			}
			sc, err := formula(c.pairs, c.u, c.v, cfg.Alpha, c.deltaNum, c.delD, func(p neighborPair) float64 {
				return known[toKey(p)]
			})
			if err != nil {
				return nil, err
			}
			known[k] = sc
			delete(unknown, k)
			queue = append(queue, reverseDeps[k]...)
		}
	}

	// Stage 2: solve the remainder.
	solverIndex := make(map[pairKey]int, len(unknown))
	order := make([]pairKey, 0, len(unknown))
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			k := pairKey{i, j}
			if unknown[k] {
				solverIndex[k] = len(order)
				order = append(order, k)
			}
		}
	}

	out := NewMatrix(n, m)
	for k, sc := range known {
		out.Set(k.i, k.j, sc)
	}

	if len(order) > 0 {
		toKey := func(p neighborPair) pairKey { return pairKey{lIndex[p.lID], rIndex[p.rID]} }

		sz := len(order)
		a, err := linalg.NewDense(sz, sz)
		if err != nil {
			return nil, fmt.Errorf("score: %w", err)
		}
		b := make([]float64, sz)

		for k, pi := range solverIndex {
			c := cells[k]
			diag := 2 * (float64(c.u+c.v+len(c.pairs)) + c.delD)
			bVal := float64(len(c.pairs)) + c.deltaNum

			for _, p := range c.pairs {
				n := toKey(p)
				if sc, ok := known[n]; ok {
					bVal += cfg.Alpha * sc

					continue
				}
				if qi, ok := solverIndex[n]; ok {
					if err := a.Add(pi, qi, -cfg.Alpha); err != nil {
						return nil, fmt.Errorf("score: %w", err)
					}
				}
			}

			if err := a.Add(pi, pi, diag); err != nil {
				return nil, fmt.Errorf("score: %w", err)
			}
			if v, _ := a.At(pi, pi); v == 0 && len(c.pairs) == 0 {
				if err := a.Set(pi, pi, 1); err != nil {
					return nil, fmt.Errorf("score: %w", err)
				}
			}
			b[pi] = bVal
		}

		x, err := linalg.Solve(a, b)
		if err != nil {
			return nil, fmt.Errorf("score: global solve: %w: %w", ErrNumerical, err)
		}

		for k, pi := range solverIndex {
			sc := x[pi]
			if sc < -1-rangeEpsilon || sc > 1+rangeEpsilon {
				return nil, fmt.Errorf("score: solved score %v outside [-1,1]: %w", sc, ErrPrecondition)
			}
			out.Set(k.i, k.j, sc)
		}
	}

	return out, nil
}
