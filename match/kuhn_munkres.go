package match

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/score"
)

// forbidCost stands in for "no real edge here" in the cost matrix the
// assignment solver consumes; it is far above any achievable real cost
// (real costs live in [0,1] after normalization) so the solver only picks
// a forbidden cell when no real alternative exists for that row/column —
// and even then KuhnMunkres drops it afterward per §4.2.1.
const forbidCost = 1e6

// KuhnMunkres implements §4.2.1: consumes a normalized score matrix and
// computes a maximum-weight assignment over finite-score cells via the
// Hungarian algorithm, dropping any cell that was −∞ in the source matrix.
func KuhnMunkres[S, T any](l, r *core.Graph[S, T], normalized *score.Matrix, cs core.Combiner[S]) (Matching, error) {
	lIDs, rIDs := l.States(), r.States()
	n, p := len(lIDs), len(rIDs)
	if normalized.Rows() != n || normalized.Cols() != p {
		return nil, fmt.Errorf("match: score matrix shape %dx%d does not match graphs %dx%d: %w",
			normalized.Rows(), normalized.Cols(), n, p, ErrPrecondition)
	}

	size := n
	if p > size {
		size = p
	}
	if size == 0 {
		return Matching{}, nil
	}

	costs := make([][]float64, size)
	for i := 0; i < size; i++ {
		costs[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			switch {
			case i < n && j < p:
				v := normalized.At(i, j)
				if v == score.NegInf {
					costs[i][j] = forbidCost
				} else {
					costs[i][j] = 1 - v
				}
			default:
				costs[i][j] = 0 // padding row/column: free to leave unmatched
			}
		}
	}

	assignment := hungarianAssign(costs)

	out := make(Matching, size)
	for j, i := range assignment {
		if i >= n || j >= p {
			continue // one side is a padding index: unmatched
		}
		if normalized.At(i, j) == score.NegInf {
			continue // forced onto a forbidden cell for lack of any alternative
		}
		out[lIDs[i]] = rIDs[j]
	}

	if err := ValidateContract(l, r, cs, out); err != nil {
		return nil, err
	}

	return out, nil
}

// hungarianAssign solves the square minimum-cost bipartite assignment via
// successive shortest augmenting paths with dual potentials (the Jonker-
// Volgenant formulation of the Hungarian algorithm). Returns assignment
// where assignment[j] is the row matched to column j. O(size^3).
func hungarianAssign(costs [][]float64) []int {
	n := len(costs)

	sourcePotential := make([]float64, n+1)
	targetPotential := make([]float64, n+1)
	targetSource := make([]int, n+1)
	for i := range targetSource {
		targetSource[i] = n
	}

	minSlack := make([]float64, n+1)
	trail := make([]int, n+1)
	visited := make([]bool, n+1)

	for i := 0; i < n; i++ {
		targetSource[n] = i
		current := n

		for j := 0; j <= n; j++ {
			minSlack[j] = math.Inf(1)
			trail[j] = n
			visited[j] = false
		}

		for targetSource[current] != n {
			visited[current] = true
			source := targetSource[current]
			delta := math.Inf(1)
			next := 0

			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				slack := costs[source][j] - sourcePotential[source] - targetPotential[j]
				if slack < minSlack[j] {
					minSlack[j] = slack
					trail[j] = current
				}
				if minSlack[j] < delta {
					delta = minSlack[j]
					next = j
				}
			}

			for j := 0; j <= n; j++ {
				if visited[j] {
					src := targetSource[j]
					sourcePotential[src] += delta
					targetPotential[j] -= delta
				} else {
					minSlack[j] -= delta
				}
			}

			current = next
		}

		for current != n {
			prev := trail[current]
			targetSource[current] = targetSource[prev]
			current = prev
		}
	}

	return targetSource[:n]
}
