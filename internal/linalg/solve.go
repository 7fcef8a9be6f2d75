package linalg

import "math"

// pivotEps is the threshold below which a pivot is treated as zero.
const pivotEps = 1e-12

// Solve returns the unique solution x of A*x = b for a square A, using
// Doolittle LU decomposition with partial pivoting followed by forward and
// back substitution.
//
// Adapted from the teacher's non-pivoting Doolittle routine
// (matrix/ops/lu.go): partial pivoting is added because, unlike the
// teacher's callers (which decompose explicit adjacency/incidence
// matrices), the global scorer's coefficient matrix (§4.1 step 2) is built
// from mixed diagonal and off-diagonal contributions with no guarantee of a
// non-zero leading principal minor. Pivot selection is deterministic
// (largest-magnitude candidate, ties broken by smallest row index), so the
// solver stays faithful to the "deterministic everything" requirement of
// §9 while tolerating row reordering.
//
// Stage 1 (Validate): A is square, b has matching length.
// Stage 2 (Prepare): augment with a pivot-tracking permutation.
// Stage 3 (Execute): in-place Doolittle LU with partial pivoting.
// Stage 4 (Finalize): forward-substitute Ly=Pb, back-substitute Ux=y.
// Complexity: O(n^3) time, O(n^2) space.
func Solve(a *Dense, b []float64) ([]float64, error) {
	n := a.Rows()
	if n != a.Cols() {
		return nil, ErrDimensionMismatch
	}
	if len(b) != n {
		return nil, ErrDimensionMismatch
	}

	// Stage 2: work on a private copy so the caller's matrix is untouched.
	lu := make([][]float64, n)
	for i := 0; i < n; i++ {
		lu[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v, _ := a.At(i, j)
			lu[i][j] = v
		}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	// Stage 3: Doolittle elimination with partial pivoting.
	for k := 0; k < n; k++ {
		pivotRow, pivotVal := k, math.Abs(lu[k][k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(lu[i][k]); v > pivotVal {
				pivotRow, pivotVal = i, v
			}
		}
		if pivotVal < pivotEps {
			return nil, ErrSingular
		}
		if pivotRow != k {
			lu[k], lu[pivotRow] = lu[pivotRow], lu[k]
			perm[k], perm[pivotRow] = perm[pivotRow], perm[k]
		}
		for i := k + 1; i < n; i++ {
			factor := lu[i][k] / lu[k][k]
			lu[i][k] = factor
			for j := k + 1; j < n; j++ {
				lu[i][j] -= factor * lu[k][j]
			}
		}
	}

	// Stage 4: forward substitution Ly = Pb (L has implicit unit diagonal).
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[perm[i]]
		for j := 0; j < i; j++ {
			sum -= lu[i][j] * y[j]
		}
		y[i] = sum
	}

	// back substitution Ux = y.
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= lu[i][j] * x[j]
		}
		if math.Abs(lu[i][i]) < pivotEps {
			return nil, ErrSingular
		}
		x[i] = sum / lu[i][i]
	}

	return x, nil
}
