package match

import "github.com/katalvlaran/lvdiff/score"

// Normalize implements §4.2.4: if every finite entry already lies in
// [0,1], m is returned unchanged; otherwise finite entries are rescaled
// linearly so the minimum maps to 0 and the maximum to 1 (or, if they
// coincide, every finite entry maps to 1). −∞ entries always pass
// through unchanged. Empty matrices are a no-op.
func Normalize(m *score.Matrix) *score.Matrix {
	rows, cols := m.Rows(), m.Cols()
	if rows == 0 || cols == 0 {
		return m
	}

	min, max := score.NegInf, score.NegInf
	haveFinite := false
	allInUnitRange := true
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if v == score.NegInf {
				continue
			}
			if !haveFinite {
				min, max = v, v
				haveFinite = true
			} else {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			if v < 0 || v > 1 {
				allInUnitRange = false
			}
		}
	}

	if !haveFinite || allInUnitRange {
		return m
	}

	out := score.NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if v == score.NegInf {
				out.Set(i, j, score.NegInf)

				continue
			}
			if min == max {
				out.Set(i, j, 1)

				continue
			}
			out.Set(i, j, (v-min)/(max-min))
		}
	}

	return out
}
