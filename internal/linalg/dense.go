// Package linalg provides the small dense-matrix linear solver the global
// similarity scorer needs to solve its fixed-point system Ax=b. It is not a
// general-purpose matrix library; it exposes exactly the operations §4.1
// requires: allocation, indexed access and an LU-based solve.
package linalg

import "errors"

// ErrBadShape is returned when a requested matrix shape is non-positive.
var ErrBadShape = errors.New("linalg: invalid shape")

// ErrOutOfRange is returned by At/Set when an index falls outside the matrix.
var ErrOutOfRange = errors.New("linalg: index out of range")

// ErrDimensionMismatch is returned when operand shapes are incompatible.
var ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

// ErrSingular is returned by Solve when the system has no unique solution.
var ErrSingular = errors.New("linalg: singular matrix")

// Dense is a row-major dense matrix of float64, sized rows x cols.
type Dense struct {
	rows, cols int
	data       []float64 // len == rows*cols
}

// NewDense allocates a rows x cols matrix initialized to zero.
// Stage 1 (Validate): rows>0 && cols>0.
// Stage 2 (Prepare): allocate flat backing storage.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.cols }

// At returns the value at (i,j).
func (m *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, ErrOutOfRange
	}

	return m.data[i*m.cols+j], nil
}

// Set assigns v at (i,j).
func (m *Dense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return ErrOutOfRange
	}
	m.data[i*m.cols+j] = v

	return nil
}

// Add accumulates delta into the value at (i,j). Used by the global scorer
// to build the sparse-in-practice coefficient matrix one contribution at a
// time without re-reading the prior value at every call site.
func (m *Dense) Add(i, j int, delta float64) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return ErrOutOfRange
	}
	m.data[i*m.cols+j] += delta

	return nil
}
