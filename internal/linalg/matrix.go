// Package linalg implements the small dense-matrix operations needed by the
// regression analyzer.
package linalg

import (
	"errors"
	"fmt"
	"math"
)

// PivotTolerance is the smallest pivot magnitude accepted by Inverse.
const PivotTolerance = 1e-10

var (
	// ErrSingular is returned when a matrix cannot be inverted.
	ErrSingular = errors.New("matrix is singular")
	// ErrDimension is returned for incompatible shapes.
	ErrDimension = errors.New("dimension mismatch")
)

// Matrix is a row-major dense matrix.
type Matrix [][]float64

// New allocates a zero rows x cols matrix.
func New(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Transpose returns mᵀ.
func Transpose(m Matrix) Matrix {
	out := New(m.Cols(), m.Rows())
	for i, row := range m {
		for j, v := range row {
			out[j][i] = v
		}
	}
	return out
}

// Multiply returns a·b.
func Multiply(a, b Matrix) (Matrix, error) {
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("%w: %dx%d by %dx%d", ErrDimension, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	out := New(a.Rows(), b.Cols())
	for i := range a {
		for k, aik := range a[i] {
			if aik == 0 {
				continue
			}
			for j := range b[k] {
				out[i][j] += aik * b[k][j]
			}
		}
	}
	return out, nil
}

// MultiplyVector returns a·v.
func MultiplyVector(a Matrix, v []float64) ([]float64, error) {
	if a.Cols() != len(v) {
		return nil, fmt.Errorf("%w: %dx%d by vector of %d", ErrDimension, a.Rows(), a.Cols(), len(v))
	}
	out := make([]float64, a.Rows())
	for i, row := range a {
		sum := 0.0
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// AddDiagonal returns a copy of m with lambda added to every diagonal element
// from index skip onwards.
func AddDiagonal(m Matrix, lambda float64, skip int) Matrix {
	out := m.Clone()
	for i := skip; i < len(out) && i < out.Cols(); i++ {
		out[i][i] += lambda
	}
	return out
}

// Inverse inverts a square matrix by Gauss-Jordan elimination with partial
// pivoting. A pivot smaller than PivotTolerance yields ErrSingular.
func Inverse(m Matrix) (Matrix, error) {
	n := m.Rows()
	if n == 0 || m.Cols() != n {
		return nil, fmt.Errorf("%w: inverse needs a square matrix, got %dx%d", ErrDimension, n, m.Cols())
	}

	aug := New(n, 2*n)
	for i := 0; i < n; i++ {
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(aug[pivot][col]) < PivotTolerance {
			return nil, fmt.Errorf("%w: pivot %d below tolerance", ErrSingular, col)
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		scale := aug[col][col]
		for j := range aug[col] {
			aug[col][j] /= scale
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := range aug[r] {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	inv := New(n, n)
	for i := range inv {
		copy(inv[i], aug[i][n:])
	}
	return inv, nil
}

// Solve returns x with a·x = b.
func Solve(a Matrix, b []float64) ([]float64, error) {
	inv, err := Inverse(a)
	if err != nil {
		return nil, err
	}
	return MultiplyVector(inv, b)
}
