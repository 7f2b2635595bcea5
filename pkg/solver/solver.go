// Package solver implements dense Gaussian elimination with partial
// pivoting over the real and complex matrices the MNA assembler produces.
// It is pure: it neither reads nor mutates any circuit state, only the
// copies of A and b passed to it.
package solver

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// PivotEpsilon is the tolerance below which a pivot is declared singular.
const PivotEpsilon = 1e-12

// SolveReal solves Ax = b for x via Gaussian elimination with partial
// pivoting by absolute value. A is consumed (rows are permuted and reduced
// in place on a local copy); the caller's slices are left untouched.
func SolveReal(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, fmt.Errorf("%w: A is %dx%d, b has length %d", mnaerror.ErrMalformedSystem, n, n, len(b))
	}
	for _, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: A is not square", mnaerror.ErrMalformedSystem)
		}
	}

	m := cloneReal(a)
	x := append([]float64(nil), b...)

	for col := 0; col < n; col++ {
		pivotRow := col
		best := math.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(m[r][col]); v > best {
				best, pivotRow = v, r
			}
		}
		if best < PivotEpsilon {
			return nil, fmt.Errorf("%w: pivot |%g| below tolerance at column %d", mnaerror.ErrSingularSystem, best, col)
		}
		if pivotRow != col {
			m[col], m[pivotRow] = m[pivotRow], m[col]
			x[col], x[pivotRow] = x[pivotRow], x[col]
		}

		pivot := m[col][col]
		for r := col + 1; r < n; r++ {
			factor := m[r][col] / pivot
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m[r][c] -= factor * m[col][c]
			}
			x[r] -= factor * x[col]
		}
	}

	out := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := x[row]
		for c := row + 1; c < n; c++ {
			sum -= m[row][c] * out[c]
		}
		out[row] = sum / m[row][row]
	}
	return out, nil
}

// SolveComplex is the complex-scalar counterpart of SolveReal, identical in
// structure: partial pivoting by complex magnitude, same pivot tolerance.
func SolveComplex(a [][]complex128, b []complex128) ([]complex128, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, fmt.Errorf("%w: A is %dx%d, b has length %d", mnaerror.ErrMalformedSystem, n, n, len(b))
	}
	for _, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: A is not square", mnaerror.ErrMalformedSystem)
		}
	}

	m := cloneComplex(a)
	x := append([]complex128(nil), b...)

	for col := 0; col < n; col++ {
		pivotRow := col
		best := cmplx.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if v := cmplx.Abs(m[r][col]); v > best {
				best, pivotRow = v, r
			}
		}
		if best < PivotEpsilon {
			return nil, fmt.Errorf("%w: pivot |%g| below tolerance at column %d", mnaerror.ErrSingularSystem, best, col)
		}
		if pivotRow != col {
			m[col], m[pivotRow] = m[pivotRow], m[col]
			x[col], x[pivotRow] = x[pivotRow], x[col]
		}

		pivot := m[col][col]
		for r := col + 1; r < n; r++ {
			factor := m[r][col] / pivot
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m[r][c] -= factor * m[col][c]
			}
			x[r] -= factor * x[col]
		}
	}

	out := make([]complex128, n)
	for row := n - 1; row >= 0; row-- {
		sum := x[row]
		for c := row + 1; c < n; c++ {
			sum -= m[row][c] * out[c]
		}
		out[row] = sum / m[row][row]
	}
	return out, nil
}

func cloneReal(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func cloneComplex(a [][]complex128) [][]complex128 {
	out := make([][]complex128, len(a))
	for i, row := range a {
		out[i] = append([]complex128(nil), row...)
	}
	return out
}
