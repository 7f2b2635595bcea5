// Package matrix is the dense (A, b) buffer elements stamp into and the
// thin wrapper around pkg/solver that produces a solution vector from it.
// Real and complex systems share the same Size and the same stamping
// surface (element.Matrix); which one is live is fixed at construction.
package matrix

import (
	"fmt"

	"github.com/circuitcore/mnasim/pkg/mnaerror"
	"github.com/circuitcore/mnasim/pkg/solver"
)

// System is the (A, b) buffer the MNA assembler fills every assembly and
// pkg/solver consumes. It implements element.Matrix.
type System struct {
	Size      int
	IsComplex bool

	a  [][]float64
	b  []float64
	ac [][]complex128
	bc []complex128

	solution  []float64
	solutionC []complex128
}

// New allocates a zeroed N×N system, real or complex.
func New(size int, isComplex bool) *System {
	s := &System{Size: size, IsComplex: isComplex}
	if isComplex {
		s.ac = make([][]complex128, size)
		for i := range s.ac {
			s.ac[i] = make([]complex128, size)
		}
		s.bc = make([]complex128, size)
	} else {
		s.a = make([][]float64, size)
		for i := range s.a {
			s.a[i] = make([]float64, size)
		}
		s.b = make([]float64, size)
	}
	return s
}

// index converts a 1-based matrix-index convention (0 = ground sentinel,
// skipped by callers) into the 0-based slice index this buffer uses.
func (s *System) index(i int) int { return i - 1 }

func (s *System) AddElement(i, j int, value float64) {
	s.a[s.index(i)][s.index(j)] += value
}

func (s *System) AddRHS(i int, value float64) {
	s.b[s.index(i)] += value
}

func (s *System) AddComplexElement(i, j int, real, imag float64) {
	s.ac[s.index(i)][s.index(j)] += complex(real, imag)
}

func (s *System) AddComplexRHS(i int, real, imag float64) {
	s.bc[s.index(i)] += complex(real, imag)
}

// Clear zeros the buffer for the next assembly.
func (s *System) Clear() {
	if s.IsComplex {
		for i := range s.ac {
			for j := range s.ac[i] {
				s.ac[i][j] = 0
			}
			s.bc[i] = 0
		}
		return
	}
	for i := range s.a {
		for j := range s.a[i] {
			s.a[i][j] = 0
		}
		s.b[i] = 0
	}
}

// Solve dispatches to the real or complex dense solver and caches the
// result for Solution/ComplexSolution.
func (s *System) Solve() error {
	if s.Size == 0 {
		return fmt.Errorf("%w: zero-dimensional system", mnaerror.ErrMalformedSystem)
	}
	if s.IsComplex {
		x, err := solver.SolveComplex(s.ac, s.bc)
		if err != nil {
			return err
		}
		s.solutionC = x
		return nil
	}
	x, err := solver.SolveReal(s.a, s.b)
	if err != nil {
		return err
	}
	s.solution = x
	return nil
}

// Solution returns x[i] for a 1-based matrix index on a real system.
func (s *System) Solution(i int) float64 {
	return s.solution[s.index(i)]
}

// ComplexSolution returns x[i] for a 1-based matrix index on a complex
// system.
func (s *System) ComplexSolution(i int) complex128 {
	return s.solutionC[s.index(i)]
}
