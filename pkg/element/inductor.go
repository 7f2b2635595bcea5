package element

import (
	"fmt"
	"math"
)

// Inductor always introduces a branch-current unknown: short in DC,
// companion admittance -L/Δt in transient, -jωL in AC.
type Inductor struct {
	Base
	L         float64
	PrevI     float64
	branchIdx int
}

var _ Reactive = (*Inductor)(nil)
var _ Brancher = (*Inductor)(nil)

func NewInductor(name string, l float64) (*Inductor, error) {
	if l <= 0 {
		return nil, fmt.Errorf("inductor %s: L must be > 0", name)
	}
	return &Inductor{Base: Base{ElemName: name}, L: l}, nil
}

func (l *Inductor) Kind() string { return "L" }

func (l *Inductor) BranchIndex() int     { return l.branchIdx }
func (l *Inductor) SetBranchIndex(i int) { l.branchIdx = i }

func (l *Inductor) Stamp(m Matrix, ctx Context) error {
	n1, n2, k := l.N1, l.N2, l.branchIdx

	if ctx.Kind == AC {
		omega := 2 * math.Pi * ctx.Frequency
		stampBranchAC(m, n1, n2, k)
		m.AddComplexElement(k, k, 0, -omega*l.L)
		return nil
	}

	stampBranch(m, n1, n2, k)

	switch ctx.Kind {
	case OperatingPoint:
		m.AddElement(k, k, 0)
	case Transient:
		geq := l.L / ctx.TimeStep
		m.AddElement(k, k, -geq)
		m.AddRHS(k, -geq*l.PrevI)
	}
	return nil
}

// UpdateState is a no-op; inductor companion state is the solved branch
// current, recorded via SetPrevCurrent by Circuit.Project (the node
// voltages alone don't carry it).
func (l *Inductor) UpdateState(_, _ float64) {}

func (l *Inductor) SetPrevCurrent(i float64) { l.PrevI = i }

// stampBranch is the +1/-1 branch pattern shared by inductors, voltage
// sources, and ON diodes in a real system.
func stampBranch(m Matrix, n1, n2, k int) {
	if n1 != 0 {
		m.AddElement(n1, k, 1)
		m.AddElement(k, n1, 1)
	}
	if n2 != 0 {
		m.AddElement(n2, k, -1)
		m.AddElement(k, n2, -1)
	}
}

func stampBranchAC(m Matrix, n1, n2, k int) {
	if n1 != 0 {
		m.AddComplexElement(n1, k, 1, 0)
		m.AddComplexElement(k, n1, 1, 0)
	}
	if n2 != 0 {
		m.AddComplexElement(n2, k, -1, 0)
		m.AddComplexElement(k, n2, -1, 0)
	}
}
