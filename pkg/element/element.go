// Package element defines the per-kind data and companion-model stamping
// logic for the lumped elements the MNA assembler understands: resistors,
// capacitors, inductors, DC/AC voltage sources, current sources, and
// piecewise-linear diodes.
package element

// Matrix is the narrow surface an element needs to stamp itself into the
// assembler's (A, b) system. Indices are 1-based matrix rows/columns, with
// 0 reserved as the ground sentinel (callers must not pass it).
type Matrix interface {
	AddElement(i, j int, value float64)
	AddRHS(i int, value float64)
	AddComplexElement(i, j int, real, imag float64)
	AddComplexRHS(i int, real, imag float64)
}

// Kind identifies which analysis the assembler is currently stamping for.
type Kind int

const (
	OperatingPoint Kind = iota
	Transient
	AC
)

// Context carries the assembly-time parameters an element's Stamp needs:
// the analysis kind, and whichever of {dt, time, frequency} that kind uses.
type Context struct {
	Kind      Kind
	Time      float64 // transient: current simulation time
	TimeStep  float64 // transient: Δt
	Frequency float64 // AC: sweep frequency in Hz
}

// Element is the common surface every element kind implements. Name is
// unique within a kind; Nodes holds the matrix indices of node1
// (positive/anode) and node2 (negative/cathode), 0 meaning ground.
type Element interface {
	Name() string
	Kind() string
	Nodes() [2]int
	Stamp(m Matrix, ctx Context) error
}

// Base holds the fields common to every element kind.
type Base struct {
	ElemName string
	N1, N2   int // matrix indices; 0 = ground
}

func (b *Base) Name() string  { return b.ElemName }
func (b *Base) Nodes() [2]int { return [2]int{b.N1, b.N2} }

func (b *Base) SetNodes(n1, n2 int) { b.N1, b.N2 = n1, n2 }

// Reactive is implemented by elements carrying state across transient
// steps (capacitors, inductors): their companion model depends on the
// previous step's solved voltage or current.
type Reactive interface {
	Element
	UpdateState(v1, v2 float64)
}

// Brancher is implemented by elements that introduce a branch-current
// unknown into the MNA system (inductors, voltage sources, ON diodes).
type Brancher interface {
	Element
	BranchIndex() int
	SetBranchIndex(idx int)
}
