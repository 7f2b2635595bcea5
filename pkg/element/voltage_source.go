package element

// VoltageSourceDC stamps an ideal DC voltage source: v(node1)-v(node2) = V.
type VoltageSourceDC struct {
	Base
	V             float64
	SolvedCurrent float64
	branchIdx     int
}

var _ Brancher = (*VoltageSourceDC)(nil)

func NewVoltageSourceDC(name string, v float64) *VoltageSourceDC {
	return &VoltageSourceDC{Base: Base{ElemName: name}, V: v}
}

func (v *VoltageSourceDC) Kind() string         { return "V" }
func (v *VoltageSourceDC) BranchIndex() int     { return v.branchIdx }
func (v *VoltageSourceDC) SetBranchIndex(i int) { v.branchIdx = i }

func (v *VoltageSourceDC) Stamp(m Matrix, ctx Context) error {
	n1, n2, k := v.N1, v.N2, v.branchIdx
	if ctx.Kind == AC {
		stampBranchAC(m, n1, n2, k)
		m.AddComplexRHS(k, v.V, 0)
		return nil
	}
	stampBranch(m, n1, n2, k)
	m.AddRHS(k, v.V)
	return nil
}
