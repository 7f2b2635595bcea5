package element

// DiodeType distinguishes an ideal diode from a Zener, which additionally
// admits a controlled reverse-conduction state.
type DiodeType int

const (
	Normal DiodeType = iota
	Zener
)

// DiodeState is one of Off (open), FwdOn (ideal source at Vf), RevOn
// (ideal source at -Vz, Zener only).
type DiodeState int

const (
	Off DiodeState = iota
	FwdOn
	RevOn
)

const diodeEpsilonI = 1e-9

// Diode is a piecewise-linear ideal/Zener diode: one of three fixed linear
// stamps selected by State, not a continuous function of voltage.
type Diode struct {
	Base
	Vf   float64
	Vz   float64
	Type DiodeType

	State         DiodeState
	SolvedCurrent float64
	branchIdx     int // -1 when State == Off
}

func NewDiode(name string, vf float64) *Diode {
	return &Diode{Base: Base{ElemName: name}, Vf: vf, Type: Normal, branchIdx: -1}
}

func NewZenerDiode(name string, vf, vz float64) *Diode {
	return &Diode{Base: Base{ElemName: name}, Vf: vf, Vz: vz, Type: Zener, branchIdx: -1}
}

func (d *Diode) Kind() string { return "D" }

func (d *Diode) BranchIndex() int { return d.branchIdx }

func (d *Diode) SetBranchIndex(i int) { d.branchIdx = i }

// Reset returns the diode to Off with no branch row.
func (d *Diode) Reset() {
	d.State = Off
	d.branchIdx = -1
}

// Stamp contributes nothing when Off. When on it is an ideal voltage
// source: b[k]=Vf (FwdOn) or -Vz (RevOn, Zener only).
func (d *Diode) Stamp(m Matrix, ctx Context) error {
	if d.State == Off {
		return nil
	}

	n1, n2, k := d.N1, d.N2, d.branchIdx

	val := d.Vf
	if d.State == RevOn {
		val = -d.Vz
	}

	if ctx.Kind == AC {
		stampBranchAC(m, n1, n2, k)
		m.AddComplexRHS(k, val, 0)
		return nil
	}

	stampBranch(m, n1, n2, k)
	m.AddRHS(k, val)
	return nil
}

// NextState steps the state machine given v = V(anode)-V(cathode) and the
// branch current from the last solve (ignored when currently Off). It
// reports whether the state changed.
func (d *Diode) NextState(v, current float64) bool {
	prev := d.State

	switch d.State {
	case Off:
		if v >= d.Vf-diodeEpsilonI {
			d.State = FwdOn
		} else if d.Type == Zener && v <= -d.Vz+diodeEpsilonI {
			d.State = RevOn
		}
	case FwdOn:
		if current < -diodeEpsilonI {
			d.State = Off
		}
	case RevOn:
		if current > diodeEpsilonI {
			d.State = Off
		}
	}

	return d.State != prev
}
