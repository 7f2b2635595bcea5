package element

import "math"

// VoltageSourceAC stamps an ideal sinusoidal voltage source. Phase is
// accepted in degrees (at construction and via SetPhaseDeg) and stored in
// radians; every stamping site works in radians.
//
// In an AC-kind context it contributes a phasor RHS M·(cosφ + j·sinφ). In
// any other context (a transient run, or the operating point, where Time
// is 0) it contributes the time-domain value M·cos(2πf·t+φ) — the source's
// own frequency and phase, independent of whatever frequency an AC sweep
// would otherwise use.
type VoltageSourceAC struct {
	Base
	Magnitude     float64
	Freq          float64 // Hz, used only when stamped into a non-AC context
	SolvedCurrent float64
	phaseRad      float64
	branchIdx     int
}

var _ Brancher = (*VoltageSourceAC)(nil)

func NewVoltageSourceAC(name string, magnitude, freqHz, phaseDeg float64) *VoltageSourceAC {
	return &VoltageSourceAC{
		Base:      Base{ElemName: name},
		Magnitude: magnitude,
		Freq:      freqHz,
		phaseRad:  phaseDeg * math.Pi / 180.0,
	}
}

func (v *VoltageSourceAC) Kind() string         { return "V" }
func (v *VoltageSourceAC) BranchIndex() int     { return v.branchIdx }
func (v *VoltageSourceAC) SetBranchIndex(i int) { v.branchIdx = i }

// PhaseDeg and SetPhaseDeg let the phase sweep driver save, mutate, and
// restore the source's phase without exposing the internal radians
// representation.
func (v *VoltageSourceAC) PhaseDeg() float64 { return v.phaseRad * 180.0 / math.Pi }

func (v *VoltageSourceAC) SetPhaseDeg(deg float64) { v.phaseRad = deg * math.Pi / 180.0 }

func (v *VoltageSourceAC) Stamp(m Matrix, ctx Context) error {
	n1, n2, k := v.N1, v.N2, v.branchIdx

	if ctx.Kind == AC {
		stampBranchAC(m, n1, n2, k)
		re := v.Magnitude * math.Cos(v.phaseRad)
		im := v.Magnitude * math.Sin(v.phaseRad)
		m.AddComplexRHS(k, re, im)
		return nil
	}

	stampBranch(m, n1, n2, k)
	val := v.Magnitude * math.Cos(2*math.Pi*v.Freq*ctx.Time+v.phaseRad)
	m.AddRHS(k, val)
	return nil
}
