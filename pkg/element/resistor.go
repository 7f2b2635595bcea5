package element

import "fmt"

// Resistor stamps a fixed conductance; it never changes analysis to
// analysis and carries no state.
type Resistor struct {
	Base
	R float64
}

func NewResistor(name string, r float64) (*Resistor, error) {
	if r <= 0 {
		return nil, fmt.Errorf("resistor %s: R must be > 0", name)
	}
	return &Resistor{Base: Base{ElemName: name}, R: r}, nil
}

func (r *Resistor) Kind() string { return "R" }

func (r *Resistor) Stamp(m Matrix, ctx Context) error {
	g := 1.0 / r.R
	n1, n2 := r.N1, r.N2

	if ctx.Kind == AC {
		stampConductanceAC(m, n1, n2, g, 0)
		return nil
	}
	stampConductance(m, n1, n2, g)
	return nil
}

// stampConductance adds the symmetric ±g pattern shared by resistors and
// capacitor companion models to a real system.
func stampConductance(m Matrix, n1, n2 int, g float64) {
	if n1 != 0 {
		m.AddElement(n1, n1, g)
	}
	if n2 != 0 {
		m.AddElement(n2, n2, g)
	}
	if n1 != 0 && n2 != 0 {
		m.AddElement(n1, n2, -g)
		m.AddElement(n2, n1, -g)
	}
}

// stampConductanceAC is the complex-admittance equivalent of stampConductance.
func stampConductanceAC(m Matrix, n1, n2 int, gReal, gImag float64) {
	if n1 != 0 {
		m.AddComplexElement(n1, n1, gReal, gImag)
	}
	if n2 != 0 {
		m.AddComplexElement(n2, n2, gReal, gImag)
	}
	if n1 != 0 && n2 != 0 {
		m.AddComplexElement(n1, n2, -gReal, -gImag)
		m.AddComplexElement(n2, n1, -gReal, -gImag)
	}
}
