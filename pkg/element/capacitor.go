package element

import (
	"fmt"
	"math"
)

// Capacitor open-circuits in DC, stamps a companion admittance C/Δt with a
// history-dependent RHS term in transient, and stamps jωC in AC.
type Capacitor struct {
	Base
	C        float64
	PrevVolt float64 // V(node1)-V(node2) at the previous transient step
}

var _ Reactive = (*Capacitor)(nil)

func NewCapacitor(name string, c float64) (*Capacitor, error) {
	if c <= 0 {
		return nil, fmt.Errorf("capacitor %s: C must be > 0", name)
	}
	return &Capacitor{Base: Base{ElemName: name}, C: c}, nil
}

func (c *Capacitor) Kind() string { return "C" }

func (c *Capacitor) Stamp(m Matrix, ctx Context) error {
	n1, n2 := c.N1, c.N2

	switch ctx.Kind {
	case OperatingPoint:
		// Open circuit: no stamp at all.
		return nil

	case AC:
		omega := 2 * math.Pi * ctx.Frequency
		stampConductanceAC(m, n1, n2, 0, omega*c.C)
		return nil

	case Transient:
		geq := c.C / ctx.TimeStep
		ieq := geq * c.PrevVolt
		stampConductance(m, n1, n2, geq)
		if n1 != 0 {
			m.AddRHS(n1, ieq)
		}
		if n2 != 0 {
			m.AddRHS(n2, -ieq)
		}
		return nil
	}
	return nil
}

// UpdateState records V(node1)-V(node2) as prev_voltage for the next step.
func (c *Capacitor) UpdateState(v1, v2 float64) {
	c.PrevVolt = v1 - v2
}
