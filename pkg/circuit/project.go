package circuit

import (
	"fmt"
	"math/cmplx"

	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/matrix"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// Project writes a real solution vector back onto the graph: node
// voltages, DC/AC voltage-source branch currents, inductor currents, and
// on-diode currents (off diodes are 0 by construction). Voltages returns
// node-name -> V for every non-ground node.
func (c *Circuit) Project(sys *matrix.System) (voltages map[string]float64, err error) {
	if sys.Size < c.n+c.ExtraVariableCount() {
		return nil, fmt.Errorf("%w: solution vector too short for projection", mnaerror.ErrMalformedSystem)
	}

	voltages = make(map[string]float64, c.n)
	for _, node := range c.nodes {
		if node.Ground {
			continue
		}
		idx := c.MatrixIndex(node)
		voltages[node.Name] = sys.Solution(idx)
	}

	for _, v := range c.vsDC {
		v.SolvedCurrent = sys.Solution(v.BranchIndex())
	}
	for _, v := range c.vsAC {
		v.SolvedCurrent = sys.Solution(v.BranchIndex())
	}
	for _, l := range c.inductors {
		l.SetPrevCurrent(sys.Solution(l.BranchIndex()))
	}
	for _, d := range c.diodes {
		if d.State == element.Off {
			d.SolvedCurrent = 0
			continue
		}
		d.SolvedCurrent = sys.Solution(d.BranchIndex())
	}

	return voltages, nil
}

// ProjectComplexMagnitudes reads a complex solution vector and returns
// node-name -> |V| for every non-ground node, for the AC and phase sweep
// drivers. It does not touch branch currents or diode state: ACSweep and
// PhaseSweep resolve diode state once via DC before sweeping, and it
// stays fixed for every point.
func (c *Circuit) ProjectComplexMagnitudes(sys *matrix.System) (map[string]float64, error) {
	if sys.Size < c.n+c.ExtraVariableCount() {
		return nil, fmt.Errorf("%w: solution vector too short for projection", mnaerror.ErrMalformedSystem)
	}

	mags := make(map[string]float64, c.n)
	for _, node := range c.nodes {
		if node.Ground {
			continue
		}
		idx := c.MatrixIndex(node)
		mags[node.Name] = cmplx.Abs(sys.ComplexSolution(idx))
	}
	return mags, nil
}

