// Package analysis orchestrates the circuit graph, the MNA assembler, and
// the dense solver across the four analysis modes: DC operating point,
// transient, AC frequency sweep, and AC phase sweep. It also carries the
// DC sweep supplement.
package analysis

import (
	"fmt"

	"github.com/circuitcore/mnasim/pkg/circuit"
	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/history"
	"github.com/circuitcore/mnasim/pkg/matrix"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// Driver runs analyses against a single Circuit, appending samples to a
// History store it owns. It is not safe for concurrent use: every analysis
// mutates the circuit's element state (index assignment, diode states,
// solved currents).
type Driver struct {
	Circuit *circuit.Circuit
	History *history.Store
}

func NewDriver(c *circuit.Circuit) *Driver {
	return &Driver{
		Circuit: c,
		History: history.NewStore(),
	}
}

// voltageAt reads the just-projected voltage at a 1-based matrix index,
// returning 0 for the ground sentinel or a branch-current row outside the
// node block.
func (d *Driver) voltageAt(matrixIdx int, voltages map[string]float64) float64 {
	if matrixIdx == 0 {
		return 0
	}
	node := d.Circuit.NodeByMatrixIndex(matrixIdx)
	if node == nil {
		return 0
	}
	return voltages[node.Name]
}

func (d *Driver) diodeVoltage(diode *element.Diode, voltages map[string]float64) float64 {
	nodes := diode.Nodes()
	return d.voltageAt(nodes[0], voltages) - d.voltageAt(nodes[1], voltages)
}

func (d *Driver) resistorCurrent(r *element.Resistor, voltages map[string]float64) float64 {
	nodes := r.Nodes()
	v := d.voltageAt(nodes[0], voltages) - d.voltageAt(nodes[1], voltages)
	return v / r.R
}

func (d *Driver) capacitorCurrent(cap *element.Capacitor, voltages map[string]float64, dt float64) float64 {
	nodes := cap.Nodes()
	v := d.voltageAt(nodes[0], voltages) - d.voltageAt(nodes[1], voltages)
	return cap.C * (v - cap.PrevVolt) / dt
}

// runDiodeIteration assembles and solves ctx repeatedly until the diode
// state machine reaches a fixed point or the iteration cap is hit. It
// always leaves the last solved voltages in place, even on
// non-convergence, and returns ErrDidNotConverge as a non-aborting signal
// distinguishable from a hard solver failure.
func (d *Driver) runDiodeIteration(ctx element.Context) (map[string]float64, error) {
	c := d.Circuit
	for _, diode := range c.Diodes() {
		diode.Reset()
	}

	maxIter := c.Config.MaxDiodeIterations
	var voltages map[string]float64

	for iter := 0; iter < maxIter; iter++ {
		c.AssignDiodeBranchIndices()
		sys := matrix.New(c.Size(), false)
		if err := c.Stamp(sys, ctx); err != nil {
			return nil, err
		}
		if err := sys.Solve(); err != nil {
			return nil, err
		}
		v, err := c.Project(sys)
		if err != nil {
			return nil, err
		}
		voltages = v

		changed := false
		for _, diode := range c.Diodes() {
			v := d.diodeVoltage(diode, voltages)
			if diode.NextState(v, diode.SolvedCurrent) {
				changed = true
			}
		}
		if !changed {
			return voltages, nil
		}
	}

	return voltages, fmt.Errorf("%w", mnaerror.ErrDidNotConverge)
}
