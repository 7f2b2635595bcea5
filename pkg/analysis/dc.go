package analysis

import (
	"errors"

	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// DC runs the diode iteration loop to a fixed point and returns the
// resulting node voltages. Non-convergence is reported via the returned
// error (wrapping ErrDidNotConverge) but the voltages are still valid: the
// last solution stands.
func (d *Driver) DC() (map[string]float64, error) {
	d.Circuit.Prepare()
	voltages, err := d.runDiodeIteration(element.Context{Kind: element.OperatingPoint})
	if err != nil && !errors.Is(err, mnaerror.ErrDidNotConverge) {
		return nil, err
	}
	return voltages, err
}
