package analysis

import (
	"errors"
	"fmt"

	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// DCSweep runs the DC operating point repeatedly while sweeping a single
// DC voltage source's value from start to stop in steps of step,
// appending each point's node voltages to the voltage history keyed by
// node name (x = source value, not time). Single-source only: a second
// swept source is out of scope for this core.
func (d *Driver) DCSweep(sourceName string, start, stop, step float64) (int, error) {
	if step == 0 {
		return 0, fmt.Errorf("%w: step must be non-zero", mnaerror.ErrInvalidParameter)
	}
	src := d.Circuit.VoltageSourceDC(sourceName)
	if src == nil {
		return 0, fmt.Errorf("%w: %q", mnaerror.ErrUnknownSource, sourceName)
	}

	original := src.V
	defer func() { src.V = original }()

	d.History.Clear()

	count := 0
	ascending := step > 0
	for v := start; (ascending && v <= stop) || (!ascending && v >= stop); v += step {
		src.V = v
		voltages, err := d.DC()
		if err != nil && !errors.Is(err, mnaerror.ErrDidNotConverge) {
			return count, fmt.Errorf("dc sweep: at %s=%g: %w", sourceName, v, err)
		}
		for name, vv := range voltages {
			d.History.AppendVoltage(name, v, vv)
		}
		count++
	}
	return count, nil
}
