package analysis

import (
	"errors"
	"fmt"

	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/matrix"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// PhaseSweep fixes frequency at baseFreq and varies sourceName's phase
// linearly across nPoints values from phiStartDeg to phiStopDeg,
// appending |V_node| to every non-ground node's phase history. The
// source's original phase is restored on exit, including on early
// failure. Any diode is resolved once via DC before the sweep starts and
// stays at that state for every point. Returns the count of points
// successfully computed.
func (d *Driver) PhaseSweep(sourceName string, baseFreq, phiStartDeg, phiStopDeg float64, nPoints int) (int, error) {
	if nPoints < 1 {
		return 0, fmt.Errorf("%w: n_points must be >= 1", mnaerror.ErrInvalidParameter)
	}
	src := d.Circuit.VoltageSourceAC(sourceName)
	if src == nil {
		return 0, fmt.Errorf("%w: %q", mnaerror.ErrUnknownSource, sourceName)
	}

	original := src.PhaseDeg()
	defer src.SetPhaseDeg(original)

	d.History.Clear()

	if _, err := d.DC(); err != nil && !errors.Is(err, mnaerror.ErrDidNotConverge) {
		return 0, fmt.Errorf("phase sweep: resolving diode states: %w", err)
	}

	phases := make([]float64, nPoints)
	if nPoints == 1 {
		phases[0] = phiStartDeg
	} else {
		for i := 0; i < nPoints; i++ {
			phases[i] = phiStartDeg + float64(i)*(phiStopDeg-phiStartDeg)/float64(nPoints-1)
		}
	}

	count := 0
	for _, phi := range phases {
		src.SetPhaseDeg(phi)

		sys := matrix.New(d.Circuit.Size(), true)
		ctx := element.Context{Kind: element.AC, Frequency: baseFreq}
		if err := d.Circuit.Stamp(sys, ctx); err != nil {
			return count, fmt.Errorf("phase sweep: stamping at phase=%g: %w", phi, err)
		}
		if err := sys.Solve(); err != nil {
			return count, fmt.Errorf("phase sweep: solving at phase=%g: %w", phi, err)
		}
		mags, err := d.Circuit.ProjectComplexMagnitudes(sys)
		if err != nil {
			return count, fmt.Errorf("phase sweep: projecting at phase=%g: %w", phi, err)
		}
		for name, mag := range mags {
			d.History.AppendPhase(name, phi, mag)
		}
		count++
	}
	return count, nil
}
