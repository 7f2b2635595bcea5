package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/matrix"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

// SweepType selects how ACSweep spaces its frequency points.
type SweepType int

const (
	Linear SweepType = iota
	Decade
)

// frequencyPoints generates the n_points frequencies for a sweep: a
// single point at fStart when n==1, otherwise linear or logarithmic
// (decade) spacing between fStart and fStop inclusive.
func frequencyPoints(fStart, fStop float64, n int, kind SweepType) []float64 {
	if n == 1 {
		return []float64{fStart}
	}
	freqs := make([]float64, n)
	for i := 0; i < n; i++ {
		switch kind {
		case Decade:
			freqs[i] = fStart * math.Pow(10, float64(i)/float64(n-1)*math.Log10(fStop/fStart))
		default:
			freqs[i] = fStart + float64(i)*(fStop-fStart)/float64(n-1)
		}
	}
	return freqs
}

// ACSweep sweeps frequency from fStart to fStop over nPoints points,
// solving the complex system at each and appending |V_node| to every
// non-ground node's AC history. sourceName must name an existing AC
// voltage source; it is only used to validate the sweep target: every
// element, this source included, is stamped afresh at each swept
// frequency via the Context passed to Stamp. Any diode is resolved once
// via DC before the sweep starts and stays at that state for every point.
// Non-positive frequencies are skipped. Returns the count of points
// successfully computed.
func (d *Driver) ACSweep(sourceName string, fStart, fStop float64, nPoints int, kind SweepType) (int, error) {
	if nPoints < 1 {
		return 0, fmt.Errorf("%w: n_points must be >= 1", mnaerror.ErrInvalidParameter)
	}
	if d.Circuit.VoltageSourceAC(sourceName) == nil {
		return 0, fmt.Errorf("%w: %q", mnaerror.ErrUnknownSource, sourceName)
	}

	d.History.Clear()

	if _, err := d.DC(); err != nil && !errors.Is(err, mnaerror.ErrDidNotConverge) {
		return 0, fmt.Errorf("ac sweep: resolving diode states: %w", err)
	}

	count := 0
	for _, f := range frequencyPoints(fStart, fStop, nPoints, kind) {
		if f <= 0 {
			continue
		}
		sys := matrix.New(d.Circuit.Size(), true)
		ctx := element.Context{Kind: element.AC, Frequency: f}
		if err := d.Circuit.Stamp(sys, ctx); err != nil {
			return count, fmt.Errorf("ac sweep: stamping at f=%g: %w", f, err)
		}
		if err := sys.Solve(); err != nil {
			return count, fmt.Errorf("ac sweep: solving at f=%g: %w", f, err)
		}
		mags, err := d.Circuit.ProjectComplexMagnitudes(sys)
		if err != nil {
			return count, fmt.Errorf("ac sweep: projecting at f=%g: %w", f, err)
		}
		for name, mag := range mags {
			d.History.AppendACMagnitude(name, f, mag)
		}
		count++
	}
	return count, nil
}
