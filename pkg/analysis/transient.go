package analysis

import (
	"fmt"

	"github.com/circuitcore/mnasim/pkg/element"
	"github.com/circuitcore/mnasim/pkg/matrix"
	"github.com/circuitcore/mnasim/pkg/mnaerror"
)

const transientSanityCap = 1_000_000

// Transient runs a backward-Euler time-domain simulation from t=0 to
// tStop in steps of dt. It bootstraps initial conditions from DC, aborts
// on the first solver failure, and leaves whatever history was computed
// before the failure in place.
func (d *Driver) Transient(dt, tStop float64) error {
	if dt <= 0 || tStop <= 0 {
		return fmt.Errorf("%w: dt and tStop must be > 0", mnaerror.ErrInvalidParameter)
	}
	steps := tStop / dt
	if steps > transientSanityCap {
		return fmt.Errorf("%w: tStop/dt = %g exceeds sanity cap of %d", mnaerror.ErrInvalidParameter, steps, transientSanityCap)
	}

	d.History.Clear()

	voltages, err := d.DC()
	if err != nil {
		return fmt.Errorf("transient: initial operating point: %w", err)
	}

	c := d.Circuit
	for _, capEl := range c.Capacitors() {
		nodes := capEl.Nodes()
		capEl.UpdateState(d.voltageAt(nodes[0], voltages), d.voltageAt(nodes[1], voltages))
	}
	// Inductor prev_current was already set by DC's projection.

	d.appendSample(0, voltages, dt)

	const tol = 1e-9
	for t := dt; t <= tStop+tol; t += dt {
		sys := matrix.New(c.Size(), false)
		ctx := element.Context{Kind: element.Transient, Time: t, TimeStep: dt}
		if err := c.Stamp(sys, ctx); err != nil {
			return fmt.Errorf("transient: stamping at t=%g: %w", t, err)
		}
		if err := sys.Solve(); err != nil {
			return fmt.Errorf("transient: solving at t=%g: %w", t, err)
		}
		voltages, err = c.Project(sys)
		if err != nil {
			return fmt.Errorf("transient: projecting at t=%g: %w", t, err)
		}

		d.appendSample(t, voltages, dt)

		for _, capEl := range c.Capacitors() {
			nodes := capEl.Nodes()
			capEl.UpdateState(d.voltageAt(nodes[0], voltages), d.voltageAt(nodes[1], voltages))
		}
		// Inductors: prev_current already advanced by Project's
		// SetPrevCurrent call on this step's solved branch current.
	}

	return nil
}

// appendSample records (t, V) for every non-ground node and (t, I) for
// every element whose current is solvable this step: resistors (V/R),
// capacitors (C·ΔV/Δt), and the branch-current elements (straight from
// SolvedCurrent / the inductor's just-updated prev_current).
func (d *Driver) appendSample(t float64, voltages map[string]float64, dt float64) {
	c := d.Circuit
	for name, v := range voltages {
		d.History.AppendVoltage(name, t, v)
	}
	for _, r := range c.Resistors() {
		d.History.AppendCurrent(r.Name(), t, d.resistorCurrent(r, voltages))
	}
	for _, capEl := range c.Capacitors() {
		d.History.AppendCurrent(capEl.Name(), t, d.capacitorCurrent(capEl, voltages, dt))
	}
	for _, v := range c.VoltageSourcesDC() {
		d.History.AppendCurrent(v.Name(), t, v.SolvedCurrent)
	}
	for _, v := range c.VoltageSourcesAC() {
		d.History.AppendCurrent(v.Name(), t, v.SolvedCurrent)
	}
	for _, l := range c.Inductors() {
		d.History.AppendCurrent(l.Name(), t, l.PrevI)
	}
	for _, diode := range c.Diodes() {
		d.History.AppendCurrent(diode.Name(), t, diode.SolvedCurrent)
	}
}
