// Package mnaerror defines the sentinel error kinds surfaced by the MNA
// core, wrapped with context via fmt.Errorf("%w", ...) at the point each
// is raised so callers can still match with errors.Is.
package mnaerror

import "errors"

var (
	// ErrSingularSystem is returned when a pivot falls below the solver's
	// tolerance: floating node, redundant voltage-source loop, or similar
	// bad topology.
	ErrSingularSystem = errors.New("mnasim: singular system")

	// ErrMalformedSystem indicates a zero-dimensional system or an A/b
	// dimension mismatch. Should be unreachable; indicates a bug in the
	// assembler.
	ErrMalformedSystem = errors.New("mnasim: malformed system")

	// ErrUnknownSource is returned when a sweep names an AC source that
	// does not exist in the circuit.
	ErrUnknownSource = errors.New("mnasim: unknown source")

	// ErrInvalidParameter is returned for non-positive R, C, L, Δt,
	// t_stop, or n_points < 1.
	ErrInvalidParameter = errors.New("mnasim: invalid parameter")

	// ErrDidNotConverge is returned when the DC diode iteration hits
	// MAX_DIODE_ITERATIONS. It is a warning, not a hard failure: the
	// last solution is retained and reflected in the circuit's state.
	ErrDidNotConverge = errors.New("mnasim: diode iteration did not converge")

	// ErrDuplicateName is returned when the builder API is asked to add
	// an element whose name collides with an existing element of the
	// same kind.
	ErrDuplicateName = errors.New("mnasim: duplicate element name")
)
