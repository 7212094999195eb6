package airfoil

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is matched by errors describing a non-physical
	// shape: out-of-range parameters, folded curves or negative thickness.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrOutOfDomain is returned by surface queries outside the chord.
	ErrOutOfDomain = errors.New("chordwise station out of domain")
	// ErrNonConvergence is matched by cabin fits that hit the iteration cap.
	ErrNonConvergence = errors.New("cabin fit did not converge")
)

// InvalidGeometryError describes why a geometry is not physically
// realizable. It matches [ErrInvalidGeometry].
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return "invalid geometry: " + e.Reason
}

func (e *InvalidGeometryError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

// FitError reports a failed cabin fit together with the state of the last
// iteration. Err is either [ErrNonConvergence] or an error matching
// [ErrInvalidGeometry] or [ErrOutOfDomain].
type FitError struct {
	Iterations   int
	MaxThickness float64
	Clearance    float64
	Err          error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("cabin fit failed after %d iterations (y_t=%g, clearance=%g): %v",
		e.Iterations, e.MaxThickness, e.Clearance, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}
