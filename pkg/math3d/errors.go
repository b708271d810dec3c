package math3d

import "errors"

// ErrDegenerateGeometry matches every *DegenerateGeometryError via errors.Is.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// DegenerateGeometryError reports an operation whose inputs do not span the
// geometry it needs: a zero-length vector where a direction is required, or
// collinear vectors where a plane is required.
type DegenerateGeometryError struct {
	Op     string // operation that rejected its input, e.g. "rotate toward"
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return e.Op + ": degenerate geometry: " + e.Reason
}

// Is lets errors.Is(err, ErrDegenerateGeometry) match.
func (e *DegenerateGeometryError) Is(target error) bool {
	return target == ErrDegenerateGeometry
}

func degenerate(op, reason string) error {
	return &DegenerateGeometryError{Op: op, Reason: reason}
}
