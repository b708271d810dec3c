package orientation

import (
	"fmt"

	"github.com/taigrr/orient/pkg/math3d"
)

// Reading is one sample: the two calibration readings that define the
// frame and the vector to decompose in it.
type Reading struct {
	Up      math3d.Vec3 `json:"up"`
	UpFront math3d.Vec3 `json:"upFront"`
	Vector  math3d.Vec3 `json:"vector"`
}

// Result is everything derived from a Reading.
type Result struct {
	Vector     math3d.Vec3    `json:"vector"`
	Frame      Frame          `json:"frame"`
	Components AxisComponents `json:"components"`
	Magnitudes AxisMagnitudes `json:"magnitudes"`
}

// Resolve builds the frame for r and decomposes r.Vector in it.
func Resolve(r Reading) (Result, error) {
	f, err := Build(r.Up, r.UpFront)
	if err != nil {
		return Result{}, err
	}

	c, err := Decompose(r.Vector, f)
	if err != nil {
		return Result{}, fmt.Errorf("resolve %v: %w", r.Vector, err)
	}

	return Result{
		Vector:     r.Vector,
		Frame:      f,
		Components: c,
		Magnitudes: magnitudesOf(c, f),
	}, nil
}
