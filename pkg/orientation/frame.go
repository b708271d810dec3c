// Package orientation derives an UP/FRONT/RIGHT reference frame from two
// accelerometer readings and decomposes measured vectors along it.
//
// A frame is built from a gravity reading (up) and a reading taken while
// the device accelerates forward (up+front). Neither reading has to be
// orthogonal to anything: the front axis is found by turning up 90° toward
// the up+front reading, and the right axis by turning up 90° about front.
//
// Every function is pure and safe for concurrent use.
package orientation

import (
	"fmt"
	"math"

	"github.com/taigrr/orient/pkg/math3d"
)

// Axis identifies one of the three frame directions.
type Axis int

const (
	Up Axis = iota
	Front
	Right
)

// Axes lists the frame axes in reporting order.
var Axes = [3]Axis{Up, Front, Right}

func (a Axis) String() string {
	switch a {
	case Up:
		return "UP"
	case Front:
		return "FRONT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Opposite returns the name of the negative direction of the axis.
func (a Axis) Opposite() string {
	switch a {
	case Up:
		return "DOWN"
	case Front:
		return "BACK"
	case Right:
		return "LEFT"
	default:
		return fmt.Sprintf("-Axis(%d)", int(a))
	}
}

// Frame is an orientation triad. Front and Right are perpendicular to Up
// and to each other and Right × Front points along Up. The axes are not
// normalized: Front and Right carry the length of the up reading.
type Frame struct {
	Up    math3d.Vec3 `json:"up"`
	Front math3d.Vec3 `json:"front"`
	Right math3d.Vec3 `json:"right"`
}

// Build derives the frame for an up reading and an up+front reading.
// The readings must be non-zero and not collinear; otherwise the returned
// error matches math3d.ErrDegenerateGeometry.
func Build(up, upFront math3d.Vec3) (Frame, error) {
	front, err := math3d.RotateToward(up, upFront, 90)
	if err != nil {
		return Frame{}, fmt.Errorf("build frame: front axis: %w", err)
	}

	right, err := math3d.RotateAround(up, front, 90)
	if err != nil {
		return Frame{}, fmt.Errorf("build frame: right axis: %w", err)
	}

	return Frame{Up: up, Front: front, Right: right}, nil
}

// Axis returns the direction vector of axis a.
func (f Frame) Axis(a Axis) math3d.Vec3 {
	switch a {
	case Front:
		return f.Front
	case Right:
		return f.Right
	default:
		return f.Up
	}
}

// Unit returns the frame with every axis scaled to length 1.
// Zero axes stay zero.
func (f Frame) Unit() Frame {
	return Frame{
		Up:    f.Up.Normalize(),
		Front: f.Front.Normalize(),
		Right: f.Right.Normalize(),
	}
}

// Orthogonality returns the largest |cos| between any two axes: 0 for a
// perfect triad, 1 when two axes are parallel.
func (f Frame) Orthogonality() float64 {
	u := f.Unit()
	return math.Max(
		math.Abs(u.Up.Dot(u.Front)),
		math.Max(math.Abs(u.Up.Dot(u.Right)), math.Abs(u.Front.Dot(u.Right))),
	)
}

// Matrix returns the rotation that maps display space onto the frame:
// +X to Right, +Y to Up and -Z to Front.
func (f Frame) Matrix() math3d.Mat4 {
	u := f.Unit()
	return math3d.Basis(u.Right, u.Up, u.Front.Negate())
}
