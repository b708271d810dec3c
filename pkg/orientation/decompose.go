package orientation

import (
	"fmt"

	"github.com/taigrr/orient/pkg/math3d"
)

// AxisComponents holds the projection of a vector onto each frame axis.
type AxisComponents struct {
	Up    math3d.Vec3 `json:"up"`
	Front math3d.Vec3 `json:"front"`
	Right math3d.Vec3 `json:"right"`
}

// Axis returns the component along axis a.
func (c AxisComponents) Axis(a Axis) math3d.Vec3 {
	switch a {
	case Front:
		return c.Front
	case Right:
		return c.Right
	default:
		return c.Up
	}
}

// Sum adds the three components back together. For an orthogonal frame
// this reconstructs the decomposed vector.
func (c AxisComponents) Sum() math3d.Vec3 {
	return c.Up.Add(c.Front).Add(c.Right)
}

// AxisMagnitudes holds signed lengths along each frame axis. Positive
// values point along the axis (UP, FRONT, RIGHT), negative ones against it
// (DOWN, BACK, LEFT).
type AxisMagnitudes struct {
	Up    float64 `json:"up"`
	Front float64 `json:"front"`
	Right float64 `json:"right"`
}

// Axis returns the signed magnitude along axis a.
func (m AxisMagnitudes) Axis(a Axis) float64 {
	switch a {
	case Front:
		return m.Front
	case Right:
		return m.Right
	default:
		return m.Up
	}
}

// Direction names the way the magnitude along a points, e.g. "DOWN" for a
// negative Up value.
func (m AxisMagnitudes) Direction(a Axis) string {
	if m.Axis(a) < 0 {
		return a.Opposite()
	}
	return a.String()
}

// Decompose projects v onto each axis of f.
func Decompose(v math3d.Vec3, f Frame) (AxisComponents, error) {
	var c AxisComponents
	for _, a := range Axes {
		p, err := math3d.ProjectOnto(v, f.Axis(a))
		if err != nil {
			return AxisComponents{}, fmt.Errorf("decompose along %s: %w", a, err)
		}
		switch a {
		case Up:
			c.Up = p
		case Front:
			c.Front = p
		case Right:
			c.Right = p
		}
	}
	return c, nil
}

// Magnitudes returns the signed length of each component of v in f.
func Magnitudes(v math3d.Vec3, f Frame) (AxisMagnitudes, error) {
	c, err := Decompose(v, f)
	if err != nil {
		return AxisMagnitudes{}, err
	}
	return magnitudesOf(c, f), nil
}

func magnitudesOf(c AxisComponents, f Frame) AxisMagnitudes {
	signed := func(a Axis) float64 {
		comp := c.Axis(a)
		m := comp.Len()
		if f.Axis(a).IsOpposite(comp) {
			return -m
		}
		return m
	}
	return AxisMagnitudes{
		Up:    signed(Up),
		Front: signed(Front),
		Right: signed(Right),
	}
}
