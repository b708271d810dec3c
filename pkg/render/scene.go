package render

import (
	"math"

	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/orientation"
)

const gridHalf = 1.0

// Scene describes what to draw for one resolved reading.
//
// Frame axes are drawn at unit length. The measured vector and its
// components are drawn relative to the length of the up reading, so a
// vector as long as gravity reaches the tips of the axes.
type Scene struct {
	Result orientation.Result

	// Aligned rotates everything so the frame is upright (Up on +Y, Front
	// into the screen). Otherwise the sensor's own X/Y/Z are the display
	// axes.
	Aligned bool

	ShowGrid       bool
	ShowBody       bool
	ShowComponents bool

	// Orbit angles in radians, applied after alignment.
	Yaw, Pitch float64
}

// Radius is the half-extent of everything the scene may draw.
func (s *Scene) Radius() float64 {
	r := 1.2
	if up := s.Result.Frame.Up.Len(); up > 0 {
		r = math.Max(r, s.Result.Vector.Len()/up)
	}
	if s.ShowGrid {
		r = math.Max(r, math.Sqrt(3)*gridHalf)
	}
	return r
}

// Transform returns the sensor-to-display rotation.
func (s *Scene) Transform() math3d.Mat4 {
	orbit := math3d.RotateX(s.Pitch).Mul(math3d.RotateY(s.Yaw))
	if !s.Aligned {
		return orbit
	}
	return orbit.Mul(s.Result.Frame.Matrix().Transpose())
}

// Draw renders the scene through w.
func (s *Scene) Draw(w *Wireframe) {
	t := s.Transform()
	frame := s.Result.Frame

	if s.ShowGrid {
		w.DrawGrid(2*gridHalf, 0.5, -gridHalf, ColorGray)
	}

	// sensor axes
	origin := math3d.Zero3()
	w.DrawLine3D(origin, t.MulVec3Dir(math3d.V3(0.6, 0, 0)), Dim(ColorRed, 0.45))
	w.DrawLine3D(origin, t.MulVec3Dir(math3d.V3(0, 0.6, 0)), Dim(ColorGreen, 0.45))
	w.DrawLine3D(origin, t.MulVec3Dir(math3d.V3(0, 0, 0.6)), Dim(ColorBlue, 0.45))

	if s.ShowBody {
		box := t.Mul(frame.Matrix()).Mul(math3d.Scale(math3d.V3(0.8, 0.25, 1.2)))
		w.DrawTransformedCube(box, 1, Dim(ColorWhite, 0.5), ColorWhite)
	}

	unit := frame.Unit()
	for _, a := range orientation.Axes {
		w.DrawArrow(origin, t.MulVec3Dir(unit.Axis(a)), AxisColor(a))
	}

	scale := frame.Up.Len()
	if scale == 0 {
		return
	}
	scale = 1 / scale

	if s.ShowComponents {
		for _, a := range orientation.Axes {
			tip := t.MulVec3Dir(s.Result.Components.Axis(a).Scale(scale))
			w.DrawLine3D(origin, tip, Dim(AxisColor(a), 0.6))
			w.DrawPoint(tip, 0.08, AxisColor(a))
		}
	}

	if v := s.Result.Vector; !v.IsZero() {
		w.DrawArrow(origin, t.MulVec3Dir(v.Scale(scale)), ColorYellow)
	}
}

// Snapshot renders the scene into a new framebuffer of the given size
// using a camera fitted to the scene.
func Snapshot(s *Scene, width, height int, background Color) *Framebuffer {
	fb := NewFramebuffer(width, height)
	fb.Clear(background)

	cam := NewCamera()
	cam.SetAspectRatio(float64(width) / float64(height))
	cam.Fit(s.Radius() * 1.1)

	s.Draw(NewWireframe(cam, fb))
	return fb
}
