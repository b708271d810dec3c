package render

import (
	"math"
	"testing"

	"github.com/taigrr/orient/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	// Normal should have length 1
	length := plane.Normal.Len()
	if math.Abs(length-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", length)
	}

	// Check components (3/5, 4/5)
	if math.Abs(plane.Normal.Y-0.6) > 1e-9 {
		t.Errorf("normal.Y = %v, want 0.6", plane.Normal.Y)
	}
	if math.Abs(plane.Normal.Z-0.8) > 1e-9 {
		t.Errorf("normal.Z = %v, want 0.8", plane.Normal.Z)
	}

	// D should be scaled too (10/5 = 2)
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestFrustumFromPerspective(t *testing.T) {
	// Create a typical perspective projection
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	view := math3d.Identity() // Camera at origin looking down -Z
	viewProj := proj.Mul(view)

	frustum := NewFrustumFromMatrix(viewProj)

	// Verify planes are normalized
	for i, plane := range frustum.Planes {
		length := plane.Normal.Len()
		if math.Abs(length-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	// Create frustum from typical camera setup
	fov := math.Pi / 3 // 60 degrees
	aspect := 16.0 / 9.0
	near := 0.1
	far := 100.0

	proj := math3d.Perspective(fov, aspect, near, far)
	view := math3d.Identity()
	frustum := NewFrustumFromMatrix(proj.Mul(view))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, -1), true},
		{"center mid", math3d.V3(0, 0, -50), true},
		{"center far", math3d.V3(0, 0, -99), true},
		{"behind camera", math3d.V3(0, 0, 1), false},
		{"too far", math3d.V3(0, 0, -200), false},
		{"too close", math3d.V3(0, 0, -0.01), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := frustum.ContainsPoint(tc.point)
			if result != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, result, tc.expected)
			}
		})
	}
}

func TestCameraFrustumRotated(t *testing.T) {
	// Camera at origin looking along +X
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.SetPosition(math3d.Zero3())
	cam.LookAt(math3d.V3(10, 0, 0))
	frustum := cam.Frustum()

	if !frustum.ContainsPoint(math3d.V3(10, 0, 0)) {
		t.Error("point in front of rotated camera should be visible")
	}
	if frustum.ContainsPoint(math3d.V3(-10, 0, 0)) {
		t.Error("point behind rotated camera should not be visible")
	}
}

func TestFrustumClipSegment(t *testing.T) {
	proj := math3d.Perspective(math.Pi/2, 1, 1, 100)
	frustum := NewFrustumFromMatrix(proj)

	tests := []struct {
		name         string
		a, b         math3d.Vec3
		ok           bool
		wantA, wantB math3d.Vec3
	}{
		{"inside", math3d.V3(0, 0, -2), math3d.V3(0, 0, -5), true, math3d.V3(0, 0, -2), math3d.V3(0, 0, -5)},
		{"crosses near plane", math3d.V3(0, 0, 3), math3d.V3(0, 0, -5), true, math3d.V3(0, 0, -1), math3d.V3(0, 0, -5)},
		// 90 degree fov: the right plane at depth 4 is x = 4
		{"crosses right plane", math3d.V3(0, 0, -4), math3d.V3(8, 0, -4), true, math3d.V3(0, 0, -4), math3d.V3(4, 0, -4)},
		{"behind camera", math3d.V3(0, 0, 1), math3d.V3(1, 1, 5), false, math3d.Vec3{}, math3d.Vec3{}},
		{"outside corner", math3d.V3(-10, 0, -2), math3d.V3(0, 10, -2), false, math3d.Vec3{}, math3d.Vec3{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b, ok := frustum.ClipSegment(tc.a, tc.b)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if !a.ApproxEqual(tc.wantA, 1e-9) || !b.ApproxEqual(tc.wantB, 1e-9) {
				t.Errorf("clipped to %v-%v, want %v-%v", a, b, tc.wantA, tc.wantB)
			}
		})
	}
}

func TestDrawLine3DClipsAtNearPlane(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	fb := NewFramebuffer(40, 40)
	w := NewWireframe(cam, fb)

	// One end behind the camera
	w.DrawLine3D(math3d.V3(0, -1, 0), math3d.V3(0, -1, 10), ColorWhite)

	n := 0
	for _, p := range fb.Pixels {
		if p == ColorWhite {
			n++
		}
	}
	if n == 0 {
		t.Error("partially visible line not drawn")
	}
}

func BenchmarkFrustumClipSegment(b *testing.B) {
	f := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 1, 0.1, 100))
	p1, p2 := math3d.V3(-5, 1, 2), math3d.V3(5, -1, -20)
	for b.Loop() {
		f.ClipSegment(p1, p2)
	}
}

func TestDrawPointSkipsOutsideView(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	fb := NewFramebuffer(40, 40)
	w := NewWireframe(cam, fb)

	// the view is about 2.89 wide at z=0, so this cross would poke into it
	w.DrawPoint(math3d.V3(3, 0, 0), 1, ColorRed)
	for i, p := range fb.Pixels {
		if p != (Color{}) {
			t.Fatalf("pixel %d drawn for a point outside the view", i)
		}
	}

	w.DrawPoint(math3d.Zero3(), 0.5, ColorRed)
	if fb.GetPixel(20, 20) != ColorRed {
		t.Error("point at the center not drawn")
	}
}
