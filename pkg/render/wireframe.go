package render

import (
	"github.com/taigrr/orient/pkg/math3d"
)

// Wireframe renders 3D wireframe objects. The camera must not move while a
// Wireframe is in use.
type Wireframe struct {
	camera  *Camera
	frustum Frustum
	fb      *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera:  camera,
		frustum: camera.Frustum(),
		fb:      fb,
	}
}

// DrawLine3D draws a line in 3D space, clipped to the view frustum.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	p1, p2, ok := w.frustum.ClipSegment(p1, p2)
	if !ok {
		return
	}

	x1, y1, vis1 := w.camera.project(p1, w.fb.Width, w.fb.Height)
	x2, y2, vis2 := w.camera.project(p2, w.fb.Width, w.fb.Height)
	if !vis1 || !vis2 {
		return
	}

	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawArrow draws a shaft from `from` to `to` with a four-fin head at `to`.
func (w *Wireframe) DrawArrow(from, to math3d.Vec3, color Color) {
	w.DrawLine3D(from, to, color)

	shaft := to.Sub(from)
	length := shaft.Len()
	if length == 0 {
		return
	}
	dir := shaft.Scale(1 / length)

	ref := math3d.V3(0, 1, 0)
	if dir.Cross(ref).LenSq() < 1e-6 {
		ref = math3d.V3(1, 0, 0)
	}
	side := dir.Cross(ref).Normalize()
	side2 := dir.Cross(side)

	head := length * 0.12
	base := to.Sub(dir.Scale(head))
	for _, s := range []math3d.Vec3{side, side.Negate(), side2, side2.Negate()} {
		w.DrawLine3D(to, base.Add(s.Scale(head*0.5)), color)
	}
}

// DrawTransformedCube draws a wireframe cube with a transformation matrix.
// Edges touching the local -Z face use front instead of color so the
// facing of the box is visible.
func (w *Wireframe) DrawTransformedCube(transform math3d.Mat4, size float64, color, front Color) {
	half := size / 2

	// Local vertices (centered at origin)
	localVerts := [8]math3d.Vec3{
		{X: -half, Y: -half, Z: -half},
		{X: half, Y: -half, Z: -half},
		{X: half, Y: half, Z: -half},
		{X: -half, Y: half, Z: -half},
		{X: -half, Y: -half, Z: half},
		{X: half, Y: -half, Z: half},
		{X: half, Y: half, Z: half},
		{X: -half, Y: half, Z: half},
	}

	var worldVerts [8]math3d.Vec3
	for i, v := range localVerts {
		worldVerts[i] = transform.MulVec3(v)
	}

	edges := [][2]int{
		{4, 5},
		{5, 6},
		{6, 7},
		{7, 4},
		{0, 4},
		{1, 5},
		{2, 6},
		{3, 7},
		// -Z face last so it stays on top
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 0},
	}

	for i, edge := range edges {
		c := color
		if i >= 8 {
			c = front
		}
		w.DrawLine3D(worldVerts[edge[0]], worldVerts[edge[1]], c)
	}
}

// DrawGrid draws a grid on the XZ plane at y=level.
func (w *Wireframe) DrawGrid(size, step, level float64, color Color) {
	half := size / 2
	for x := -half; x <= half+1e-9; x += step {
		w.DrawLine3D(math3d.V3(x, level, -half), math3d.V3(x, level, half), color)
	}
	for z := -half; z <= half+1e-9; z += step {
		w.DrawLine3D(math3d.V3(-half, level, z), math3d.V3(half, level, z), color)
	}
}

// DrawPoint draws a point as a small cross. Points outside the view are
// skipped.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	if !w.frustum.ContainsPoint(pos) {
		return
	}
	halfSize := size / 2
	w.DrawLine3D(
		math3d.V3(pos.X-halfSize, pos.Y, pos.Z),
		math3d.V3(pos.X+halfSize, pos.Y, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y-halfSize, pos.Z),
		math3d.V3(pos.X, pos.Y+halfSize, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y, pos.Z-halfSize),
		math3d.V3(pos.X, pos.Y, pos.Z+halfSize),
		color,
	)
}
