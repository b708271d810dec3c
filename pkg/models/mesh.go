// Package models builds exportable line models of orientation frames.
package models

import (
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/orientation"
)

// LineMesh is a set of line segments grouped into named parts. Each part
// becomes one glTF mesh with its own material.
type LineMesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Parts     []Part
	Materials []Material

	// Bounding box (see CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Part is a named group of segments sharing a material.
type Part struct {
	Name     string
	Segments [][2]int // Indices into LineMesh.Vertices
	Material int      // Index into LineMesh.Materials (-1 for no material)
}

// Material is the flat color of a part.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
}

// NewLineMesh creates an empty mesh.
func NewLineMesh(name string) *LineMesh {
	return &LineMesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Parts:    make([]Part, 0),
	}
}

// AddMaterial appends a material and returns its index.
func (m *LineMesh) AddMaterial(name string, rgba [4]float64) int {
	m.Materials = append(m.Materials, Material{Name: name, BaseColor: rgba})
	return len(m.Materials) - 1
}

// AddArrow appends a part made of a shaft from `from` to `to` and a
// four-fin head, and returns the part index.
func (m *LineMesh) AddArrow(name string, from, to math3d.Vec3, material int) int {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, from, to)
	part := Part{
		Name:     name,
		Segments: [][2]int{{base, base + 1}},
		Material: material,
	}

	shaft := to.Sub(from)
	if length := shaft.Len(); length > 0 {
		dir := shaft.Scale(1 / length)
		ref := math3d.V3(0, 0, 1)
		if dir.Cross(ref).LenSq() < 1e-6 {
			ref = math3d.V3(1, 0, 0)
		}
		side := dir.Cross(ref).Normalize()
		side2 := dir.Cross(side)

		head := length * 0.12
		back := to.Sub(dir.Scale(head))
		for _, s := range []math3d.Vec3{side, side.Negate(), side2, side2.Negate()} {
			m.Vertices = append(m.Vertices, back.Add(s.Scale(head*0.5)))
			part.Segments = append(part.Segments, [2]int{base + 1, len(m.Vertices) - 1})
		}
	}

	m.Parts = append(m.Parts, part)
	return len(m.Parts) - 1
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *LineMesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// SegmentCount returns the number of segments over all parts.
func (m *LineMesh) SegmentCount() int {
	n := 0
	for _, p := range m.Parts {
		n += len(p.Segments)
	}
	return n
}

// Part returns the part with the given name, or nil.
func (m *LineMesh) Part(name string) *Part {
	for i := range m.Parts {
		if m.Parts[i].Name == name {
			return &m.Parts[i]
		}
	}
	return nil
}

var axisRGBA = map[orientation.Axis][4]float64{
	orientation.Up:    {0.25, 1, 0.38, 1},
	orientation.Front: {0.31, 0.55, 1, 1},
	orientation.Right: {1, 0.25, 0.25, 1},
}

// FrameMesh builds a line model of a resolved reading in sensor
// coordinates. Each axis is an arrow of length scale. A non-zero measured
// vector is added as a "VECTOR" arrow scaled by the same factor relative
// to the up reading.
func FrameMesh(res orientation.Result, scale float64) *LineMesh {
	m := NewLineMesh("orientation")
	unit := res.Frame.Unit()

	for _, a := range orientation.Axes {
		mat := m.AddMaterial(a.String(), axisRGBA[a])
		m.AddArrow(a.String(), math3d.Zero3(), unit.Axis(a).Scale(scale), mat)
	}

	if up := res.Frame.Up.Len(); up > 0 && !res.Vector.IsZero() {
		mat := m.AddMaterial("VECTOR", [4]float64{1, 0.86, 0, 1})
		m.AddArrow("VECTOR", math3d.Zero3(), res.Vector.Scale(scale/up), mat)
	}

	m.CalculateBounds()
	return m
}
