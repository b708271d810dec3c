package models

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/orientation"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func goldenResult(t *testing.T) orientation.Result {
	t.Helper()
	res, err := orientation.Resolve(orientation.Reading{
		Up:      math3d.V3(-16, -15, -975),
		UpFront: math3d.V3(-185, 300, -910),
		Vector:  math3d.V3(-500, 600, 400),
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSaveLoadGLB(t *testing.T) {
	mesh := FrameMesh(goldenResult(t), 2)
	path := filepath.Join(t.TempDir(), "frame.glb")

	if err := SaveGLB(mesh, path); err != nil {
		t.Fatalf("SaveGLB: %v", err)
	}

	loaded, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if loaded.Name != "frame" {
		t.Errorf("Name = %q, want %q", loaded.Name, "frame")
	}
	if len(loaded.Parts) != len(mesh.Parts) {
		t.Fatalf("got %d parts, want %d", len(loaded.Parts), len(mesh.Parts))
	}
	if loaded.SegmentCount() != mesh.SegmentCount() {
		t.Errorf("got %d segments, want %d", loaded.SegmentCount(), mesh.SegmentCount())
	}
	if len(loaded.Materials) != len(mesh.Materials) {
		t.Fatalf("got %d materials, want %d", len(loaded.Materials), len(mesh.Materials))
	}

	for i, want := range mesh.Parts {
		got := loaded.Parts[i]
		if got.Name != want.Name {
			t.Errorf("part %d name = %q, want %q", i, got.Name, want.Name)
		}
		if got.Material != want.Material {
			t.Errorf("part %q material = %d, want %d", got.Name, got.Material, want.Material)
		}
		if loaded.Materials[got.Material].BaseColor != mesh.Materials[want.Material].BaseColor {
			t.Errorf("part %q color = %v, want %v", got.Name,
				loaded.Materials[got.Material].BaseColor, mesh.Materials[want.Material].BaseColor)
		}

		// float32 storage
		for j, seg := range want.Segments {
			for k := range 2 {
				a := mesh.Vertices[seg[k]]
				b := loaded.Vertices[got.Segments[j][k]]
				if !a.ApproxEqual(b, 1e-5) {
					t.Errorf("part %q segment %d end %d = %v, want %v", got.Name, j, k, b, a)
				}
			}
		}
	}
}

func TestDocumentBadIndex(t *testing.T) {
	mesh := NewLineMesh("bad")
	mesh.Vertices = append(mesh.Vertices, math3d.Zero3())
	mesh.Parts = append(mesh.Parts, Part{Name: "x", Segments: [][2]int{{0, 3}}, Material: -1})

	if _, err := Document(mesh); err == nil {
		t.Error("Expected error for out-of-range vertex index")
	}
}

func TestDocumentStructure(t *testing.T) {
	mesh := FrameMesh(goldenResult(t), 1)
	doc, err := Document(mesh)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Meshes) != 4 || len(doc.Nodes) != 4 {
		t.Fatalf("got %d meshes / %d nodes, want 4 each", len(doc.Meshes), len(doc.Nodes))
	}
	if got := len(doc.Scenes[0].Nodes); got != 4 {
		t.Errorf("scene has %d nodes, want 4", got)
	}

	// An arrow is a shaft plus four fins sharing the tip: 6 vertices.
	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes["POSITION"]]
	if pos.Count != 6 {
		t.Errorf("arrow has %d vertices, want 6", pos.Count)
	}
	if idx := doc.Accessors[*prim.Indices]; idx.Count != 10 {
		t.Errorf("arrow has %d indices, want 10", idx.Count)
	}
}

func TestFrameMesh(t *testing.T) {
	res := goldenResult(t)
	mesh := FrameMesh(res, 2)

	for _, a := range orientation.Axes {
		p := mesh.Part(a.String())
		if p == nil {
			t.Fatalf("missing part %s", a)
		}
		if len(p.Segments) != 5 {
			t.Errorf("%s has %d segments, want 5", a, len(p.Segments))
		}
		tip := mesh.Vertices[p.Segments[0][1]]
		if math.Abs(tip.Len()-2) > 1e-9 {
			t.Errorf("%s length = %v, want 2", a, tip.Len())
		}
		want := res.Frame.Unit().Axis(a).Scale(2)
		if !tip.ApproxEqual(want, 1e-9) {
			t.Errorf("%s tip = %v, want %v", a, tip, want)
		}
	}

	v := mesh.Part("VECTOR")
	if v == nil {
		t.Fatal("missing VECTOR part")
	}
	tip := mesh.Vertices[v.Segments[0][1]]
	want := res.Vector.Scale(2 / res.Frame.Up.Len())
	if !tip.ApproxEqual(want, 1e-9) {
		t.Errorf("vector tip = %v, want %v", tip, want)
	}

	for _, p := range mesh.Vertices {
		if p.X < mesh.BoundsMin.X || p.Y < mesh.BoundsMin.Y || p.Z < mesh.BoundsMin.Z ||
			p.X > mesh.BoundsMax.X || p.Y > mesh.BoundsMax.Y || p.Z > mesh.BoundsMax.Z {
			t.Errorf("vertex %v outside bounds [%v, %v]", p, mesh.BoundsMin, mesh.BoundsMax)
		}
	}
}

func TestFrameMeshNoVector(t *testing.T) {
	res := goldenResult(t)
	res.Vector = math3d.Zero3()

	mesh := FrameMesh(res, 1)
	if mesh.Part("VECTOR") != nil {
		t.Error("zero vector should not produce a VECTOR part")
	}
	if len(mesh.Parts) != 3 {
		t.Errorf("got %d parts, want 3", len(mesh.Parts))
	}
}

func TestAddArrowZeroLength(t *testing.T) {
	mesh := NewLineMesh("test")
	i := mesh.AddArrow("dot", math3d.V3(1, 1, 1), math3d.V3(1, 1, 1), -1)
	if got := len(mesh.Parts[i].Segments); got != 1 {
		t.Errorf("zero-length arrow has %d segments, want 1", got)
	}
}
