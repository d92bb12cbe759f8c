package scene

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"testing"
)

func cube(center v3.Vec, half float64) *Mesh {
	lo, hi := center.SubScalar(half), center.AddScalar(half)
	return &Mesh{Name: "cube", Triangles: []*sdf.Triangle3{
		{V: [3]v3.Vec{lo, {X: hi.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z}}},
		{V: [3]v3.Vec{hi, {X: lo.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: lo.Y, Z: hi.Z}}},
	}}
}

func TestBoundingBoxUnion(t *testing.T) {
	bb, ok := BoundingBox([]Node{cube(v3.Vec{}, 1), cube(v3.Vec{X: 4}, 1)})
	if !ok {
		t.Fatalf("expected a non-empty box")
	}
	if bb.Min != (v3.Vec{X: -1, Y: -1, Z: -1}) || bb.Max != (v3.Vec{X: 5, Y: 1, Z: 1}) {
		t.Fatalf("unexpected box %v", bb)
	}
}

func TestBoundingBoxSkipsLights(t *testing.T) {
	light := &Light{Kind: Directional, Direction: v3.Vec{Z: -1}}
	bb, ok := BoundingBox([]Node{light, cube(v3.Vec{}, 1)})
	if !ok || bb.Size() != (v3.Vec{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("unexpected box %v (ok=%t)", bb, ok)
	}
	if _, ok = BoundingBox([]Node{light, NewGroup("empty")}); ok {
		t.Fatalf("lights and empty groups must produce an empty box")
	}
}

func TestBoundingBoxGroupTransform(t *testing.T) {
	g := NewGroup("moved", cube(v3.Vec{}, 1), NewGroup("nested", cube(v3.Vec{}, 1)))
	g.Transform = sdf.Translate3d(v3.Vec{Z: 10})
	bb, ok := BoundingBox([]Node{g})
	if !ok || bb.Center() != (v3.Vec{Z: 10}) {
		t.Fatalf("unexpected box %v (ok=%t)", bb, ok)
	}
	// The zero transform is the identity
	bb, _ = BoundingBox([]Node{&Group{Children: []Node{cube(v3.Vec{X: 3}, 1)}}})
	if bb.Center() != (v3.Vec{X: 3}) {
		t.Fatalf("unexpected box %v for zero transform", bb)
	}
}

func TestReplaceGeometryKeepsLights(t *testing.T) {
	s := NewDefault()
	s.Add(cube(v3.Vec{}, 1))
	v := s.Version()
	replacement := NewGroup("result", cube(v3.Vec{X: 1}, 1))
	s.ReplaceGeometry(replacement)
	if s.Version() == v {
		t.Fatalf("version must change on replacement")
	}
	children := s.Children()
	if len(children) != 3 || len(s.Lights()) != 2 {
		t.Fatalf("expected 2 lights + 1 group, got %d nodes", len(children))
	}
	if children[2] != Node(replacement) {
		t.Fatalf("replacement must be the last child")
	}
}

func TestWorldTriangles(t *testing.T) {
	g := NewGroup("moved", cube(v3.Vec{}, 1))
	g.Transform = sdf.Translate3d(v3.Vec{X: 1})
	tris := WorldTriangles([]Node{&Light{}, g})
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(tris))
	}
	if tris[0].V[0] != (v3.Vec{X: 0, Y: -1, Z: -1}) {
		t.Fatalf("triangle not transformed: %v", tris[0].V[0])
	}
	if len(MeshBoxes([]Node{g, cube(v3.Vec{}, 2)})) != 2 {
		t.Fatalf("expected one box per mesh")
	}
}
