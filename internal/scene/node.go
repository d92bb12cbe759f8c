package scene

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"image/color"
)

// Node is a scene graph node. The only implementations are *Light, *Mesh and *Group, and callers
// must inspect them with a type switch.
type Node interface {
	node()
}

// LightKind tells how a light contributes to shading.
type LightKind int

const (
	Directional LightKind = iota
	Ambient
)

// Light never contributes to bounds.
type Light struct {
	Name      string
	Kind      LightKind
	Color     color.RGBA
	Intensity float64
	Direction v3.Vec // Only for Directional: the direction the light travels to
}

// Mesh is a triangle soup in its parent's space.
type Mesh struct {
	Name      string
	Triangles []*sdf.Triangle3
}

// Group applies Transform to all of its Children. The zero Transform means identity.
type Group struct {
	Name      string
	Transform sdf.M44
	Children  []Node
}

func (*Light) node() {}
func (*Mesh) node()  {}
func (*Group) node() {}

// NewGroup builds a group with the identity transform.
func NewGroup(name string, children ...Node) *Group {
	return &Group{Name: name, Transform: sdf.Identity3d(), Children: children}
}

// matrix returns the effective transform, mapping the zero value to the identity
func (g *Group) matrix() sdf.M44 {
	if g.Transform == (sdf.M44{}) {
		return sdf.Identity3d()
	}
	return g.Transform
}

// Traverse calls fn for every node in pre-order, with the accumulated world transform of the node's parent.
// Returning false from fn skips the node's children.
func Traverse(nodes []Node, fn func(n Node, world sdf.M44) bool) {
	traverse(nodes, sdf.Identity3d(), fn)
}

func traverse(nodes []Node, world sdf.M44, fn func(n Node, world sdf.M44) bool) {
	for _, n := range nodes {
		if !fn(n, world) {
			continue
		}
		if g, ok := n.(*Group); ok {
			traverse(g.Children, world.Mul(g.matrix()), fn)
		}
	}
}

// WorldTriangles flattens all meshes below nodes into world-space triangles (lights are ignored).
func WorldTriangles(nodes []Node) []*sdf.Triangle3 {
	var res []*sdf.Triangle3
	Traverse(nodes, func(n Node, world sdf.M44) bool {
		if m, ok := n.(*Mesh); ok {
			identity := world == sdf.Identity3d()
			for _, tri := range m.Triangles {
				if identity {
					res = append(res, tri)
					continue
				}
				res = append(res, &sdf.Triangle3{V: [3]v3.Vec{
					world.MulPosition(tri.V[0]),
					world.MulPosition(tri.V[1]),
					world.MulPosition(tri.V[2]),
				}})
			}
		}
		return true
	})
	return res
}
