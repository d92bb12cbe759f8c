package scene

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BoundingBox returns the world-space union of the bounds of every non-light node in selection.
// ok is false when nothing in the selection has geometry (the box is then the zero box).
func BoundingBox(selection []Node) (box sdf.Box3, ok bool) {
	Traverse(selection, func(n Node, world sdf.M44) bool {
		switch n := n.(type) {
		case *Light:
			return false
		case *Mesh:
			for _, tri := range n.Triangles {
				for _, v := range tri.V {
					box, ok = includePoint(box, ok, world.MulPosition(v))
				}
			}
		case *Group:
			// Children are visited with the group transform applied
		}
		return true
	})
	return box, ok
}

// MeshBoxes returns one world-space box per non-empty mesh, in traversal order.
func MeshBoxes(nodes []Node) []sdf.Box3 {
	var res []sdf.Box3
	Traverse(nodes, func(n Node, world sdf.M44) bool {
		if m, isMesh := n.(*Mesh); isMesh {
			if bb, ok := BoundingBox([]Node{&Group{Transform: world, Children: []Node{m}}}); ok {
				res = append(res, bb)
			}
		}
		return true
	})
	return res
}

func includePoint(box sdf.Box3, ok bool, p v3.Vec) (sdf.Box3, bool) {
	if !ok {
		return sdf.Box3{Min: p, Max: p}, true
	}
	return sdf.Box3{Min: box.Min.Min(p), Max: box.Max.Max(p)}, true
}
