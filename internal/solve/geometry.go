package solve

import (
	"encoding/json"
	"fmt"
	"github.com/Yeicor/solveview/internal/scene"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"log"
)

// Data tree item types that are understood
const (
	TypeString = "System.String"
	TypeMesh   = "Rhino.Geometry.Mesh"
)

// meshData is the encoding of a TypeMesh item
type meshData struct {
	Vertices [][3]float64 `json:"vertices"`
	Faces    [][]int      `json:"faces"` // Triangles or quads
}

// DecodeItem converts a data tree item into a scene node. It returns nil (and no error) for items that carry no
// displayable geometry, like strings or unknown object types.
func DecodeItem(item Item) (scene.Node, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(item.Data), &data); err != nil {
		return nil, fmt.Errorf("item %s: %w", item.Type, err)
	}
	if item.Type == TypeString {
		return nil, nil // Compressed meshes are sent as strings, which are not supported
	}
	if _, isObject := data.(map[string]interface{}); !isObject {
		return nil, nil
	}
	switch item.Type {
	case TypeMesh:
		var md meshData
		if err := json.Unmarshal([]byte(item.Data), &md); err != nil {
			return nil, fmt.Errorf("item %s: %w", item.Type, err)
		}
		m, err := md.toMesh()
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", item.Type, err)
		}
		return m, nil
	default:
		return nil, nil
	}
}

func (md *meshData) toMesh() (*scene.Mesh, error) {
	vertex := func(i int) (v3.Vec, error) {
		if i < 0 || i >= len(md.Vertices) {
			return v3.Vec{}, fmt.Errorf("mesh: vertex index %d out of range (%d vertices)", i, len(md.Vertices))
		}
		v := md.Vertices[i]
		return v3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
	}
	m := &scene.Mesh{Triangles: make([]*sdf.Triangle3, 0, len(md.Faces))}
	for fi, face := range md.Faces {
		if len(face) != 3 && len(face) != 4 {
			return nil, fmt.Errorf("mesh: face %d has %d vertices", fi, len(face))
		}
		var vs [4]v3.Vec
		for i, idx := range face {
			v, err := vertex(idx)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		m.Triangles = append(m.Triangles, &sdf.Triangle3{V: [3]v3.Vec{vs[0], vs[1], vs[2]}})
		if len(face) == 4 {
			m.Triangles = append(m.Triangles, &sdf.Triangle3{V: [3]v3.Vec{vs[0], vs[2], vs[3]}})
		}
	}
	return m, nil
}

// Decode converts all displayable items of a response into a single group. Items that fail to decode are logged
// and skipped. It returns ErrNoObjects if nothing could be decoded.
func Decode(res *Response) (*scene.Group, error) {
	group := scene.NewGroup("result")
	for i, item := range res.Items() {
		node, err := DecodeItem(item)
		if err != nil {
			log.Println("[Viewer] Skipping item", i, ":", err)
			continue
		}
		if node == nil {
			continue
		}
		if m, ok := node.(*scene.Mesh); ok && m.Name == "" {
			m.Name = fmt.Sprintf("%s#%d", item.Type, i)
		}
		group.Children = append(group.Children, node)
	}
	if len(group.Children) == 0 {
		return nil, ErrNoObjects
	}
	return group, nil
}
