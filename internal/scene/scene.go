package scene

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"image/color"
)

// Scene is the root of the scene graph. It is not safe for concurrent use.
type Scene struct {
	Background color.RGBA
	children   []Node
	version    uint64 // Bumped on every structural change (for render caches)
}

// New returns an empty scene with a white background.
func New() *Scene {
	return &Scene{Background: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
}

// NewDefault returns a scene with the default lighting rig: a directional light and an ambient light.
func NewDefault() *Scene {
	s := New()
	s.Add(&Light{
		Name:      "directional",
		Kind:      Directional,
		Color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Intensity: 2,
		Direction: v3.Vec{X: -1, Y: 1, Z: -1}.Normalize(),
	})
	s.Add(&Light{
		Name:      "ambient",
		Kind:      Ambient,
		Color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Intensity: 1,
	})
	return s
}

// Add appends nodes to the root.
func (s *Scene) Add(nodes ...Node) {
	s.children = append(s.children, nodes...)
	s.version++
}

// Children returns a copy of the root nodes, in insertion order.
func (s *Scene) Children() []Node {
	res := make([]Node, len(s.children))
	copy(res, s.children)
	return res
}

// ReplaceGeometry removes every root node that is not a light and then adds nodes, in a single step.
func (s *Scene) ReplaceGeometry(nodes ...Node) {
	kept := s.children[:0]
	for _, ch := range s.children {
		if _, isLight := ch.(*Light); isLight {
			kept = append(kept, ch)
		}
	}
	for i := len(kept); i < len(s.children); i++ {
		s.children[i] = nil
	}
	s.children = append(kept, nodes...)
	s.version++
}

// Lights returns the root lights.
func (s *Scene) Lights() []*Light {
	var res []*Light
	for _, ch := range s.children {
		if l, ok := ch.(*Light); ok {
			res = append(res, l)
		}
	}
	return res
}

// Version changes whenever the scene structure changes.
func (s *Scene) Version() uint64 {
	return s.version
}
