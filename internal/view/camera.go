package view

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
)

// Camera is a perspective camera. Field changes take effect on the next UpdateProjectionMatrix (projection)
// or LookAt (orientation).
type Camera struct {
	Fov      float64 // Vertical field of view, in degrees
	Aspect   float64 // Width / height
	Near     float64
	Far      float64
	Position v3.Vec
	Up       v3.Vec

	lookAt     v3.Vec
	projection fauxgl.Matrix
}

// NewCamera builds a Z-up camera at (1, -1, 1) looking at the origin, like a perspective view in a CAD tool.
func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Position: v3.Vec{X: 1, Y: -1, Z: 1},
		Up:       v3.Vec{Z: 1},
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection from Fov, Aspect, Near and Far.
func (c *Camera) UpdateProjectionMatrix() {
	c.projection = fauxgl.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix is the matrix computed by the last UpdateProjectionMatrix.
func (c *Camera) ProjectionMatrix() fauxgl.Matrix {
	return c.projection
}

// LookAt orients the camera towards target.
func (c *Camera) LookAt(target v3.Vec) {
	c.lookAt = target
}

// Target is the point the camera is oriented towards.
func (c *Camera) Target() v3.Vec {
	return c.lookAt
}

// Matrix is the full world to clip space transform.
func (c *Camera) Matrix() fauxgl.Matrix {
	return c.projection.Mul(fauxgl.LookAt(toFauxgl(c.Position), toFauxgl(c.lookAt), toFauxgl(c.Up)))
}

// Degenerate reports whether the frustum is empty (nothing can be rendered with this camera).
func (c *Camera) Degenerate() bool {
	return !(c.Far > c.Near) || c.Near <= 0 || c.Position == c.lookAt
}

func toFauxgl(v v3.Vec) fauxgl.Vector {
	return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
