package view

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"math"
)

// minPolar keeps the camera away from the poles, where the up vector would be parallel to the view direction
const minPolar = 1e-5

// OrbitControls orbits a camera around Target. Rotate, Pan and Dolly only record deltas: they are applied by Update.
type OrbitControls struct {
	Camera      *Camera
	Target      v3.Vec
	MinDistance float64
	MaxDistance float64

	azimuthDelta, polarDelta float64
	panDelta                 v3.Vec
	scale                    float64
}

// NewOrbitControls attaches new controls to camera, pivoting around the origin.
func NewOrbitControls(camera *Camera) *OrbitControls {
	c := &OrbitControls{
		Camera:      camera,
		MaxDistance: math.Inf(1),
		scale:       1,
	}
	c.Update()
	return c
}

// Rotate orbits around the target: azimuth is around the camera's up axis and polar moves towards it (radians).
func (c *OrbitControls) Rotate(azimuth, polar float64) {
	c.azimuthDelta += azimuth
	c.polarDelta += polar
}

// Pan moves both the target and the camera by the given screen-relative amounts, in units of the current distance.
func (c *OrbitControls) Pan(right, up float64) {
	offset := c.Camera.Position.Sub(c.Target)
	dist := offset.Length()
	if dist == 0 {
		return
	}
	forward := offset.DivScalar(-dist)
	rightDir := forward.Cross(c.Camera.Up)
	if rightDir.Length() == 0 {
		return
	}
	rightDir = rightDir.Normalize()
	upDir := rightDir.Cross(forward).Normalize()
	c.panDelta = c.panDelta.Add(rightDir.MulScalar(right * dist)).Add(upDir.MulScalar(up * dist))
}

// Dolly scales the distance to the target (< 1 moves closer).
func (c *OrbitControls) Dolly(scale float64) {
	if scale > 0 {
		c.scale *= scale
	}
}

// Update applies pending deltas and distance limits, and orients the camera towards the target.
// Without pending changes, the camera position is left untouched.
func (c *OrbitControls) Update() {
	cam := c.Camera
	if c.panDelta != (v3.Vec{}) {
		c.Target = c.Target.Add(c.panDelta)
		cam.Position = cam.Position.Add(c.panDelta)
	}
	offset := cam.Position.Sub(c.Target)
	radius := offset.Length()
	newRadius := math.Max(c.MinDistance, math.Min(c.MaxDistance, radius*c.scale))
	rotating := c.azimuthDelta != 0 || c.polarDelta != 0
	if radius > 0 && (rotating || newRadius != radius) {
		// Spherical coordinates around the up axis (Z+ for the default camera)
		basisUp := cam.Up.Normalize()
		basisX, basisY := orthonormalBasis(basisUp)
		x, y, z := offset.Dot(basisX), offset.Dot(basisY), offset.Dot(basisUp)
		theta := math.Atan2(y, x) + c.azimuthDelta
		phi := math.Acos(math.Max(-1, math.Min(1, z/radius))) - c.polarDelta
		phi = math.Max(minPolar, math.Min(math.Pi-minPolar, phi))
		sinPhi := math.Sin(phi)
		offset = basisX.MulScalar(newRadius * sinPhi * math.Cos(theta)).
			Add(basisY.MulScalar(newRadius * sinPhi * math.Sin(theta))).
			Add(basisUp.MulScalar(newRadius * math.Cos(phi)))
		cam.Position = c.Target.Add(offset)
	}
	cam.LookAt(c.Target)
	c.azimuthDelta, c.polarDelta = 0, 0
	c.panDelta = v3.Vec{}
	c.scale = 1
}

// Distance is the current distance between the camera and the target.
func (c *OrbitControls) Distance() float64 {
	return c.Camera.Position.Sub(c.Target).Length()
}

// orthonormalBasis returns two unit vectors that together with up form a right-handed basis.
// For Z+ it returns X+ and Y+.
func orthonormalBasis(up v3.Vec) (v3.Vec, v3.Vec) {
	ref := v3.Vec{X: 1}
	if math.Abs(up.X) > 0.9 {
		ref = v3.Vec{Y: 1}
	}
	y := up.Cross(ref).Normalize()
	x := y.Cross(up).Normalize()
	return x, y
}
