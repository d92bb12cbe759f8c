package view

import (
	"github.com/Yeicor/solveview/internal/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"math"
)

// defaultViewDirection is used when the camera sits exactly on the target, so there is no direction to keep.
var defaultViewDirection = v3.Vec{X: -1, Y: 1, Z: -1}

// FitToSelection behaves like a CAD "zoom to selection": it moves the camera (keeping its current viewing
// direction) and the controls' pivot so that every non-light node in selection is visible, with fitOffset as the
// margin multiplier (1 is a tight fit). Clipping planes and the maximum orbit distance follow the new distance.
//
// controls must be attached to cam. An empty selection leaves the camera on the (zero) center with an empty frustum.
// If the camera already sits on the target there is no direction to keep, so it backs away along
// defaultViewDirection instead of staying on the target.
func FitToSelection(cam *Camera, controls *OrbitControls, selection []scene.Node, fitOffset float64) {
	box, _ := scene.BoundingBox(selection) // The zero box when empty: no size and centered at the origin

	size := box.Size()
	center := box.Center()

	maxSize := math.Max(size.X, math.Max(size.Y, size.Z))
	fitHeightDistance := maxSize / (2 * math.Atan(math.Pi*cam.Fov/360))
	fitWidthDistance := fitHeightDistance / cam.Aspect
	distance := fitOffset * math.Max(fitHeightDistance, fitWidthDistance)

	viewDir := controls.Target.Sub(cam.Position)
	if viewDir == (v3.Vec{}) {
		viewDir = defaultViewDirection
	}
	direction := viewDir.Normalize().MulScalar(distance)
	controls.MaxDistance = distance * 10
	controls.Target = center

	cam.Near = distance / 100
	cam.Far = distance * 100
	cam.UpdateProjectionMatrix()
	cam.Position = controls.Target.Sub(direction)

	controls.Update()
}
