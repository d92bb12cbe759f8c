// Package ui is an interactive viewer for precomputed solve results: it shows the meshes the server computed for
// the current inputs, lets the user edit those inputs and orbit the camera, and zooms to the geometry on load.
package ui

import (
	"github.com/Yeicor/solveview/internal/solve"
)

// Show runs a viewer for cfg until the window is closed.
func Show(cfg *solve.Config, opts ...Option) error {
	v, err := NewViewer(cfg, opts...)
	if err != nil {
		return err
	}
	return v.Run()
}
