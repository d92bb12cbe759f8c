package ui

import (
	"errors"
	"github.com/Yeicor/solveview/internal/scene"
	"github.com/deadsy/sdfx/render"
	"log"
	"path/filepath"
	"strings"
)

var errDownloadDisabled = errors.New("nothing loaded yet")

// Download saves the displayed geometry as an STL file named after the definition, returning its path.
func (v *Viewer) Download() (string, error) {
	v.stateLock.RLock()
	enabled := v.downloadEnabled
	tris := scene.WorldTriangles(v.scene.Children())
	name := v.cfg.Definition
	if name == "" {
		name = v.filename
	}
	v.stateLock.RUnlock()
	if !enabled {
		return "", errDownloadDisabled
	}
	path := filepath.Join(v.downloadDir, strings.TrimSuffix(filepath.Base(name), ".gh")+".stl")
	if err := render.SaveSTL(path, tris); err != nil {
		return "", err
	}
	log.Println("[Viewer] Saved", len(tris), "triangles to", path)
	return path, nil
}
