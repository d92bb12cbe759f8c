// Command solveview shows the precomputed results of a solve server and lets you explore its inputs.
//
// DESKTOP: go run ./cmd/solveview -config cmd/solveview/b_ring.yaml
package main

import (
	"flag"
	ui "github.com/Yeicor/solveview"
	"github.com/Yeicor/solveview/internal/solve"
	"log"
	"math"
)

var (
	configPath = flag.String("config", "", "YAML configuration file (defaults are used if empty)")
	initPath   = flag.String("init", "", "Write the default configuration to this file and exit")
	server     = flag.String("server", "", "Override the solve server base URL")
	fitOffset  = flag.Float64("fit-offset", 0, "Override the zoom margin multiplier (1 is a tight fit)")
	watch      = flag.Bool("watch", false, "Reload the displayed result when the server reports a change")
	outDir     = flag.String("out", ".", "Directory where downloaded STL files are written")
	resInv     = flag.Int("resinv", 1, "Screen pixels per rendered pixel (per axis)")
	smooth     = flag.Float64("smooth", 30, "Maximum angle between smoothed faces, in degrees")
	fov        = flag.Float64("fov", 45, "Vertical field of view of the camera, in degrees")
)

func main() {
	flag.Parse()

	if *initPath != "" {
		if err := solve.DefaultConfig().Save(*initPath); err != nil {
			log.Fatalf("error: %s\n", err)
		}
		log.Println("[Viewer] Wrote default configuration to", *initPath)
		return
	}

	cfg := solve.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = solve.LoadConfig(*configPath); err != nil {
			log.Fatalf("error: %s\n", err)
		}
	}
	if *server != "" {
		cfg.Server = *server
	}

	err := ui.Show(cfg,
		ui.OptFitOffset(*fitOffset), // Ignored unless positive
		ui.OptDownloadDir(*outDir),
		ui.OptResInv(*resInv),
		ui.OptSmoothNormals(*smooth*math.Pi/180),
		ui.OptCamFov(*fov),
		ui.OptWatch(cfg.Watch || *watch),
	)
	if err != nil {
		log.Fatalf("error: %s\n", err)
	}
}
