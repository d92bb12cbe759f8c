package ui

import (
	"context"
	"github.com/Yeicor/solveview/internal/render"
	"github.com/Yeicor/solveview/internal/scene"
	"github.com/Yeicor/solveview/internal/solve"
	"github.com/Yeicor/solveview/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/subchen/go-trylock/v2"
	"image"
	"image/color"
	"sync"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// Option configures a Viewer.
type Option func(v *Viewer)

// OptFitOffset overrides the margin multiplier used when zooming to the loaded geometry (1 is a tight fit).
func OptFitOffset(fitOffset float64) Option {
	return func(v *Viewer) {
		if fitOffset > 0 {
			v.fitOffset = fitOffset
		}
	}
}

// OptCamFov sets the vertical Field Of View of the camera, in degrees (default 45º).
func OptCamFov(fov float64) Option {
	return func(v *Viewer) {
		v.camera.Fov = fov
		v.camera.UpdateProjectionMatrix()
	}
}

// OptColors changes the surface and background colors.
func OptColors(surface, background color.RGBA) Option {
	return func(v *Viewer) {
		v.renderer.SurfaceColor = surface
		v.scene.Background = background
	}
}

// OptSmoothNormals sets the maximum angle (in radians) between faces whose normals are smoothed together.
func OptSmoothNormals(radians float64) Option {
	return func(v *Viewer) {
		v.renderer.SmoothNormals = radians
	}
}

// OptResInv sets how many screen pixels (per axis) share a rendered pixel (default 1).
func OptResInv(resInv int) Option {
	return func(v *Viewer) {
		if resInv >= 1 {
			v.resInv = resInv
		}
	}
}

// OptWatch enables or disables reloading the displayed result when the server notifies a change.
func OptWatch(enabled bool) Option {
	return func(v *Viewer) {
		v.watch = enabled
	}
}

// OptDownloadDir sets the directory where downloads are written (default: working directory).
func OptDownloadDir(dir string) Option {
	return func(v *Viewer) {
		v.downloadDir = dir
	}
}

//-----------------------------------------------------------------------------
// VIEWER
//-----------------------------------------------------------------------------

// Viewer displays precomputed solve results and recomputes them when inputs change.
// All the mutable application state lives here and is shared by the game loop, the compute cycle and the renderer.
type Viewer struct {
	cfg         *solve.Config
	client      *solve.Client
	fitOffset   float64
	watch       bool
	downloadDir string

	ctx    context.Context
	cancel context.CancelFunc

	// State (protected by stateLock)
	stateLock       *sync.RWMutex
	scene           *scene.Scene
	camera          *view.Camera
	controls        *view.OrbitControls
	inputs          solve.Inputs
	selectedInput   int
	pendingCommit   bool   // A range input changed and will be committed when the key is released
	filename        string // The result currently displayed
	initialLoaded   bool
	downloadEnabled bool
	colorMode       int
	drawBbs         bool
	resInv          int
	screenSize      image.Point
	status          string // Last user-facing message

	// Compute cycle
	computeLock       trylock.TryLocker // Held while a result is being fetched and loaded
	computeCancelLock sync.Mutex
	prevComputeCancel context.CancelFunc

	// Rendering
	renderer         *render.Renderer
	renderingLock    trylock.TryLocker // Held while rendering
	renderRequests   chan struct{}
	cachedRenderLock *sync.RWMutex
	cachedRender     *image.NRGBA
	cachedRenderSeq  uint64
	drawnSeq         uint64
	screenImg        *ebiten.Image

	// Interaction
	dragging bool
	dragFrom image.Point
}

// NewViewer builds a viewer for the given configuration. Nothing is fetched until Run or Recompute is called.
func NewViewer(cfg *solve.Config, opts ...Option) (*Viewer, error) {
	client, err := solve.NewClient(cfg.Server, cfg.SolvePath)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	v := &Viewer{
		cfg:               cfg,
		client:            client,
		fitOffset:         cfg.FitOffset,
		watch:             cfg.Watch,
		downloadDir:       ".",
		ctx:               ctx,
		cancel:            cancel,
		stateLock:         &sync.RWMutex{},
		scene:             scene.NewDefault(),
		inputs:            append(solve.Inputs(nil), cfg.Inputs...),
		resInv:            1,
		screenSize:        image.Point{X: 1280, Y: 720},
		computeLock:       trylock.New(),
		prevComputeCancel: func() {},
		renderer:          render.NewRenderer(),
		renderingLock:     trylock.New(),
		renderRequests:    make(chan struct{}, 1),
		cachedRenderLock:  &sync.RWMutex{},
	}
	v.camera = view.NewCamera(45, float64(v.screenSize.X)/float64(v.screenSize.Y), 1, 1000)
	v.controls = view.NewOrbitControls(v.camera)
	if v.fitOffset <= 0 {
		v.fitOffset = solve.DefaultConfig().FitOffset
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Close stops all background work.
func (v *Viewer) Close() {
	v.cancel()
}

// Inputs returns a copy of the current input values.
func (v *Viewer) Inputs() solve.Inputs {
	v.stateLock.RLock()
	defer v.stateLock.RUnlock()
	return append(solve.Inputs(nil), v.inputs...)
}

// SetInput changes the value of the input with the given id (Checked for checkboxes) and recomputes.
func (v *Viewer) SetInput(id string, value float64, checked bool) (<-chan error, bool) {
	v.stateLock.Lock()
	found := false
	for i := range v.inputs {
		if v.inputs[i].ID == id {
			v.inputs[i].Value = value
			v.inputs[i].Checked = checked
			found = true
		}
	}
	v.stateLock.Unlock()
	if !found {
		return nil, false
	}
	return v.Recompute(), true
}

// FitView zooms the camera to all the loaded geometry.
func (v *Viewer) FitView() {
	v.stateLock.Lock()
	view.FitToSelection(v.camera, v.controls, v.scene.Children(), v.fitOffset)
	v.stateLock.Unlock()
	v.rerender()
}
