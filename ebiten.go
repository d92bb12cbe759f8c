package ui

import (
	"github.com/Yeicor/solveview/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
	"image"
	"log"
)

// viewerEbitenGame hides the private ebiten implementation while behaving like a *Viewer internally
type viewerEbitenGame struct {
	*Viewer
}

func (v viewerEbitenGame) Update() error {
	v.onUpdateInputs()
	return nil
}

func (v viewerEbitenGame) Draw(screen *ebiten.Image) {
	v.drawScene(screen)
	v.drawUI(screen)
}

func (v viewerEbitenGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	newScreenSize := image.Point{X: outsideWidth, Y: outsideHeight}
	v.stateLock.Lock()
	changed := v.screenSize != newScreenSize && outsideWidth > 0 && outsideHeight > 0
	if changed {
		v.screenSize = newScreenSize
		v.camera.Aspect = float64(outsideWidth) / float64(outsideHeight)
		v.camera.UpdateProjectionMatrix()
	}
	v.stateLock.Unlock()
	if changed {
		v.rerender()
	}
	return outsideWidth, outsideHeight // Use all available pixels, no re-scaling (unless ResInv is modified)
}

// Run opens the window and blocks until it is closed. The first computation starts immediately.
func (v *Viewer) Run() error {
	defer v.Close()
	go v.renderLoop()
	if v.watch {
		go v.watchChanges()
	}
	v.Recompute()
	v.rerender()
	ebiten.SetWindowTitle("solveview: " + v.cfg.Definition)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	v.stateLock.RLock()
	ebiten.SetWindowSize(v.screenSize.X, v.screenSize.Y)
	v.stateLock.RUnlock()
	return ebiten.RunGame(viewerEbitenGame{v})
}

// rerender requests a new render, coalescing with any request that is still pending
func (v *Viewer) rerender() {
	select {
	case v.renderRequests <- struct{}{}:
	default:
	}
}

func (v *Viewer) renderLoop() {
	for {
		select {
		case <-v.ctx.Done():
			return
		case <-v.renderRequests:
		}
		v.renderOnce()
	}
}

// renderOnce renders the current state and publishes it for the next Draw
func (v *Viewer) renderOnce() *image.NRGBA {
	v.renderingLock.Lock()
	defer v.renderingLock.Unlock()
	v.stateLock.RLock()
	f := &render.Frame{
		Nodes:      v.scene.Children(),
		Version:    v.scene.Version(),
		Background: v.scene.Background,
		Camera:     *v.camera,
		ColorMode:  v.colorMode,
		DrawBbs:    v.drawBbs,
		Width:      max(1, v.screenSize.X/v.resInv),
		Height:     max(1, v.screenSize.Y/v.resInv),
	}
	v.stateLock.RUnlock()
	if f.Camera.Degenerate() {
		log.Println("[Viewer] Empty view frustum, only drawing the background")
	}
	img := v.renderer.Render(f)
	v.cachedRenderLock.Lock()
	v.cachedRender = img
	v.cachedRenderSeq++
	v.cachedRenderLock.Unlock()
	return img
}

// drawScene draws the latest render, scaled to the screen
func (v *Viewer) drawScene(screen *ebiten.Image) {
	v.cachedRenderLock.RLock()
	img, seq := v.cachedRender, v.cachedRenderSeq
	v.cachedRenderLock.RUnlock()
	if img == nil {
		return
	}
	if seq != v.drawnSeq || v.screenImg == nil {
		if v.screenImg != nil && v.screenImg.Bounds().Size() == img.Rect.Size() {
			v.screenImg.WritePixels(img.Pix)
		} else {
			if v.screenImg != nil {
				v.screenImg.Deallocate()
			}
			v.screenImg = ebiten.NewImageFromImage(img)
		}
		v.drawnSeq = seq
	}
	drawOpts := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	drawOpts.GeoM.Scale(float64(sw)/float64(img.Rect.Dx()), float64(sh)/float64(img.Rect.Dy()))
	screen.DrawImage(v.screenImg, drawOpts)
}
