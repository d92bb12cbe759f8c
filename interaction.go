package ui

import (
	"context"
	"fmt"
	"github.com/Yeicor/solveview/internal/render"
	"github.com/Yeicor/solveview/internal/solve"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"image"
	"image/color"
	"log"
	"math"
	"strings"
	"time"
)

var defaultFont = basicfont.Face7x13

// onUpdateInputs handles inputs
func (v *Viewer) onUpdateInputs() {
	v.onUpdateInputsCommon()
	v.onUpdateInputsDefinition()
	v.onUpdateInputsCamera()
}

func (v *Viewer) onUpdateInputsCommon() {
	changed := false
	v.stateLock.Lock()
	if inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		v.resInv /= 2
		if v.resInv < 1 {
			v.resInv = 1
		}
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		v.resInv *= 2
		if v.resInv > 64 {
			v.resInv = 64
		}
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		v.drawBbs = !v.drawBbs
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.colorMode = (v.colorMode + 1) % render.ColorModes
		changed = true
	}
	v.stateLock.Unlock()
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		path, err := v.Download()
		v.stateLock.Lock()
		if err != nil {
			log.Println("[Viewer] Download failed:", err)
			v.status = "Download failed: " + err.Error()
		} else {
			v.status = "Saved " + path
		}
		v.stateLock.Unlock()
	}
	if changed {
		v.rerender()
	}
}

// onUpdateInputsDefinition edits the definition inputs: number and checkbox inputs are committed on every change,
// while range inputs are committed when the key is released (like a slider that is let go).
func (v *Viewer) onUpdateInputsDefinition() {
	commit := false
	v.stateLock.Lock()
	if len(v.inputs) == 0 {
		v.stateLock.Unlock()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			v.selectedInput = (v.selectedInput + len(v.inputs) - 1) % len(v.inputs)
		} else {
			v.selectedInput = (v.selectedInput + 1) % len(v.inputs)
		}
	}
	in := &v.inputs[v.selectedInput%len(v.inputs)]
	steps := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || repeating(ebiten.KeyArrowRight) {
		steps++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || repeating(ebiten.KeyArrowLeft) {
		steps--
	}
	wheelCommit := false
	if _, wheelUpDown := ebiten.Wheel(); wheelUpDown != 0 && ebiten.IsKeyPressed(ebiten.KeyControl) {
		steps += int(math.Copysign(1, wheelUpDown))
		wheelCommit = true
	}
	if in.Type == solve.Checkbox {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			steps = 1
		} else {
			steps = 0
		}
	}
	if steps != 0 && in.Nudge(steps) {
		if in.Type == solve.Range && !wheelCommit {
			v.pendingCommit = true
		} else {
			commit = true
		}
	}
	if v.pendingCommit && (inpututil.IsKeyJustReleased(ebiten.KeyArrowRight) || inpututil.IsKeyJustReleased(ebiten.KeyArrowLeft)) {
		v.pendingCommit = false
		commit = true
	}
	v.stateLock.Unlock()
	if commit {
		v.Recompute()
	}
}

// repeating reports key repeats while a key is held down
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d > 30 && d%4 == 0
}

func (v *Viewer) onUpdateInputsCamera() {
	// Reset camera transform (zoom to extents)
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.FitView()
		return
	}
	changed := false
	v.stateLock.Lock()
	// Zooming
	_, wheelUpDown := ebiten.Wheel()
	if wheelUpDown != 0 && !ebiten.IsKeyPressed(ebiten.KeyControl) { // Ctrl+Wheel edits inputs
		v.controls.Dolly(math.Pow(0.95, wheelUpDown))
		changed = true
	}
	// Rotation + Translation
	cx, cy := getCursor()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) ||
		len(ebiten.AppendTouchIDs(nil)) > 0
	if pressed {
		if v.dragging {
			delta := image.Point{X: cx, Y: cy}.Sub(v.dragFrom)
			if delta != (image.Point{}) {
				height := float64(max(1, v.screenSize.Y))
				if ebiten.IsKeyPressed(ebiten.KeyShift) { // Translation on the plane perpendicular to the view
					v.controls.Pan(-float64(delta.X)/height, float64(delta.Y)/height)
				} else { // Rotation
					v.controls.Rotate(-2*math.Pi*float64(delta.X)/height, -2*math.Pi*float64(delta.Y)/height)
				}
				changed = true
			}
		}
		v.dragging = true
		v.dragFrom = image.Point{X: cx, Y: cy}
	} else {
		v.dragging = false
	}
	if changed {
		v.controls.Update()
	}
	v.stateLock.Unlock()
	if changed {
		v.rerender()
	}
}

func getCursor() (int, int) {
	cx, cy := ebiten.CursorPosition()
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 { // Override cursor with touch if available
		cx, cy = ebiten.TouchPosition(touches[0])
	}
	return cx, cy
}

// drawUI draws the inputs, the current state and the controls help
func (v *Viewer) drawUI(screen *ebiten.Image) {
	// Notify when rendering
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelFunc()
	if v.renderingLock.RTryLock(ctx) {
		v.renderingLock.RUnlock()
	} else {
		drawDefaultTextWithShadow(screen, "Rendering...", 5, 5+12, color.RGBA{R: 255, A: 255})
	}
	if v.Loading() {
		v.drawSpinner(screen)
	}

	v.stateLock.RLock()
	defer v.stateLock.RUnlock()
	var sb strings.Builder
	for i, in := range v.inputs {
		marker := "  "
		if i == v.selectedInput%len(v.inputs) {
			marker = "> "
		}
		_, _ = fmt.Fprintf(&sb, "%s%s (%s): %s\n", marker, in.ID, in.Type, in)
	}
	drawDefaultTextWithShadow(screen, sb.String(), 5, 5+12*3, color.RGBA{B: 128, A: 255})

	download := "disabled"
	if v.downloadEnabled {
		download = "[D]"
	}
	msg := fmt.Sprintf("TPS: %0.2f/%d\nResolution: %.2f [+/-]\nColor: %d [C]\nBoxes: %t [B]\nDownload STL: %s\n"+
		"Zoom to extents [R]\nSelect input [Tab]\nChange input [Left/Right/Ctrl+MouseWheel/Space]\n"+
		"Rotate cam [Mouse drag]\nTranslate cam [Shift+Mouse drag]\nZoom cam [MouseWheel]\n%s",
		ebiten.ActualTPS(), ebiten.TPS(), 1/float64(v.resInv), v.colorMode, v.drawBbs, download, v.status)
	boundString := text.BoundString(defaultFont, msg)
	drawDefaultTextWithShadow(screen, msg, 5, v.screenSize.Y-boundString.Size().Y+10, color.RGBA{G: 128, A: 255})
}

// drawSpinner draws rotating spokes at the center of the screen
func (v *Viewer) drawSpinner(screen *ebiten.Image) {
	const spokes = 12
	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	head := int(time.Now().UnixMilli()/80) % spokes
	for i := 0; i < spokes; i++ {
		angle := 2 * math.Pi * float64(i) / spokes
		sin, cos := math.Sincos(angle)
		fade := uint8(40 + 215*((i-head+spokes)%spokes)/(spokes-1))
		vector.StrokeLine(screen, float32(cx+12*cos), float32(cy+12*sin), float32(cx+24*cos), float32(cy+24*sin),
			4, color.RGBA{R: fade / 3, G: fade / 3, B: fade / 3, A: fade}, true)
	}
}

func drawDefaultTextWithShadow(screen *ebiten.Image, msg string, x, y int, c color.Color) {
	text.Draw(screen, msg, defaultFont, x+1, y+1, color.RGBA{R: 255, G: 255, B: 255, A: 160})
	text.Draw(screen, msg, defaultFont, x, y, c)
}
