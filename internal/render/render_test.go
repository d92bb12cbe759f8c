package render

import (
	"github.com/Yeicor/solveview/internal/scene"
	"github.com/Yeicor/solveview/internal/view"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"image/color"
	"testing"
)

// quad is a 2x2 square on the Z=0 plane, facing Z+
func quad() *scene.Mesh {
	a, b, c, d := v3.Vec{X: -1, Y: -1}, v3.Vec{X: 1, Y: -1}, v3.Vec{X: 1, Y: 1}, v3.Vec{X: -1, Y: 1}
	return &scene.Mesh{Triangles: []*sdf.Triangle3{{V: [3]v3.Vec{a, b, c}}, {V: [3]v3.Vec{a, c, d}}}}
}

func testFrame(t testing.TB, colorMode int, drawBbs bool) (*Frame, *scene.Scene) {
	s := scene.NewDefault()
	s.Add(scene.NewGroup("result", quad()))
	cam := view.NewCamera(45, 1, 1, 1000)
	controls := view.NewOrbitControls(cam)
	view.FitToSelection(cam, controls, s.Children(), 1.2)
	return &Frame{
		Nodes:      s.Children(),
		Version:    s.Version(),
		Background: s.Background,
		Camera:     *cam,
		ColorMode:  colorMode,
		DrawBbs:    drawBbs,
		Width:      64,
		Height:     64,
	}, s
}

func TestRenderDrawsGeometry(t *testing.T) {
	for mode := 0; mode < ColorModes; mode++ {
		f, s := testFrame(t, mode, mode == 0)
		img := NewRenderer().Render(f)
		if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
			t.Fatalf("unexpected image size %v", img.Bounds())
		}
		bg := color.NRGBAModel.Convert(s.Background).(color.NRGBA)
		if mode == 2 {
			continue // Wireframe may not cover the center
		}
		if img.NRGBAAt(32, 32) == bg {
			t.Fatalf("color mode %d: expected geometry at the center of the image", mode)
		}
		if img.NRGBAAt(0, 0) != bg {
			t.Fatalf("color mode %d: expected background at the corner, got %v", mode, img.NRGBAAt(0, 0))
		}
	}
}

func TestRenderDegenerateCamera(t *testing.T) {
	f, s := testFrame(t, 0, true)
	f.Camera.Near, f.Camera.Far = 0, 0
	f.Camera.UpdateProjectionMatrix()
	img := NewRenderer().Render(f)
	bg := color.NRGBAModel.Convert(s.Background).(color.NRGBA)
	for y := 0; y < 64; y += 7 {
		for x := 0; x < 64; x += 7 {
			if img.NRGBAAt(x, y) != bg {
				t.Fatalf("expected only background, got %v at %d,%d", img.NRGBAAt(x, y), x, y)
			}
		}
	}
}

func TestRenderReusesMesh(t *testing.T) {
	f, s := testFrame(t, 1, false)
	r := NewRenderer()
	r.Render(f)
	mesh := r.mesh
	r.Render(f)
	if r.mesh != mesh {
		t.Fatalf("mesh rebuilt for the same scene version")
	}
	s.ReplaceGeometry(quad())
	f.Nodes, f.Version = s.Children(), s.Version()
	r.Render(f)
	if r.mesh == mesh {
		t.Fatalf("mesh not rebuilt after the scene changed")
	}
}

func BenchmarkRender(b *testing.B) {
	f, _ := testFrame(b, 0, true)
	f.Width, f.Height = 480, 270
	r := NewRenderer()
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r.Render(f)
	}
}
