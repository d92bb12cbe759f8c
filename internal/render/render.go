package render

import (
	"github.com/Yeicor/solveview/internal/scene"
	"github.com/Yeicor/solveview/internal/view"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
	"image"
	"image/color"
	"image/color/palette"
	"math"
)

// ColorModes is the number of supported color modes:
// 0: surface color with Phong shading from the scene lights, 1: normal XYZ as RGB, 2: 1 but in wireframe mode.
const ColorModes = 3

// Frame is everything needed to render a single image. Camera is a copy, so it can't change while rendering.
type Frame struct {
	Nodes      []scene.Node
	Version    uint64 // scene.Scene.Version of Nodes, used to reuse the triangle mesh
	Background color.RGBA
	Camera     view.Camera
	ColorMode  int
	DrawBbs    bool
	Width      int
	Height     int
}

// Renderer rasterizes scenes on the CPU. It is not safe for concurrent use.
type Renderer struct {
	SurfaceColor  color.RGBA
	SmoothNormals float64 // Threshold angle (radians) for smoothing the normals of the loaded meshes
	BoxColor      func(idx int) color.Color

	lastContext *fauxgl.Context
	mesh        *fauxgl.Mesh
	boxes       []sdf.Box3
	meshVersion uint64
	hasMesh     bool
}

// NewRenderer uses an orange surface color.
func NewRenderer() *Renderer {
	return &Renderer{
		SurfaceColor:  color.RGBA{R: 0xFF, G: 0x8C, B: 0x17, A: 255},
		SmoothNormals: math.Pi / 6,
		BoxColor: func(idx int) color.Color {
			return palette.WebSafe[((idx + 1) % len(palette.WebSafe))]
		},
	}
}

// Render draws the frame into a new image.
func (r *Renderer) Render(f *Frame) *image.NRGBA {
	if r.lastContext == nil || r.lastContext.Width != f.Width || r.lastContext.Height != f.Height {
		// Rebuild rendering context only when needed
		r.lastContext = fauxgl.NewContext(f.Width, f.Height)
	} else {
		r.lastContext.ClearDepthBuffer()
	}
	r.lastContext.ClearColorBufferWith(fauxgl.MakeColor(f.Background))

	if !f.Camera.Degenerate() {
		r.prepareMesh(f)
		camMatrix := f.Camera.Matrix()
		if f.ColorMode == 0 {
			r.lastContext.Shader = r.phongShader(f, camMatrix)
			r.lastContext.Wireframe = false
		} else {
			r.lastContext.Shader = &normalShader{camMatrix}
			r.lastContext.Wireframe = f.ColorMode == 2
		}
		r.lastContext.DrawMesh(r.mesh) // This is already multithread
		if f.DrawBbs {
			for i, bb := range r.boxes {
				r.renderBoundingBox(bb, camMatrix, r.BoxColor(i))
			}
		}
	}

	src := r.lastContext.Image().(*image.NRGBA)
	res := image.NewNRGBA(src.Rect)
	copy(res.Pix, src.Pix)
	return res
}

func (r *Renderer) prepareMesh(f *Frame) {
	if r.hasMesh && r.meshVersion == f.Version {
		return
	}
	tris := scene.WorldTriangles(f.Nodes)
	triangles := make([]*fauxgl.Triangle, 0, len(tris))
	for _, tri := range tris {
		triangles = append(triangles, convertTriangle(tri))
	}
	r.mesh = fauxgl.NewTriangleMesh(triangles)
	r.mesh.SmoothNormalsThreshold(r.SmoothNormals)
	r.boxes = scene.MeshBoxes(f.Nodes)
	r.meshVersion = f.Version
	r.hasMesh = true
}

func (r *Renderer) phongShader(f *Frame, camMatrix fauxgl.Matrix) fauxgl.Shader {
	lightDir := v3.Vec{X: 1, Y: -1, Z: 1}.Normalize() // Towards the light
	diffuse, ambient := fauxgl.Gray(0), fauxgl.Gray(0)
	for _, n := range f.Nodes {
		l, ok := n.(*scene.Light)
		if !ok {
			continue
		}
		c := fauxgl.MakeColor(l.Color)
		switch l.Kind {
		case scene.Directional:
			lightDir = l.Direction.MulScalar(-1).Normalize()
			diffuse = diffuse.Add(c.MulScalar(math.Min(1, l.Intensity/2)))
		case scene.Ambient:
			ambient = ambient.Add(c.MulScalar(0.2 * l.Intensity))
		}
	}
	shader := fauxgl.NewPhongShader(camMatrix, toFauxgl(lightDir), toFauxgl(f.Camera.Position))
	shader.ObjectColor = fauxgl.MakeColor(r.SurfaceColor)
	shader.DiffuseColor = diffuse
	shader.AmbientColor = ambient
	return shader
}

func (r *Renderer) renderBoundingBox(bb sdf.Box3, camMatrix fauxgl.Matrix, c color.Color) {
	mesh := fauxgl.NewCubeOutlineForBox(fauxgl.Box{Min: toFauxgl(bb.Min), Max: toFauxgl(bb.Max)})
	r.lastContext.Shader = fauxgl.NewSolidColorShader(camMatrix, fauxgl.MakeColor(c))
	r.lastContext.Wireframe = true
	r.lastContext.DrawMesh(mesh)
}

func convertTriangle(tri *sdf.Triangle3) *fauxgl.Triangle {
	normal := toFauxgl(tri.Normal())
	return &fauxgl.Triangle{
		V1: fauxgl.Vertex{Position: toFauxgl(tri.V[0]), Normal: normal, Color: fauxgl.Gray(1)},
		V2: fauxgl.Vertex{Position: toFauxgl(tri.V[1]), Normal: normal, Color: fauxgl.Gray(1)},
		V3: fauxgl.Vertex{Position: toFauxgl(tri.V[2]), Normal: normal, Color: fauxgl.Gray(1)},
	}
}

func toFauxgl(v v3.Vec) fauxgl.Vector {
	return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// normalShader colors each fragment with its absolute normal
type normalShader struct {
	Matrix fauxgl.Matrix
}

func (shader *normalShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	return v
}

func (shader *normalShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	return fauxgl.MakeColor(color.RGBA{
		R: uint8(math.Abs(v.Normal.X) * 255),
		G: uint8(math.Abs(v.Normal.Y) * 255),
		B: uint8(math.Abs(v.Normal.Z) * 255),
		A: 255,
	})
}
