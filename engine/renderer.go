package engine

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShadowMapType selects how shadow edges are filtered.
type ShadowMapType int

const (
	BasicShadowMap ShadowMapType = iota
	PCFShadowMap
	PCFSoftShadowMap
)

// ShadowMap holds the renderer's shadow settings.
type ShadowMap struct {
	Enabled bool
	Type    ShadowMapType
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithPixelRatio renders at ratio surface pixels per logical pixel.
func WithPixelRatio(ratio float64) RendererOption {
	return func(r *Renderer) {
		if ratio > 0 {
			r.pixelRatio = ratio
		}
	}
}

// WithShadowMap enables shadows of the given type.
func WithShadowMap(t ShadowMapType) RendererOption {
	return func(r *Renderer) {
		r.ShadowMap = ShadowMap{Enabled: true, Type: t}
	}
}

// WithLineWidth sets the wireframe stroke width in surface pixels.
func WithLineWidth(w float32) RendererOption {
	return func(r *Renderer) {
		r.lineWidth = w
	}
}

// Renderer draws a Scene through a camera onto the Surface it owns.
type Renderer struct {
	ShadowMap ShadowMap

	surface    Surface
	width      int
	height     int
	pixelRatio float64
	lineWidth  float32
	frames     int
	disposed   bool
}

// NewRenderer allocates a surface of width x height logical pixels scaled by the
// pixel ratio.
func NewRenderer(surfaces SurfaceFactory, width, height int, opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		width:      width,
		height:     height,
		pixelRatio: 1,
		lineWidth:  1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("renderer %dx%d: %w", width, height, ErrInvalidSize)
	}

	sw := int(math.Round(float64(width) * r.pixelRatio))
	sh := int(math.Round(float64(height) * r.pixelRatio))
	s, err := surfaces(sw, sh)
	if err != nil {
		return nil, fmt.Errorf("allocate surface: %w", err)
	}
	r.surface = s
	log.Printf("renderer: %dx%d at pixel ratio %.2f", width, height, r.pixelRatio)
	return r, nil
}

func (r *Renderer) Surface() Surface {
	return r.surface
}

// Size is the logical size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) PixelRatio() float64 {
	return r.pixelRatio
}

// Frames counts completed Render calls.
func (r *Renderer) Frames() int {
	return r.frames
}

func (r *Renderer) Disposed() bool {
	return r.disposed
}

// Render paints the scene. Meshes are drawn farthest first, each mesh's faces in
// BSP order, so no depth buffer is needed.
func (r *Renderer) Render(scene *Scene, camera *PerspectiveCamera) error {
	if r.disposed {
		return ErrDisposed
	}
	if scene == nil || camera == nil {
		return nil
	}

	sw, sh := r.surface.Size()
	r.surface.Clear(scene.Background)

	view := camera.ViewMatrix()
	proj := camera.ProjectionMatrix()
	lights := newLighting(scene, r.ShadowMap)

	for _, mesh := range scene.Meshes(camera.Position) {
		if mesh.Geometry == nil || mesh.Material == nil {
			continue
		}
		model := mesh.ModelMatrix()
		modelView := view.Mul4(model)
		eye := TransformPoint(model.Inv(), camera.Position)
		wireframe := mesh.Material.Wireframe

		mesh.Geometry.Root().Walk(eye, func(f *Face, facing bool) {
			if !facing && !wireframe {
				return
			}
			c := lights.shade(mesh,
				TransformNormal(model, f.Normal()),
				TransformPoint(model, f.MidPoint()),
				camera.Position)

			pts := make([]mgl64.Vec3, len(f.Points))
			for i, p := range f.Points {
				pts[i] = TransformPoint(modelView, p)
			}
			pts = clipPolygonAgainstNearPlane(pts, camera.Near)
			if len(pts) < 3 || beyondFarPlane(pts, camera.Far) {
				return
			}

			xp := make([]float32, len(pts))
			yp := make([]float32, len(pts))
			for i, p := range pts {
				x, y := camera.projectView(proj, p, sw, sh)
				xp[i], yp[i] = float32(x), float32(y)
			}

			if !wireframe {
				r.surface.FillPolygon(xp, yp, c)
				return
			}
			for i := 1; i < len(xp)-1; i++ {
				r.surface.StrokePolygon(
					[]float32{xp[0], xp[i], xp[i+1]},
					[]float32{yp[0], yp[i], yp[i+1]},
					r.lineWidth, c)
			}
		})
	}
	r.frames++
	return nil
}

func beyondFarPlane(pts []mgl64.Vec3, far float64) bool {
	for _, p := range pts {
		if -p[2] <= far {
			return false
		}
	}
	return true
}

// Dispose releases the surface. It is safe to call more than once.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	if r.surface != nil {
		r.surface.Dispose()
	}
	log.Printf("renderer: disposed after %d frames", r.frames)
}
