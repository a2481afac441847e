package engine

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// whiteSubImage is the 1x1 source texture for solid colour triangles.
func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		white := ebiten.NewImage(3, 3)
		white.Fill(color.White)
		whiteSub = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// ImageSurface paints onto an offscreen ebiten image (GPU backed).
type ImageSurface struct {
	img       *ebiten.Image
	width     int
	height    int
	antiAlias bool
}

// NewImageSurface allocates the offscreen image.
func NewImageSurface(width, height int, antiAlias bool) (*ImageSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image surface %dx%d: %w", width, height, ErrInvalidSize)
	}
	return &ImageSurface{
		img:       ebiten.NewImage(width, height),
		width:     width,
		height:    height,
		antiAlias: antiAlias,
	}, nil
}

// ImageSurfaces returns a SurfaceFactory for ImageSurface.
func ImageSurfaces(antiAlias bool) SurfaceFactory {
	return func(width, height int) (Surface, error) {
		return NewImageSurface(width, height, antiAlias)
	}
}

// Image returns the backing image, or nil once disposed.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

func (s *ImageSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *ImageSurface) Clear(c color.RGBA) {
	if s.img == nil {
		return
	}
	s.img.Fill(c)
}

func (s *ImageSurface) FillPolygon(xp, yp []float32, c color.RGBA) {
	if s.img == nil || len(xp) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(xp)-2)*3)
	for i := 2; i < len(xp); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	cr, cg, cb, ca := colorScale(c)
	vertices := make([]ebiten.Vertex, len(xp))
	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: s.antiAlias}
	s.img.DrawTriangles(vertices, indices, whiteSubImage(), op)
}

func (s *ImageSurface) StrokePolygon(xp, yp []float32, width float32, c color.RGBA) {
	if s.img == nil || len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})

	cr, cg, cb, ca := colorScale(c)
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: s.antiAlias}
	s.img.DrawTriangles(vertices, indices, whiteSubImage(), op)
}

// Dispose releases the GPU image. Further drawing is ignored.
func (s *ImageSurface) Dispose() {
	if s.img == nil {
		return
	}
	s.img.Deallocate()
	s.img = nil
}

// colorScale converts c to premultiplied vertex colour components.
func colorScale(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}
