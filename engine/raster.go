package engine

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xvector "golang.org/x/image/vector"
)

// RasterSurface paints onto an in-memory RGBA image on the CPU. It needs no
// graphics context, so it backs headless snapshots.
type RasterSurface struct {
	img *image.RGBA
	z   *xvector.Rasterizer
}

func NewRasterSurface(width, height int) (*RasterSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster surface %dx%d: %w", width, height, ErrInvalidSize)
	}
	return &RasterSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   xvector.NewRasterizer(width, height),
	}, nil
}

// RasterSurfaces is a SurfaceFactory for RasterSurface.
func RasterSurfaces(width, height int) (Surface, error) {
	return NewRasterSurface(width, height)
}

// Image returns the pixels painted so far, or nil once disposed.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

func (s *RasterSurface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *RasterSurface) Clear(c color.RGBA) {
	if s.img == nil {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *RasterSurface) FillPolygon(xp, yp []float32, c color.RGBA) {
	if s.img == nil || len(xp) < 3 {
		return
	}
	s.begin()
	s.z.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		s.z.LineTo(xp[i], yp[i])
	}
	s.z.ClosePath()
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

// StrokePolygon draws each edge as a quad of the given width.
func (s *RasterSurface) StrokePolygon(xp, yp []float32, width float32, c color.RGBA) {
	if s.img == nil || len(xp) < 2 {
		return
	}
	s.begin()
	half := float64(width) / 2
	n := len(xp)
	for i := 0; i < n; i++ {
		x0, y0 := float64(xp[i]), float64(yp[i])
		x1, y1 := float64(xp[(i+1)%n]), float64(yp[(i+1)%n])
		dx, dy := x1-x0, y1-y0
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		s.z.MoveTo(float32(x0+nx), float32(y0+ny))
		s.z.LineTo(float32(x1+nx), float32(y1+ny))
		s.z.LineTo(float32(x1-nx), float32(y1-ny))
		s.z.LineTo(float32(x0-nx), float32(y0-ny))
		s.z.ClosePath()
	}
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (s *RasterSurface) begin() {
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
}

// Dispose drops the pixel buffer.
func (s *RasterSurface) Dispose() {
	s.img = nil
	s.z = nil
}
