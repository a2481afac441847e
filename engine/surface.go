package engine

import (
	"errors"
	"image/color"
)

var (
	// ErrInvalidSize is returned when a surface would have no pixels.
	ErrInvalidSize = errors.New("engine: invalid surface size")
	// ErrDisposed is returned when using a renderer after Dispose.
	ErrDisposed = errors.New("engine: renderer disposed")
)

// Surface is a render target the Renderer paints polygons onto.
type Surface interface {
	Size() (width, height int)
	Clear(c color.RGBA)
	FillPolygon(xp, yp []float32, c color.RGBA)
	StrokePolygon(xp, yp []float32, width float32, c color.RGBA)
	Dispose()
}

// SurfaceFactory allocates a surface of the given pixel size.
type SurfaceFactory func(width, height int) (Surface, error)
