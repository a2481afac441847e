package engine

import "image/color"

// recordingSurface is a mock for testing purposes
type recordingSurface struct {
	width, height int
	clears        []color.RGBA
	fills         int
	strokes       int
	disposed      bool
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }

func (s *recordingSurface) Clear(c color.RGBA) { s.clears = append(s.clears, c) }

func (s *recordingSurface) FillPolygon(xp, yp []float32, c color.RGBA) { s.fills++ }

func (s *recordingSurface) StrokePolygon(xp, yp []float32, width float32, c color.RGBA) {
	s.strokes++
}

func (s *recordingSurface) Dispose() { s.disposed = true }

func recordingSurfaces(last **recordingSurface) SurfaceFactory {
	return func(width, height int) (Surface, error) {
		s := &recordingSurface{width: width, height: height}
		*last = s
		return s, nil
	}
}
