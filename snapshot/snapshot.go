// Package snapshot writes rendered frames to image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"github.com/smasonuk/cubelab/engine"
	"github.com/smasonuk/cubelab/host"
)

var (
	// ErrUnknownFormat is returned for file extensions other than .png and .webp.
	ErrUnknownFormat = errors.New("snapshot: unknown image format")
	// ErrUnsupportedSurface is returned when a surface's pixels cannot be read
	// outside the game loop.
	ErrUnsupportedSurface = errors.New("snapshot: surface cannot be captured")
	// ErrNothingCaptured is returned by Recorder when the component never mounted.
	ErrNothingCaptured = errors.New("snapshot: nothing captured")
)

type Format int

const (
	PNG Format = iota
	WebP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	}
	return "unknown"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	}
	return 0, fmt.Errorf("%q: %w", path, ErrUnknownFormat)
}

// Encode writes img to w. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	}
	return ErrUnknownFormat
}

// Save writes img to path in the format named by its extension.
func Save(path string, img image.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("%s encode: %w", format, err)
	}
	b := img.Bounds()
	log.Printf("snapshot: wrote %s (%dx%d)", path, b.Dx(), b.Dy())
	return nil
}

// Capture copies the pixels of a CPU surface.
func Capture(s engine.Surface) (image.Image, error) {
	rs, ok := s.(*engine.RasterSurface)
	if !ok || rs.Image() == nil {
		return nil, ErrUnsupportedSurface
	}
	src := rs.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst, nil
}

// Recorder wraps a component and captures its surface just before it unmounts,
// so the last rendered frame survives teardown.
type Recorder struct {
	host.Component
	source func() engine.Surface
	img    image.Image
	err    error
}

func NewRecorder(c host.Component, source func() engine.Surface) *Recorder {
	return &Recorder{Component: c, source: source, err: ErrNothingCaptured}
}

func (r *Recorder) Unmount() {
	if s := r.source(); s != nil {
		r.img, r.err = Capture(s)
	}
	r.Component.Unmount()
}

// Image returns the captured frame.
func (r *Recorder) Image() (image.Image, error) {
	return r.img, r.err
}
