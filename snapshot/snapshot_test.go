package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/smasonuk/cubelab/engine"
	"github.com/smasonuk/cubelab/host"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 80), 0x40, 0xff})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	testCases := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", PNG, false},
		{"frames/OUT.PNG", PNG, false},
		{"out.webp", WebP, false},
		{"out.jpg", 0, true},
		{"out", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatFromPath(tc.path)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("error = %v, want ErrUnknownFormat", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("FormatFromPath() = %v, %v; want %v", got, err, tc.want)
			}
		})
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", "frame.png")
	src := testImage()
	if err := Save(path, src); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
	}
	if r, g, b, a := got.At(3, 2).RGBA(); r>>8 != 180 || g>>8 != 160 || b>>8 != 0x40 || a>>8 != 0xff {
		t.Errorf("pixel (3,2) = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), WebP); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b := buf.Bytes()
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WEBP" {
		t.Errorf("output does not start with a RIFF/WEBP header: % x", b[:min(len(b), 12)])
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bmp")
	if err := Save(path, testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save() error = %v, want ErrUnknownFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Save() created a file for an unknown format")
	}
}

func TestCapture(t *testing.T) {
	s, err := engine.NewRasterSurface(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	s.Clear(color.RGBA{10, 20, 30, 255})
	img, err := Capture(s)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	s.Clear(color.RGBA{A: 255})
	if got := img.(*image.RGBA).RGBAAt(1, 1); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("captured pixel = %v; capture should be a copy", got)
	}

	s.Dispose()
	if _, err := Capture(s); !errors.Is(err, ErrUnsupportedSurface) {
		t.Errorf("Capture(disposed) error = %v", err)
	}
}

type stubComponent struct {
	surface  *engine.RasterSurface
	unmounts int
}

func (c *stubComponent) Mount(*host.Element) error { return nil }

func (c *stubComponent) Unmount() {
	c.unmounts++
	c.surface.Dispose()
}

func TestRecorderCapturesBeforeUnmount(t *testing.T) {
	s, _ := engine.NewRasterSurface(2, 2)
	s.Clear(color.RGBA{R: 200, A: 255})
	c := &stubComponent{surface: s}
	r := NewRecorder(c, func() engine.Surface { return c.surface })

	r.Unmount()
	img, err := r.Image()
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	if c.unmounts != 1 {
		t.Errorf("inner Unmount called %d times", c.unmounts)
	}
	if got := img.(*image.RGBA).RGBAAt(0, 0); got.R != 200 {
		t.Errorf("captured %v", got)
	}
}

func TestRecorderWithoutMount(t *testing.T) {
	c := &stubComponent{surface: &engine.RasterSurface{}}
	r := NewRecorder(c, func() engine.Surface { return nil })
	r.Unmount()
	if _, err := r.Image(); !errors.Is(err, ErrNothingCaptured) {
		t.Errorf("Image() error = %v, want ErrNothingCaptured", err)
	}
}
