package host

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/cubelab/engine"
)

// Overlay is drawn above the canvases and sees every pointer event.
type Overlay interface {
	HandlePointer(ev PointerEvent) bool
	Draw(screen *ebiten.Image)
}

// Window is the ebiten game hosting one mount point.
type Window struct {
	Title      string
	TPS        int
	Background color.RGBA

	Root   *Element
	Frames *Frames

	width, height int
	router        *PointerRouter
	overlays      []Overlay
	start         time.Time
	uploads       map[*Canvas]*ebiten.Image
}

// NewWindow creates a window whose mount point covers it entirely.
func NewWindow(width, height int) *Window {
	root := NewElement(image.Rect(0, 0, width, height))
	return &Window{
		Title:      "cubelab",
		TPS:        60,
		Background: color.RGBA{0x20, 0x20, 0x20, 0xff},
		Root:       root,
		Frames:     NewFrames(),
		width:      width,
		height:     height,
		router:     NewPointerRouter(root),
		start:      time.Now(),
		uploads:    make(map[*Canvas]*ebiten.Image),
	}
}

func (w *Window) AddOverlay(o Overlay) {
	if o != nil {
		w.overlays = append(w.overlays, o)
	}
}

// CurrentPointer samples the mouse. WheelY follows the DOM sign: positive when
// scrolling towards the user.
func CurrentPointer() PointerSnapshot {
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return PointerSnapshot{
		X: x,
		Y: y,
		Buttons: [3]bool{
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		},
		WheelY: -wy,
	}
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, ev := range w.router.Feed(CurrentPointer()) {
		for _, o := range w.overlays {
			if o.HandlePointer(ev) {
				break
			}
		}
	}
	return nil
}

// Draw runs the frame callbacks, then composites canvases and overlays.
func (w *Window) Draw(screen *ebiten.Image) {
	w.Frames.Tick(time.Since(w.start))

	screen.Fill(w.Background)
	for _, c := range w.Root.Children() {
		img := w.canvasImage(c)
		if img == nil {
			continue
		}
		b := c.Bounds()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(1/c.Scale(), 1/c.Scale())
		op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
		screen.DrawImage(img, op)
	}
	w.pruneUploads()

	for _, o := range w.overlays {
		o.Draw(screen)
	}
}

// canvasImage returns an ebiten image for the canvas surface, uploading CPU
// surfaces each frame.
func (w *Window) canvasImage(c *Canvas) *ebiten.Image {
	switch s := c.Surface().(type) {
	case *engine.ImageSurface:
		return s.Image()
	case *engine.RasterSurface:
		rgba := s.Image()
		if rgba == nil {
			return nil
		}
		b := rgba.Bounds()
		img := w.uploads[c]
		if img == nil || img.Bounds().Size() != b.Size() {
			if img != nil {
				img.Deallocate()
			}
			img = ebiten.NewImage(b.Dx(), b.Dy())
			w.uploads[c] = img
		}
		img.WritePixels(rgba.Pix)
		return img
	}
	return nil
}

func (w *Window) pruneUploads() {
	for c, img := range w.uploads {
		if !w.Root.Contains(c) {
			img.Deallocate()
			delete(w.uploads, c)
		}
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
