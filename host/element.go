// Package host stands in for the browser around a viewer: a mount-point Element,
// Canvas elements that receive pointer events, a display-refresh frame scheduler
// and the ebiten window or headless loop that drives them.
package host

import (
	"image"
	"slices"

	"github.com/smasonuk/cubelab/engine"
)

// EventType names a pointer event.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	PointerLeave
	Wheel
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case PointerLeave:
		return "pointerleave"
	case Wheel:
		return "wheel"
	}
	return "unknown"
}

// Mouse buttons, numbered as in DOM pointer events.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// PointerEvent carries client (window) coordinates and the offset inside the
// target canvas.
type PointerEvent struct {
	Type    EventType
	X, Y    int
	OffsetX int
	OffsetY int
	Button  int
	DeltaY  float64
}

// ListenerID identifies a registered listener for removal.
type ListenerID int

type listener struct {
	id  ListenerID
	typ EventType
	fn  func(PointerEvent)
}

// Canvas is a rendering surface element. Its size is in logical pixels; the
// attached surface may be larger by Scale.
type Canvas struct {
	width, height int
	scale         float64
	origin        image.Point
	parent        *Element
	surface       engine.Surface
	listeners     []listener
	nextID        ListenerID
}

func NewCanvas(width, height int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	return &Canvas{width: width, height: height, scale: scale}
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Scale is surface pixels per logical pixel.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Bounds is the canvas rectangle in window coordinates.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rectangle{Min: c.origin, Max: c.origin.Add(image.Pt(c.width, c.height))}
}

// SetSurface attaches the surface the window displays for this canvas.
func (c *Canvas) SetSurface(s engine.Surface) {
	c.surface = s
}

func (c *Canvas) Surface() engine.Surface {
	return c.surface
}

// Parent is the element the canvas is attached to, or nil.
func (c *Canvas) Parent() *Element {
	return c.parent
}

// AddEventListener registers fn for events of type t.
func (c *Canvas) AddEventListener(t EventType, fn func(PointerEvent)) ListenerID {
	c.nextID++
	c.listeners = append(c.listeners, listener{id: c.nextID, typ: t, fn: fn})
	return c.nextID
}

// RemoveEventListener unregisters a listener and reports whether it existed.
func (c *Canvas) RemoveEventListener(id ListenerID) bool {
	for i, l := range c.listeners {
		if l.id == id {
			c.listeners = slices.Delete(c.listeners, i, i+1)
			return true
		}
	}
	return false
}

func (c *Canvas) ListenerCount() int {
	return len(c.listeners)
}

// Dispatch calls the listeners for ev.Type in registration order. Listeners
// added or removed by a handler take effect from the next event.
func (c *Canvas) Dispatch(ev PointerEvent) {
	ev.OffsetX = ev.X - c.origin.X
	ev.OffsetY = ev.Y - c.origin.Y
	for _, l := range slices.Clone(c.listeners) {
		if l.typ == ev.Type {
			l.fn(ev)
		}
	}
}

// Element is a mount point. Canvases appended to it are placed at its origin.
type Element struct {
	rect     image.Rectangle
	children []*Canvas
}

func NewElement(rect image.Rectangle) *Element {
	return &Element{rect: rect}
}

func (e *Element) Bounds() image.Rectangle {
	return e.rect
}

// AppendChild attaches c, detaching it from any previous parent.
func (e *Element) AppendChild(c *Canvas) {
	if c == nil || e.Contains(c) {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = e
	c.origin = e.rect.Min
	e.children = append(e.children, c)
}

// RemoveChild detaches c and reports whether it was a child.
func (e *Element) RemoveChild(c *Canvas) bool {
	i := slices.Index(e.children, c)
	if i < 0 {
		return false
	}
	e.children = slices.Delete(e.children, i, i+1)
	c.parent = nil
	return true
}

func (e *Element) Contains(c *Canvas) bool {
	return slices.Contains(e.children, c)
}

func (e *Element) Children() []*Canvas {
	return e.children
}

// CanvasAt returns the topmost canvas under the point, or nil.
func (e *Element) CanvasAt(x, y int) *Canvas {
	p := image.Pt(x, y)
	for i := len(e.children) - 1; i >= 0; i-- {
		if p.In(e.children[i].Bounds()) {
			return e.children[i]
		}
	}
	return nil
}
