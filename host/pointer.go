package host

// PointerSnapshot is the pointer state sampled once per update.
type PointerSnapshot struct {
	X, Y    int
	Buttons [3]bool
	WheelY  float64
}

// PointerRouter turns successive snapshots into DOM-style events on the
// canvases of an element.
type PointerRouter struct {
	root   *Element
	last   PointerSnapshot
	hover  *Canvas
	primed bool
}

func NewPointerRouter(root *Element) *PointerRouter {
	return &PointerRouter{root: root}
}

// Feed dispatches the events implied by s to the canvas under the pointer and
// returns them in window coordinates, including those that hit no canvas.
func (r *PointerRouter) Feed(s PointerSnapshot) []PointerEvent {
	var out []PointerEvent
	target := r.root.CanvasAt(s.X, s.Y)

	if r.hover != nil && r.hover != target && r.root.Contains(r.hover) {
		r.hover.Dispatch(PointerEvent{Type: PointerLeave, X: s.X, Y: s.Y})
	}
	r.hover = target

	emit := func(ev PointerEvent) {
		out = append(out, ev)
		if target != nil {
			target.Dispatch(ev)
		}
	}

	if !r.primed || s.X != r.last.X || s.Y != r.last.Y {
		emit(PointerEvent{Type: PointerMove, X: s.X, Y: s.Y})
	}
	for b := range s.Buttons {
		switch {
		case s.Buttons[b] && !r.last.Buttons[b]:
			emit(PointerEvent{Type: PointerDown, X: s.X, Y: s.Y, Button: b})
		case !s.Buttons[b] && r.last.Buttons[b]:
			emit(PointerEvent{Type: PointerUp, X: s.X, Y: s.Y, Button: b})
		}
	}
	if s.WheelY != 0 {
		emit(PointerEvent{Type: Wheel, X: s.X, Y: s.Y, DeltaY: s.WheelY})
	}

	r.last = s
	r.primed = true
	return out
}
