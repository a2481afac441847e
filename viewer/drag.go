package viewer

// State is the pointer interaction state of the Lab.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "DRAGGING"
	}
	return "IDLE"
}

// DragState tracks one drag. At most one drag is active at a time.
type DragState struct {
	IsDown    bool
	PreviousX int
	PreviousY int
}

// Press starts a drag at x, y.
func (d *DragState) Press(x, y int) {
	d.IsDown = true
	d.PreviousX, d.PreviousY = x, y
}

// Move returns the offset from the previous position and records the new one.
// ok is false when no drag is active.
func (d *DragState) Move(x, y int) (dx, dy int, ok bool) {
	if !d.IsDown {
		return 0, 0, false
	}
	dx, dy = x-d.PreviousX, y-d.PreviousY
	d.PreviousX, d.PreviousY = x, y
	return dx, dy, true
}

// Release ends the drag.
func (d *DragState) Release() {
	*d = DragState{}
}

func (d *DragState) State() State {
	if d.IsDown {
		return Dragging
	}
	return Idle
}
