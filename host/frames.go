package host

import "time"

// FrameCallback receives the time since the scheduler started.
type FrameCallback func(now time.Duration)

// FrameID identifies a requested frame for cancellation.
type FrameID int

// FrameScheduler is the requestAnimationFrame contract.
type FrameScheduler interface {
	Request(cb FrameCallback) FrameID
	Cancel(id FrameID)
}

// Frames runs requested callbacks once on the next Tick. A callback requested
// while a tick is running waits for the following tick.
type Frames struct {
	next   FrameID
	order  []FrameID
	active map[FrameID]FrameCallback
	ticks  int
}

func NewFrames() *Frames {
	return &Frames{active: make(map[FrameID]FrameCallback)}
}

func (f *Frames) Request(cb FrameCallback) FrameID {
	f.next++
	f.active[f.next] = cb
	f.order = append(f.order, f.next)
	return f.next
}

// Cancel drops a pending callback. Unknown or already-run ids are ignored.
func (f *Frames) Cancel(id FrameID) {
	delete(f.active, id)
}

// Tick runs every callback pending when it was called.
func (f *Frames) Tick(now time.Duration) {
	f.ticks++
	batch := f.order
	f.order = nil
	for _, id := range batch {
		cb, ok := f.active[id]
		if !ok {
			continue
		}
		delete(f.active, id)
		cb(now)
	}
}

// Pending is the number of callbacks waiting for the next tick.
func (f *Frames) Pending() int {
	return len(f.active)
}

func (f *Frames) Ticks() int {
	return f.ticks
}
