// Package controls moves a camera around a target in response to pointer events
// on a canvas.
package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/cubelab/engine"
	"github.com/smasonuk/cubelab/host"
)

// polar angles stay this far from the poles so the view never flips
const polarEpsilon = 1e-6

type dragState int

const (
	stateNone dragState = iota
	stateRotate
	statePan
)

// Option is a functional option for configuring an Orbit.
type Option func(*Orbit)

// WithTarget sets the point the camera orbits and looks at.
func WithTarget(target mgl64.Vec3) Option {
	return func(o *Orbit) {
		o.target = target
	}
}

// WithRotateSpeed scales drag rotation; 1 turns a full circle per viewport height.
func WithRotateSpeed(speed float64) Option {
	return func(o *Orbit) {
		o.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the exponent of the per-notch dolly factor.
func WithZoomSpeed(speed float64) Option {
	return func(o *Orbit) {
		o.zoomSpeed = speed
	}
}

func WithPanSpeed(speed float64) Option {
	return func(o *Orbit) {
		o.panSpeed = speed
	}
}

// WithDistanceBounds limits how close and how far the camera may dolly.
func WithDistanceBounds(min, max float64) Option {
	return func(o *Orbit) {
		o.minDistance = min
		o.maxDistance = max
	}
}

// WithPolarBounds limits the angle from the up axis, in radians.
func WithPolarBounds(min, max float64) Option {
	return func(o *Orbit) {
		o.minPolar = min
		o.maxPolar = max
	}
}

// WithDamping eases motion out over several updates. Each Update applies factor
// of the remaining motion. A factor of 0 disables damping.
func WithDamping(factor float64) Option {
	return func(o *Orbit) {
		o.dampingFactor = factor
		o.enableDamping = factor > 0
	}
}

func WithPan(enabled bool) Option {
	return func(o *Orbit) {
		o.enablePan = enabled
	}
}

func WithZoom(enabled bool) Option {
	return func(o *Orbit) {
		o.enableZoom = enabled
	}
}

func WithRotate(enabled bool) Option {
	return func(o *Orbit) {
		o.enableRotate = enabled
	}
}

// Orbit rotates the camera with a left drag, dollies with the wheel and pans
// with a right drag. Motion is accumulated by the listeners and applied to the
// camera by Update.
type Orbit struct {
	camera *engine.PerspectiveCamera
	canvas *host.Canvas
	target mgl64.Vec3

	rotateSpeed   float64
	zoomSpeed     float64
	panSpeed      float64
	minDistance   float64
	maxDistance   float64
	minPolar      float64
	maxPolar      float64
	enableDamping bool
	dampingFactor float64
	enablePan     bool
	enableZoom    bool
	enableRotate  bool

	state      dragState
	lastX      int
	lastY      int
	deltaTheta float64
	deltaPhi   float64
	scale      float64
	panOffset  mgl64.Vec3
	listeners  []host.ListenerID
}

// New binds an orbit controller to camera and starts listening on canvas.
func New(camera *engine.PerspectiveCamera, canvas *host.Canvas, opts ...Option) *Orbit {
	o := &Orbit{
		camera:       camera,
		canvas:       canvas,
		rotateSpeed:  1,
		zoomSpeed:    1,
		panSpeed:     1,
		maxDistance:  math.Inf(1),
		maxPolar:     math.Pi,
		enablePan:    true,
		enableZoom:   true,
		enableRotate: true,
		scale:        1,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.listeners = []host.ListenerID{
		canvas.AddEventListener(host.PointerDown, o.onPointerDown),
		canvas.AddEventListener(host.PointerMove, o.onPointerMove),
		canvas.AddEventListener(host.PointerUp, o.onPointerUp),
		canvas.AddEventListener(host.PointerLeave, o.onPointerUp),
		canvas.AddEventListener(host.Wheel, o.onWheel),
	}
	o.camera.Target = o.target
	return o
}

func (o *Orbit) Target() mgl64.Vec3 {
	return o.target
}

// Distance is the current camera distance from the target.
func (o *Orbit) Distance() float64 {
	return o.camera.Position.Sub(o.target).Len()
}

func (o *Orbit) PanEnabled() bool {
	return o.enablePan
}

func (o *Orbit) DampingFactor() float64 {
	if !o.enableDamping {
		return 0
	}
	return o.dampingFactor
}

func (o *Orbit) onPointerDown(ev host.PointerEvent) {
	switch {
	case ev.Button == host.ButtonLeft && o.enableRotate:
		o.state = stateRotate
	case ev.Button == host.ButtonRight && o.enablePan:
		o.state = statePan
	default:
		return
	}
	o.lastX, o.lastY = ev.X, ev.Y
}

func (o *Orbit) onPointerMove(ev host.PointerEvent) {
	if o.state == stateNone {
		return
	}
	dx, dy := ev.X-o.lastX, ev.Y-o.lastY
	o.lastX, o.lastY = ev.X, ev.Y

	_, h := o.canvas.Size()
	if h <= 0 {
		return
	}
	switch o.state {
	case stateRotate:
		o.deltaTheta -= 2 * math.Pi * float64(dx) / float64(h) * o.rotateSpeed
		o.deltaPhi -= 2 * math.Pi * float64(dy) / float64(h) * o.rotateSpeed
	case statePan:
		o.pan(dx, dy, h)
	}
}

func (o *Orbit) onPointerUp(host.PointerEvent) {
	o.state = stateNone
}

func (o *Orbit) onWheel(ev host.PointerEvent) {
	if !o.enableZoom || o.state != stateNone {
		return
	}
	zoom := math.Pow(0.95, o.zoomSpeed)
	switch {
	case ev.DeltaY > 0:
		o.scale /= zoom
	case ev.DeltaY < 0:
		o.scale *= zoom
	}
}

// pan moves the target in the camera's view plane so the point under the
// pointer follows it.
func (o *Orbit) pan(dx, dy, height int) {
	offset := o.camera.Position.Sub(o.target)
	dist := offset.Len() * math.Tan(mgl64.DegToRad(o.camera.FOV/2))

	forward := o.camera.Forward()
	right := forward.Cross(o.camera.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(forward)

	k := 2 * dist / float64(height) * o.panSpeed
	o.panOffset = o.panOffset.
		Add(right.Mul(-float64(dx) * k)).
		Add(up.Mul(float64(dy) * k))
}

// Update applies pending motion to the camera and re-aims it at the target.
// It reports whether the camera moved.
func (o *Orbit) Update() bool {
	before := o.camera.Position

	offset := o.camera.Position.Sub(o.target)
	radius := offset.Len()
	theta := math.Atan2(offset[0], offset[2])
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(mgl64.Clamp(offset[1]/radius, -1, 1))
	}

	f := 1.0
	if o.enableDamping {
		f = o.dampingFactor
	}
	theta += o.deltaTheta * f
	phi += o.deltaPhi * f
	phi = mgl64.Clamp(phi, math.Max(o.minPolar, polarEpsilon), math.Min(o.maxPolar, math.Pi-polarEpsilon))
	radius = mgl64.Clamp(radius*o.scale, o.minDistance, o.maxDistance)
	o.target = o.target.Add(o.panOffset.Mul(f))

	sinPhi := math.Sin(phi)
	offset = mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
	o.camera.Position = o.target.Add(offset)
	o.camera.Target = o.target

	if o.enableDamping {
		o.deltaTheta *= 1 - f
		o.deltaPhi *= 1 - f
		o.panOffset = o.panOffset.Mul(1 - f)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = mgl64.Vec3{}
	}
	o.scale = 1

	return o.camera.Position.Sub(before).Len() > 1e-9
}

// Dispose removes the controller's listeners. It is safe to call twice.
func (o *Orbit) Dispose() {
	for _, id := range o.listeners {
		o.canvas.RemoveEventListener(id)
	}
	o.listeners = nil
	o.state = stateNone
}
