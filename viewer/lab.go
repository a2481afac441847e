package viewer

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/cubelab/engine"
	"github.com/smasonuk/cubelab/host"
	"github.com/smasonuk/cubelab/orientation"
	"github.com/smasonuk/cubelab/ui"
)

const (
	// Sensitivity is the default drag rotation in radians per pixel.
	Sensitivity = 0.01

	MinLightIntensity = 0.1
	MaxLightIntensity = 3.0
	LightStep         = 0.1

	panelWidth = 340
)

// LabOptions configures a Lab.
type LabOptions struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Sensitivity    float64 `yaml:"sensitivity"`
	LightIntensity float64 `yaml:"light_intensity"`
	Wireframe      bool    `yaml:"wireframe"`
}

func DefaultLabOptions() LabOptions {
	return LabOptions{
		Width:          800,
		Height:         600,
		Sensitivity:    Sensitivity,
		LightIntensity: 1,
	}
}

// session holds everything acquired by one Mount.
type session struct {
	root      *host.Element
	canvas    *host.Canvas
	renderer  *engine.Renderer
	scene     *engine.Scene
	camera    *engine.PerspectiveCamera
	mesh      *engine.Mesh
	listeners []host.ListenerID
	frame     host.FrameID
	drag      DragState
}

// Lab is the imperative viewer: a fixed camera looking at a cube the user
// rotates by dragging.
type Lab struct {
	env       Env
	opts      LabOptions
	intensity float64
	wireframe bool
	gen       *orientation.Generator

	s      *session
	panel  *ui.Panel
	slider *ui.Slider
	toggle *ui.Toggle
}

func NewLab(env Env, opts LabOptions) *Lab {
	if opts.Sensitivity == 0 {
		opts.Sensitivity = Sensitivity
	}
	l := &Lab{env: env.withDefaults(), opts: opts, wireframe: opts.Wireframe}
	l.intensity = clampIntensity(opts.LightIntensity)
	return l
}

// SetGenerator makes the orientation buttons draw from g instead of the global source.
func (l *Lab) SetGenerator(g *orientation.Generator) {
	l.gen = g
}

// Mount creates the renderer, scene and canvas inside root and starts the
// render loop. A nil root is ignored.
func (l *Lab) Mount(root *host.Element) error {
	if root == nil {
		return nil
	}
	if l.s != nil {
		return ErrAlreadyMounted
	}

	r, err := engine.NewRenderer(l.env.Surfaces, l.opts.Width, l.opts.Height,
		engine.WithPixelRatio(l.env.PixelRatio),
		engine.WithLineWidth(float32(math.Max(l.env.PixelRatio, 1))),
		engine.WithShadowMap(engine.PCFSoftShadowMap))
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	scene := engine.NewScene()
	scene.Background = engine.Hex(0x000000)

	light := engine.NewDirectionalLight(engine.Hex(0xffffff), l.intensity)
	light.Position = mgl64.Vec3{5, 5, 5}
	light.CastShadow = true

	mat := engine.NewStandardMaterial(engine.Hex(0xffffff))
	mat.Wireframe = l.wireframe
	mesh := engine.NewMesh(engine.NewBoxGeometry(2, 2, 2), mat)
	mesh.CastShadow = true

	scene.Add(engine.NewAmbientLight(engine.Hex(0x404040), 0.3), light, mesh)

	camera := engine.NewPerspectiveCamera(75, float64(l.opts.Width)/float64(l.opts.Height), 0.1, 1000)
	camera.SetPosition(3, 3, 5)
	camera.LookAt(0, 0, 0)

	canvas := host.NewCanvas(l.opts.Width, l.opts.Height, r.PixelRatio())
	canvas.SetSurface(r.Surface())
	root.AppendChild(canvas)

	s := &session{
		root:     root,
		canvas:   canvas,
		renderer: r,
		scene:    scene,
		camera:   camera,
		mesh:     mesh,
	}
	s.listeners = []host.ListenerID{
		canvas.AddEventListener(host.PointerDown, l.onPointerDown),
		canvas.AddEventListener(host.PointerMove, l.onPointerMove),
		canvas.AddEventListener(host.PointerUp, l.onPointerUp),
		canvas.AddEventListener(host.PointerLeave, l.onPointerUp),
	}
	l.s = s
	s.frame = l.env.Frames.Request(l.animate)

	log.Printf("lab: mounted %dx%d", l.opts.Width, l.opts.Height)
	return nil
}

func (l *Lab) animate(time.Duration) {
	s := l.s
	if s == nil {
		return
	}
	s.frame = l.env.Frames.Request(l.animate)
	if err := s.renderer.Render(s.scene, s.camera); err != nil {
		log.Printf("lab: render: %v", err)
	}
}

// Unmount stops the render loop, removes the listeners, detaches the canvas and
// releases the renderer. It does nothing when not mounted.
func (l *Lab) Unmount() {
	s := l.s
	if s == nil {
		return
	}
	l.s = nil

	for _, id := range s.listeners {
		s.canvas.RemoveEventListener(id)
	}
	l.env.Frames.Cancel(s.frame)
	s.root.RemoveChild(s.canvas)
	s.canvas.SetSurface(nil)
	s.renderer.Dispose()
	log.Printf("lab: unmounted after %d frames", s.renderer.Frames())
}

func (l *Lab) onPointerDown(ev host.PointerEvent) {
	if l.s != nil {
		l.s.drag.Press(ev.X, ev.Y)
	}
}

func (l *Lab) onPointerMove(ev host.PointerEvent) {
	s := l.s
	if s == nil {
		return
	}
	dx, dy, ok := s.drag.Move(ev.X, ev.Y)
	if !ok || s.mesh == nil {
		return
	}
	s.mesh.Rotation.Y += float64(dx) * l.opts.Sensitivity
	s.mesh.Rotation.X += float64(dy) * l.opts.Sensitivity
}

func (l *Lab) onPointerUp(host.PointerEvent) {
	if l.s != nil {
		l.s.drag.Release()
	}
}

func (l *Lab) setRotation(e orientation.Euler) {
	if l.s == nil || l.s.mesh == nil {
		return
	}
	l.s.mesh.Rotation = engine.Euler{X: e.Pitch, Y: e.Yaw, Z: e.Roll}
}

// RandomizeOrientation sets each axis to an independent angle in [0, 2π).
func (l *Lab) RandomizeOrientation() {
	l.setRotation(l.gen.RandomFullTurnEuler())
}

// ReadableOrientation poses the cube in a random three-quarter view.
func (l *Lab) ReadableOrientation() {
	l.setRotation(l.gen.RandomReadableEuler())
}

func (l *Lab) ResetOrientation() {
	if l.s == nil || l.s.mesh == nil {
		return
	}
	l.s.mesh.Rotation.Set(0, 0, 0)
}

func clampIntensity(v float64) float64 {
	return math.Min(math.Max(v, MinLightIntensity), MaxLightIntensity)
}

// SetLightIntensity clamps v to [0.1, 3.0] and applies it to the directional
// light from the next frame.
func (l *Lab) SetLightIntensity(v float64) {
	l.intensity = clampIntensity(v)
	if l.slider != nil {
		l.slider.SetValue(l.intensity)
	}
	if l.s == nil {
		return
	}
	if light := l.s.scene.DirectionalLight(); light != nil {
		light.Intensity = l.intensity
	}
}

func (l *Lab) LightIntensity() float64 {
	return l.intensity
}

func (l *Lab) SetWireframe(on bool) {
	l.wireframe = on
	if l.toggle != nil {
		l.toggle.IsOn = on
	}
	if l.s != nil && l.s.mesh != nil {
		l.s.mesh.Material.Wireframe = on
	}
}

// ToggleWireframe flips the wireframe flag and returns the new value.
func (l *Lab) ToggleWireframe() bool {
	l.SetWireframe(!l.wireframe)
	return l.wireframe
}

func (l *Lab) Wireframe() bool {
	return l.wireframe
}

// Rotation is the cube's current rotation, zero when not mounted.
func (l *Lab) Rotation() engine.Euler {
	if l.s == nil || l.s.mesh == nil {
		return engine.Euler{}
	}
	return l.s.mesh.Rotation
}

func (l *Lab) State() State {
	if l.s == nil {
		return Idle
	}
	return l.s.drag.State()
}

func (l *Lab) Mounted() bool {
	return l.s != nil
}

// Canvas returns the mounted canvas, or nil.
func (l *Lab) Canvas() *host.Canvas {
	if l.s == nil {
		return nil
	}
	return l.s.canvas
}

// Renderer returns the mounted renderer, or nil.
func (l *Lab) Renderer() *engine.Renderer {
	if l.s == nil {
		return nil
	}
	return l.s.renderer
}

// Surface returns the render target while mounted.
func (l *Lab) Surface() engine.Surface {
	if l.s == nil {
		return nil
	}
	return l.s.renderer.Surface()
}

// Panel returns the control panel, placed to the right of the canvas.
func (l *Lab) Panel() *ui.Panel {
	if l.panel != nil {
		return l.panel
	}
	p := ui.NewPanel(float32(l.opts.Width), 0, panelWidth,
		"3D Sketching Tool", "Click and drag to rotate the cube")
	p.AddSection("Orientation",
		ui.NewButton("Random Orientation", l.RandomizeOrientation),
		ui.NewButton("Readable Orientation", l.ReadableOrientation),
		ui.NewButton("Reset Orientation", l.ResetOrientation),
	)
	l.slider = ui.NewSlider("Light Intensity: %.1f",
		MinLightIntensity, MaxLightIntensity, LightStep, l.intensity, l.SetLightIntensity)
	p.AddSection("Lighting", l.slider)
	l.toggle = ui.NewToggle("Wireframe", l.wireframe, l.SetWireframe)
	p.AddSection("Display", l.toggle)
	l.panel = p
	return p
}
