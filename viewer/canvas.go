package viewer

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/cubelab/controls"
	"github.com/smasonuk/cubelab/engine"
	"github.com/smasonuk/cubelab/host"
)

type LightDescription struct {
	Color     string     `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Position  [3]float64 `yaml:"position"`
}

type BoxDescription struct {
	Size      [3]float64 `yaml:"size"`
	Position  [3]float64 `yaml:"position"`
	Color     string     `yaml:"color"`
	Roughness float64    `yaml:"roughness"`
	Metalness float64    `yaml:"metalness"`
}

type CameraDescription struct {
	FOV      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
}

type ControlsDescription struct {
	EnablePan     bool    `yaml:"enable_pan"`
	EnableZoom    bool    `yaml:"enable_zoom"`
	EnableRotate  bool    `yaml:"enable_rotate"`
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	RotateSpeed   float64 `yaml:"rotate_speed"`
	ZoomSpeed     float64 `yaml:"zoom_speed"`
	PanSpeed      float64 `yaml:"pan_speed"`
}

// Description declares the SceneCanvas scene. Colours are hex strings.
type Description struct {
	Width       int                 `yaml:"width"`
	Height      int                 `yaml:"height"`
	Background  string              `yaml:"background"`
	Ambient     LightDescription    `yaml:"ambient"`
	Directional LightDescription    `yaml:"directional"`
	Box         BoxDescription      `yaml:"box"`
	Camera      CameraDescription   `yaml:"camera"`
	DPR         [2]float64          `yaml:"dpr"`
	Controls    ControlsDescription `yaml:"controls"`
}

// DefaultDescription is a dark backdrop, one soft grey cube and orbit controls
// that rotate and zoom but do not pan.
func DefaultDescription() Description {
	return Description{
		Width:       800,
		Height:      600,
		Background:  "#0b0b0b",
		Ambient:     LightDescription{Color: "#ffffff", Intensity: 0.25},
		Directional: LightDescription{Color: "#ffffff", Intensity: 1.2, Position: [3]float64{3, 4, 2}},
		Box: BoxDescription{
			Size:      [3]float64{1, 1, 1},
			Color:     "#d9d9d9",
			Roughness: 0.7,
		},
		Camera: CameraDescription{
			FOV:      45,
			Near:     0.1,
			Far:      1000,
			Position: [3]float64{0, 0.8, 3.2},
		},
		DPR: [2]float64{1, 2},
		Controls: ControlsDescription{
			EnableZoom:    true,
			EnableRotate:  true,
			EnableDamping: true,
			DampingFactor: 0.05,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			PanSpeed:      1,
		},
	}
}

// PixelRatio clamps the device pixel ratio to the description's range.
func (d Description) PixelRatio(device float64) float64 {
	lo, hi := d.DPR[0], d.DPR[1]
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(device, lo), hi)
}

// build turns the description into engine objects.
func (d Description) build() (*engine.Scene, *engine.PerspectiveCamera, *engine.Mesh, error) {
	bg, err := engine.ParseHexColor(d.Background)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("background: %w", err)
	}
	ambientColor, err := engine.ParseHexColor(d.Ambient.Color)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ambient light: %w", err)
	}
	directionalColor, err := engine.ParseHexColor(d.Directional.Color)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("directional light: %w", err)
	}
	boxColor, err := engine.ParseHexColor(d.Box.Color)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("box: %w", err)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return nil, nil, nil, fmt.Errorf("canvas %dx%d: %w", d.Width, d.Height, engine.ErrInvalidSize)
	}

	scene := engine.NewScene()
	scene.Background = bg

	light := engine.NewDirectionalLight(directionalColor, d.Directional.Intensity)
	light.Position = d.Directional.Position

	mat := engine.NewStandardMaterial(boxColor)
	mat.Roughness = d.Box.Roughness
	mat.Metalness = d.Box.Metalness
	size := d.Box.Size
	mesh := engine.NewMesh(engine.NewBoxGeometry(size[0], size[1], size[2]), mat)
	mesh.Position = d.Box.Position

	scene.Add(engine.NewAmbientLight(ambientColor, d.Ambient.Intensity), light, mesh)

	c := d.Camera
	camera := engine.NewPerspectiveCamera(c.FOV, float64(d.Width)/float64(d.Height), c.Near, c.Far)
	camera.Position = c.Position
	camera.Target = c.Target
	return scene, camera, mesh, nil
}

func (d Description) orbitOptions() []controls.Option {
	c := d.Controls
	damping := 0.0
	if c.EnableDamping {
		damping = c.DampingFactor
	}
	opts := []controls.Option{
		controls.WithTarget(d.Camera.Target),
		controls.WithPan(c.EnablePan),
		controls.WithZoom(c.EnableZoom),
		controls.WithRotate(c.EnableRotate),
		controls.WithDamping(damping),
	}
	// zero speeds keep the controller defaults
	if c.RotateSpeed > 0 {
		opts = append(opts, controls.WithRotateSpeed(c.RotateSpeed))
	}
	if c.ZoomSpeed > 0 {
		opts = append(opts, controls.WithZoomSpeed(c.ZoomSpeed))
	}
	if c.PanSpeed > 0 {
		opts = append(opts, controls.WithPanSpeed(c.PanSpeed))
	}
	return opts
}

type canvasSession struct {
	root     *host.Element
	canvas   *host.Canvas
	renderer *engine.Renderer
	scene    *engine.Scene
	camera   *engine.PerspectiveCamera
	mesh     *engine.Mesh
	orbit    *controls.Orbit
	frame    host.FrameID
}

// SceneCanvas is the declarative viewer. It has no pointer logic of its own;
// the orbit controls own all interaction.
type SceneCanvas struct {
	env  Env
	desc Description
	s    *canvasSession
}

func NewSceneCanvas(env Env, desc Description) *SceneCanvas {
	return &SceneCanvas{env: env.withDefaults(), desc: desc}
}

func (c *SceneCanvas) Mount(root *host.Element) error {
	if root == nil {
		return nil
	}
	if c.s != nil {
		return ErrAlreadyMounted
	}

	scene, camera, mesh, err := c.desc.build()
	if err != nil {
		return fmt.Errorf("scene description: %w", err)
	}
	ratio := c.desc.PixelRatio(c.env.PixelRatio)
	r, err := engine.NewRenderer(c.env.Surfaces, c.desc.Width, c.desc.Height,
		engine.WithPixelRatio(ratio))
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	canvas := host.NewCanvas(c.desc.Width, c.desc.Height, ratio)
	canvas.SetSurface(r.Surface())
	root.AppendChild(canvas)

	c.s = &canvasSession{
		root:     root,
		canvas:   canvas,
		renderer: r,
		scene:    scene,
		camera:   camera,
		mesh:     mesh,
		orbit:    controls.New(camera, canvas, c.desc.orbitOptions()...),
	}
	c.s.frame = c.env.Frames.Request(c.animate)

	log.Printf("canvas: mounted %dx%d at pixel ratio %.2f", c.desc.Width, c.desc.Height, ratio)
	return nil
}

func (c *SceneCanvas) animate(time.Duration) {
	s := c.s
	if s == nil {
		return
	}
	s.frame = c.env.Frames.Request(c.animate)
	s.orbit.Update()
	if err := s.renderer.Render(s.scene, s.camera); err != nil {
		log.Printf("canvas: render: %v", err)
	}
}

func (c *SceneCanvas) Unmount() {
	s := c.s
	if s == nil {
		return
	}
	c.s = nil

	s.orbit.Dispose()
	c.env.Frames.Cancel(s.frame)
	s.root.RemoveChild(s.canvas)
	s.canvas.SetSurface(nil)
	s.renderer.Dispose()
	log.Printf("canvas: unmounted after %d frames", s.renderer.Frames())
}

func (c *SceneCanvas) Mounted() bool {
	return c.s != nil
}

func (c *SceneCanvas) Canvas() *host.Canvas {
	if c.s == nil {
		return nil
	}
	return c.s.canvas
}

func (c *SceneCanvas) Renderer() *engine.Renderer {
	if c.s == nil {
		return nil
	}
	return c.s.renderer
}

func (c *SceneCanvas) Surface() engine.Surface {
	if c.s == nil {
		return nil
	}
	return c.s.renderer.Surface()
}

func (c *SceneCanvas) Camera() *engine.PerspectiveCamera {
	if c.s == nil {
		return nil
	}
	return c.s.camera
}

func (c *SceneCanvas) Controls() *controls.Orbit {
	if c.s == nil {
		return nil
	}
	return c.s.orbit
}

// CameraPosition is a convenience for callers that only need where the camera is.
func (c *SceneCanvas) CameraPosition() mgl64.Vec3 {
	if c.s == nil {
		return c.desc.Camera.Position
	}
	return c.s.camera.Position
}
