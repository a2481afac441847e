package engine

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Object is anything that can be added to a Scene.
type Object interface {
	object()
}

type node struct{}

func (node) object() {}

// StandardMaterial is a lit material with an optional wireframe mode.
type StandardMaterial struct {
	Color     color.RGBA
	Wireframe bool
	Roughness float64
	Metalness float64
}

// NewStandardMaterial returns a fully rough, non-metallic material.
func NewStandardMaterial(c color.RGBA) *StandardMaterial {
	return &StandardMaterial{Color: c, Roughness: 1}
}

// Mesh places a geometry with a material in the scene.
type Mesh struct {
	node
	Geometry      *Geometry
	Material      *StandardMaterial
	Position      mgl64.Vec3
	Rotation      Euler
	Scale         mgl64.Vec3
	CastShadow    bool
	ReceiveShadow bool
}

func NewMesh(g *Geometry, m *StandardMaterial) *Mesh {
	return &Mesh{
		Geometry: g,
		Material: m,
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// ModelMatrix is translation * rotation * scale.
func (m *Mesh) ModelMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(m.Position[0], m.Position[1], m.Position[2]).
		Mul4(m.Rotation.Matrix()).
		Mul4(mgl64.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2]))
}

// BoundingSphere returns the world-space bounding sphere.
func (m *Mesh) BoundingSphere() (mgl64.Vec3, float64) {
	if m.Geometry == nil {
		return m.Position, 0
	}
	s := math.Max(math.Abs(m.Scale[0]), math.Max(math.Abs(m.Scale[1]), math.Abs(m.Scale[2])))
	return m.Position, m.Geometry.Radius() * s
}

// AmbientLight lights every face equally.
type AmbientLight struct {
	node
	Color     color.RGBA
	Intensity float64
}

func NewAmbientLight(c color.RGBA, intensity float64) *AmbientLight {
	return &AmbientLight{Color: c, Intensity: intensity}
}

// DirectionalLight shines from Position towards Target.
type DirectionalLight struct {
	node
	Color      color.RGBA
	Intensity  float64
	Position   mgl64.Vec3
	Target     mgl64.Vec3
	CastShadow bool
}

func NewDirectionalLight(c color.RGBA, intensity float64) *DirectionalLight {
	return &DirectionalLight{Color: c, Intensity: intensity, Position: mgl64.Vec3{0, 1, 0}}
}

// Direction is the unit vector from the target towards the light.
func (l *DirectionalLight) Direction() mgl64.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// Scene holds the lights and meshes drawn by a Renderer.
type Scene struct {
	Background color.RGBA
	children   []Object
}

func NewScene() *Scene {
	return &Scene{Background: color.RGBA{A: 255}}
}

// Add appends objects; an object already in the scene is not added twice.
func (s *Scene) Add(objs ...Object) {
	for _, o := range objs {
		if o == nil || s.indexOf(o) >= 0 {
			continue
		}
		s.children = append(s.children, o)
	}
}

// Remove detaches o and reports whether it was present.
func (s *Scene) Remove(o Object) bool {
	i := s.indexOf(o)
	if i < 0 {
		return false
	}
	s.children = append(s.children[:i], s.children[i+1:]...)
	return true
}

func (s *Scene) indexOf(o Object) int {
	for i, c := range s.children {
		if c == o {
			return i
		}
	}
	return -1
}

func (s *Scene) Children() []Object {
	return s.children
}

// Meshes returns the scene's meshes sorted farthest first from eye.
func (s *Scene) Meshes(eye mgl64.Vec3) []*Mesh {
	var meshes []*Mesh
	for _, c := range s.children {
		if m, ok := c.(*Mesh); ok {
			meshes = append(meshes, m)
		}
	}
	sort.SliceStable(meshes, func(i, j int) bool {
		return meshes[i].Position.Sub(eye).Len() > meshes[j].Position.Sub(eye).Len()
	})
	return meshes
}

// DirectionalLight returns the first directional light, or nil.
func (s *Scene) DirectionalLight() *DirectionalLight {
	for _, c := range s.children {
		if l, ok := c.(*DirectionalLight); ok {
			return l
		}
	}
	return nil
}

// AmbientLights returns every ambient light in the scene.
func (s *Scene) AmbientLights() []*AmbientLight {
	var out []*AmbientLight
	for _, c := range s.children {
		if l, ok := c.(*AmbientLight); ok {
			out = append(out, l)
		}
	}
	return out
}

// DirectionalLights returns every directional light in the scene.
func (s *Scene) DirectionalLights() []*DirectionalLight {
	var out []*DirectionalLight
	for _, c := range s.children {
		if l, ok := c.(*DirectionalLight); ok {
			out = append(out, l)
		}
	}
	return out
}
