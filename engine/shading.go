package engine

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type rgb [3]float64

func toRGB(c color.RGBA) rgb {
	return rgb{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func (c rgb) scale(s float64) rgb {
	return rgb{c[0] * s, c[1] * s, c[2] * s}
}

func (c rgb) add(o rgb) rgb {
	return rgb{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

func (c rgb) mul(o rgb) rgb {
	return rgb{c[0] * o[0], c[1] * o[1], c[2] * o[2]}
}

func (c rgb) toRGBA(alpha uint8) color.RGBA {
	return color.RGBA{
		R: uint8(clamp(int(math.Round(c[0]*255)), 0, 255)),
		G: uint8(clamp(int(math.Round(c[1]*255)), 0, 255)),
		B: uint8(clamp(int(math.Round(c[2]*255)), 0, 255)),
		A: alpha,
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// lighting is the per-frame light setup shared by every face.
type lighting struct {
	ambient     rgb
	directional []*DirectionalLight
	casters     []*Mesh
	shadowMap   ShadowMap
}

func newLighting(s *Scene, shadowMap ShadowMap) *lighting {
	l := &lighting{shadowMap: shadowMap}
	for _, a := range s.AmbientLights() {
		l.ambient = l.ambient.add(toRGB(a.Color).scale(a.Intensity))
	}
	l.directional = s.DirectionalLights()
	for _, m := range s.Meshes(mgl64.Vec3{}) {
		if m.CastShadow {
			l.casters = append(l.casters, m)
		}
	}
	return l
}

// shade returns the lit colour of a face with world-space normal n and centre p,
// seen from eye. Diffuse is Lambert, specular is Blinn-Phong driven by roughness.
func (l *lighting) shade(mesh *Mesh, n, p, eye mgl64.Vec3) color.RGBA {
	mat := mesh.Material
	base := toRGB(mat.Color)

	roughness := math.Min(math.Max(mat.Roughness, 0), 1)
	metalness := math.Min(math.Max(mat.Metalness, 0), 1)
	shininess := 2 + 126*(1-roughness)*(1-roughness)
	specWeight := (1 - roughness) * 0.5
	specTint := rgb{1, 1, 1}.scale(1 - metalness).add(base.scale(metalness))

	viewDir := eye.Sub(p)
	if viewDir.Len() > 0 {
		viewDir = viewDir.Normalize()
	}

	var direct, spec rgb
	for _, light := range l.directional {
		dir := light.Direction()
		ndl := n.Dot(dir)
		if ndl <= 0 {
			continue
		}
		lc := toRGB(light.Color).scale(light.Intensity * l.shadowFactor(light, p, mesh))
		direct = direct.add(lc.scale(ndl))

		h := dir.Add(viewDir)
		if h.Len() > 0 {
			ndh := math.Max(n.Dot(h.Normalize()), 0)
			spec = spec.add(lc.mul(specTint).scale(math.Pow(ndh, shininess) * specWeight))
		}
	}

	out := base.mul(l.ambient.add(direct.scale(1 - metalness))).add(spec)
	return out.toRGBA(mat.Color.A)
}

// shadowFactor tests the path from p towards the light against the bounding
// spheres of shadow casters. 1 is fully lit.
func (l *lighting) shadowFactor(light *DirectionalLight, p mgl64.Vec3, receiver *Mesh) float64 {
	if !l.shadowMap.Enabled || !light.CastShadow || !receiver.ReceiveShadow {
		return 1
	}
	dir := light.Direction()
	lit := 1.0
	for _, c := range l.casters {
		if c == receiver {
			continue
		}
		centre, radius := c.BoundingSphere()
		toCentre := centre.Sub(p)
		t := toCentre.Dot(dir)
		if t <= 0 {
			continue
		}
		dist := toCentre.Sub(dir.Mul(t)).Len()
		lit = math.Min(lit, l.shadowMap.Type.coverage(dist, radius))
	}
	return lit
}

// coverage maps the distance between a light ray and a caster centre to light
// reaching the receiver.
func (t ShadowMapType) coverage(dist, radius float64) float64 {
	var penumbra float64
	switch t {
	case PCFShadowMap:
		penumbra = radius * 0.1
	case PCFSoftShadowMap:
		penumbra = radius * 0.3
	default:
		if dist < radius {
			return 0
		}
		return 1
	}
	return smoothstep(radius-penumbra, radius+penumbra, dist)
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := math.Min(math.Max((x-edge0)/(edge1-edge0), 0), 1)
	return t * t * (3 - 2*t)
}
