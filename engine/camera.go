package engine

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera projects the scene with a vertical field of view in degrees.
type PerspectiveCamera struct {
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl64.Vec3{0, 0, -1},
		Up:     mgl64.Vec3{0, 1, 0},
	}
}

func (c *PerspectiveCamera) SetPosition(x, y, z float64) {
	c.Position = mgl64.Vec3{x, y, z}
}

// LookAt aims the camera at a world-space point.
func (c *PerspectiveCamera) LookAt(x, y, z float64) {
	c.Target = mgl64.Vec3{x, y, z}
}

// ViewMatrix transforms world space into camera space (camera looks down -Z).
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix is the perspective projection to clip space.
func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Forward is the unit view direction.
func (c *PerspectiveCamera) Forward() mgl64.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// Project maps a world-space point to surface pixels. ok is false for points
// behind the near plane.
func (c *PerspectiveCamera) Project(p mgl64.Vec3, width, height int) (x, y float64, ok bool) {
	view := TransformPoint(c.ViewMatrix(), p)
	if -view[2] < c.Near {
		return 0, 0, false
	}
	sx, sy := c.projectView(c.ProjectionMatrix(), view, width, height)
	return sx, sy, true
}

func (c *PerspectiveCamera) projectView(proj mgl64.Mat4, view mgl64.Vec3, width, height int) (float64, float64) {
	clip := proj.Mul4x1(view.Vec4(1))
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return (ndcX + 1) / 2 * float64(width), (1 - ndcY) / 2 * float64(height)
}
