// Package engine is a small software 3D renderer: a scene graph of lights and
// meshes, a perspective camera, and a renderer that paints BSP-ordered, flat-lit
// polygons onto a Surface.
package engine

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

// NewRotationMatrix returns a homogeneous rotation of theta radians about one axis.
func NewRotationMatrix(axis int, theta float64) mgl64.Mat4 {
	switch axis {
	case ROTX:
		return mgl64.HomogRotate3DX(theta)
	case ROTY:
		return mgl64.HomogRotate3DY(theta)
	case ROTZ:
		return mgl64.HomogRotate3DZ(theta)
	}
	return mgl64.Ident4()
}

// Euler is a rotation in radians applied in X, Y, Z order.
type Euler struct {
	X, Y, Z float64
}

// Set assigns all three angles.
func (e *Euler) Set(x, y, z float64) {
	e.X, e.Y, e.Z = x, y, z
}

// Matrix returns Rx * Ry * Rz.
func (e Euler) Matrix() mgl64.Mat4 {
	return NewRotationMatrix(ROTX, e.X).
		Mul4(NewRotationMatrix(ROTY, e.Y)).
		Mul4(NewRotationMatrix(ROTZ, e.Z))
}

// TransformPoint applies m to p as a position (w = 1).
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformNormal applies the rotation part of m to n and renormalises it.
func TransformNormal(m mgl64.Mat4, n mgl64.Vec3) mgl64.Vec3 {
	r := m.Mat3().Mul3x1(n)
	if r.Len() == 0 {
		return r
	}
	return r.Normalize()
}
