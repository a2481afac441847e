package engine

import "github.com/go-gl/mathgl/mgl64"

// Face is a convex planar polygon in model space.
type Face struct {
	Points []mgl64.Vec3
	normal mgl64.Vec3
	plane  *Plane
}

// NewFace builds a face from counter-clockwise points; the normal follows the
// right-hand rule.
func NewFace(points ...mgl64.Vec3) *Face {
	f := &Face{Points: points}
	f.createNormal()
	return f
}

// newFaceWithNormal keeps an existing normal, used for fragments of a split face.
func newFaceWithNormal(points []mgl64.Vec3, normal mgl64.Vec3) *Face {
	return &Face{Points: points, normal: normal}
}

func (f *Face) Normal() mgl64.Vec3 {
	return f.normal
}

func (f *Face) createNormal() {
	if len(f.Points) < 3 {
		f.normal = mgl64.Vec3{0, 0, 1}
		return
	}
	u := f.Points[1].Sub(f.Points[0])
	v := f.Points[2].Sub(f.Points[1])
	n := u.Cross(v)
	if n.Len() == 0 {
		f.normal = mgl64.Vec3{0, 0, 1}
		return
	}
	f.normal = n.Normalize()
}

// Plane returns the face's supporting plane, computed once.
func (f *Face) Plane() *Plane {
	if f.plane == nil {
		f.plane = NewPlane(f.Points[0], f.normal)
	}
	return f.plane
}

// MidPoint is the average of the face's points.
func (f *Face) MidPoint() mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(f.Points) == 0 {
		return sum
	}
	for _, p := range f.Points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(f.Points)))
}
