package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is Ax + By + Cz + D = 0.
type Plane struct {
	A, B, C, D float64
}

// points closer than this are treated as lying on the plane
const planeThickness = 1e-6

func NewPlane(point, normal mgl64.Vec3) *Plane {
	return &Plane{
		A: normal[0],
		B: normal[1],
		C: normal[2],
		D: -normal.Dot(point),
	}
}

// PointOnPlane returns the signed distance of p, snapped to 0 within planeThickness.
func (p *Plane) PointOnPlane(pt mgl64.Vec3) float64 {
	d := p.A*pt[0] + p.B*pt[1] + p.C*pt[2] + p.D
	if math.Abs(d) < planeThickness {
		return 0
	}
	return d
}

// Where sums the signed distances of a face's points; the sign says which side
// the face lies on.
func (p *Plane) Where(f *Face) float64 {
	var total float64
	for _, pt := range f.Points {
		total += p.PointOnPlane(pt)
	}
	return total
}

// FaceIntersect reports whether the face has points strictly on both sides.
func (p *Plane) FaceIntersect(f *Face) bool {
	var front, back bool
	for _, pt := range f.Points {
		d := p.PointOnPlane(pt)
		if d > 0 {
			front = true
		} else if d < 0 {
			back = true
		}
		if front && back {
			return true
		}
	}
	return false
}

func (p *Plane) lineIntersect(a, b mgl64.Vec3) mgl64.Vec3 {
	da := p.PointOnPlane(a)
	db := p.PointOnPlane(b)
	t := da / (da - db)
	return a.Add(b.Sub(a).Mul(t))
}

// SplitFace cuts f into the part behind the plane and the part in front of it.
// A face that does not straddle the plane comes back whole in the slot for its side.
func (p *Plane) SplitFace(f *Face) (back, front *Face) {
	if !p.FaceIntersect(f) {
		if p.Where(f) > 0 {
			return nil, f
		}
		return f, nil
	}

	var backPts, frontPts []mgl64.Vec3
	n := len(f.Points)
	for i := 0; i < n; i++ {
		a := f.Points[i]
		b := f.Points[(i+1)%n]
		da := p.PointOnPlane(a)
		db := p.PointOnPlane(b)

		switch {
		case da == 0:
			backPts = append(backPts, a)
			frontPts = append(frontPts, a)
		case da < 0:
			backPts = append(backPts, a)
		default:
			frontPts = append(frontPts, a)
		}

		if (da < 0 && db > 0) || (da > 0 && db < 0) {
			x := p.lineIntersect(a, b)
			backPts = append(backPts, x)
			frontPts = append(frontPts, x)
		}
	}

	if len(backPts) >= 3 {
		back = newFaceWithNormal(backPts, f.normal)
	}
	if len(frontPts) >= 3 {
		front = newFaceWithNormal(frontPts, f.normal)
	}
	return back, front
}
