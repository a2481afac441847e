package engine

import "github.com/go-gl/mathgl/mgl64"

// clipPolygonAgainstNearPlane keeps the part of a camera-space polygon that lies
// in front of the near plane (z <= -near).
func clipPolygonAgainstNearPlane(points []mgl64.Vec3, near float64) []mgl64.Vec3 {
	if len(points) == 0 {
		return nil
	}
	inside := func(p mgl64.Vec3) bool { return p[2] <= -near }

	out := make([]mgl64.Vec3, 0, len(points)+1)
	prev := points[len(points)-1]
	prevIn := inside(prev)
	for _, cur := range points {
		curIn := inside(cur)
		if curIn != prevIn {
			out = append(out, intersectNearPlane(prev, cur, near))
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// intersectNearPlane returns the point on segment a-b where z == -near.
func intersectNearPlane(a, b mgl64.Vec3, near float64) mgl64.Vec3 {
	t := (-near - a[2]) / (b[2] - a[2])
	return a.Add(b.Sub(a).Mul(t))
}
