package engine

import "github.com/go-gl/mathgl/mgl64"

// BspNode orders a mesh's faces for painting. Left holds faces behind the node's
// plane, Right the faces in front of it.
type BspNode struct {
	Face  *Face
	Left  *BspNode
	Right *BspNode
}

func createBspTree(faces []*Face) *BspNode {
	if len(faces) == 0 {
		return nil
	}

	parentFace, remaining := choosePlane(faces)
	parent := &BspNode{Face: parentFace}
	plane := parentFace.Plane()

	var left, right []*Face
	for _, f := range remaining {
		if plane.FaceIntersect(f) {
			back, front := plane.SplitFace(f)
			if back != nil {
				left = append(left, back)
			}
			if front != nil {
				right = append(right, front)
			}
			continue
		}
		if plane.Where(f) <= 0 {
			left = append(left, f)
		} else {
			right = append(right, f)
		}
	}

	parent.Left = createBspTree(left)
	parent.Right = createBspTree(right)
	return parent
}

// choosePlane picks the face whose plane splits the fewest others.
func choosePlane(faces []*Face) (*Face, []*Face) {
	best, bestSplits := 0, len(faces)
	for i, candidate := range faces {
		splits := 0
		p := candidate.Plane()
		for j, f := range faces {
			if i != j && p.FaceIntersect(f) {
				splits++
			}
		}
		if splits < bestSplits {
			best, bestSplits = i, splits
			if splits == 0 {
				break
			}
		}
	}

	rest := make([]*Face, 0, len(faces)-1)
	rest = append(rest, faces[:best]...)
	rest = append(rest, faces[best+1:]...)
	return faces[best], rest
}

// Walk visits faces back to front as seen from eye (model space). facing is false
// for faces whose front side points away from the eye.
func (b *BspNode) Walk(eye mgl64.Vec3, visit func(f *Face, facing bool)) {
	if b == nil {
		return
	}
	if b.Face.Plane().PointOnPlane(eye) > 0 {
		b.Left.Walk(eye, visit)
		visit(b.Face, true)
		b.Right.Walk(eye, visit)
		return
	}
	b.Right.Walk(eye, visit)
	visit(b.Face, false)
	b.Left.Walk(eye, visit)
}

// Count returns the number of faces in the tree.
func (b *BspNode) Count() int {
	if b == nil {
		return 0
	}
	return 1 + b.Left.Count() + b.Right.Count()
}
