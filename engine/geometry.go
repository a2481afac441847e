package engine

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an immutable set of faces with a prebuilt BSP tree.
type Geometry struct {
	faces  []*Face
	root   *BspNode
	radius float64
}

// NewGeometry builds the BSP tree for faces. Faces may be split while building.
func NewGeometry(faces []*Face) *Geometry {
	g := &Geometry{faces: faces}
	g.root = createBspTree(faces)
	for _, f := range faces {
		for _, p := range f.Points {
			if l := p.Len(); l > g.radius {
				g.radius = l
			}
		}
	}
	log.Printf("geometry: %d faces, %d bsp nodes", len(faces), g.root.Count())
	return g
}

// NewBoxGeometry returns a box centred on the origin.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	x, y, z := width/2, height/2, depth/2
	v := [8]mgl64.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	quads := [][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	faces := make([]*Face, 0, len(quads))
	for _, q := range quads {
		faces = append(faces, NewFace(v[q[0]], v[q[1]], v[q[2]], v[q[3]]))
	}
	return NewGeometry(faces)
}

// Faces returns the faces the geometry was built from.
func (g *Geometry) Faces() []*Face {
	return g.faces
}

// Root is the BSP tree used for painting.
func (g *Geometry) Root() *BspNode {
	return g.root
}

// Radius of the bounding sphere around the model-space origin.
func (g *Geometry) Radius() float64 {
	return g.radius
}
