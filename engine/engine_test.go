package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vecAlmostEqual(a, b mgl64.Vec3) bool {
	return almostEqual(a[0], b[0]) && almostEqual(a[1], b[1]) && almostEqual(a[2], b[2])
}

func deepAlmostEqual(a, b []mgl64.Vec3) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !vecAlmostEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestEulerMatrix(t *testing.T) {
	testCases := []struct {
		name  string
		euler Euler
		in    mgl64.Vec3
		want  mgl64.Vec3
	}{
		{"identity", Euler{}, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}},
		{"yaw quarter turn", Euler{Y: math.Pi / 2}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{"pitch quarter turn", Euler{X: math.Pi / 2}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"roll quarter turn", Euler{Z: math.Pi / 2}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		// z is applied first, then y, then x
		{"xyz order", Euler{X: math.Pi / 2, Z: math.Pi / 2}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TransformPoint(tc.euler.Matrix(), tc.in)
			if !vecAlmostEqual(got, tc.want) {
				t.Errorf("rotate %v by %+v = %v, want %v", tc.in, tc.euler, got, tc.want)
			}
		})
	}
}

func TestClipPolygonAgainstNearPlane(t *testing.T) {
	const near = 1.0
	testCases := []struct {
		name     string
		input    []mgl64.Vec3
		expected []mgl64.Vec3
	}{
		{
			name:     "Polygon fully in front of near plane",
			input:    []mgl64.Vec3{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}},
			expected: []mgl64.Vec3{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}},
		},
		{
			name:     "Polygon fully behind near plane",
			input:    []mgl64.Vec3{{0, 0, 5}, {1, 0, 5}, {0, 1, 5}},
			expected: []mgl64.Vec3{},
		},
		{
			name:  "Polygon crossing near plane",
			input: []mgl64.Vec3{{0, 0, -3}, {2, 0, -3}, {2, 0, 1}, {0, 0, 1}},
			expected: []mgl64.Vec3{
				{0, 0, -1}, {0, 0, -3}, {2, 0, -3}, {2, 0, -1},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clipped := clipPolygonAgainstNearPlane(tc.input, near)
			if !deepAlmostEqual(clipped, tc.expected) {
				t.Errorf("clipPolygonAgainstNearPlane() = %v, want %v", clipped, tc.expected)
			}
		})
	}
}

func TestIntersectNearPlane(t *testing.T) {
	got := intersectNearPlane(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 4, -4}, 1)
	if want := (mgl64.Vec3{0, 1, -1}); !vecAlmostEqual(got, want) {
		t.Errorf("intersectNearPlane() = %v, want %v", got, want)
	}
}

func TestSplitFace(t *testing.T) {
	quad := NewFace(
		mgl64.Vec3{-1, -1, 0},
		mgl64.Vec3{1, -1, 0},
		mgl64.Vec3{1, 1, 0},
		mgl64.Vec3{-1, 1, 0},
	)
	plane := NewPlane(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})

	if !plane.FaceIntersect(quad) {
		t.Fatal("expected the x=0 plane to cut the quad")
	}
	back, front := plane.SplitFace(quad)
	if back == nil || front == nil {
		t.Fatalf("SplitFace() = %v, %v; want two fragments", back, front)
	}
	for _, p := range back.Points {
		if p[0] > 0 {
			t.Errorf("back fragment has point %v in front of the plane", p)
		}
	}
	for _, p := range front.Points {
		if p[0] < 0 {
			t.Errorf("front fragment has point %v behind the plane", p)
		}
	}
	if !vecAlmostEqual(back.Normal(), quad.Normal()) || !vecAlmostEqual(front.Normal(), quad.Normal()) {
		t.Error("fragments should keep the parent normal")
	}

	whole := NewFace(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{3, 0, 0}, mgl64.Vec3{3, 1, 0})
	if b, f := plane.SplitFace(whole); b != nil || f != whole {
		t.Errorf("face in front should come back whole, got %v, %v", b, f)
	}
}

func TestBoxNormalsPointOutwards(t *testing.T) {
	g := NewBoxGeometry(2, 2, 2)
	if len(g.Faces()) != 6 {
		t.Fatalf("box has %d faces, want 6", len(g.Faces()))
	}
	for _, f := range g.Faces() {
		if d := f.Normal().Dot(f.MidPoint()); d <= 0 {
			t.Errorf("face at %v has inward normal %v", f.MidPoint(), f.Normal())
		}
	}
	if g.Root().Count() != 6 {
		t.Errorf("bsp tree has %d nodes, want 6 (a box needs no splits)", g.Root().Count())
	}
	if !almostEqual(g.Radius(), math.Sqrt(3)) {
		t.Errorf("Radius() = %v, want √3", g.Radius())
	}
}

func TestBspWalkOrder(t *testing.T) {
	g := NewBoxGeometry(2, 2, 2)
	testCases := []struct {
		name   string
		eye    mgl64.Vec3
		facing int
	}{
		{"front", mgl64.Vec3{0, 0, 5}, 1},
		{"edge", mgl64.Vec3{5, 0, 5}, 2},
		{"three quarter", mgl64.Vec3{3, 3, 5}, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var visited, facing int
			g.Root().Walk(tc.eye, func(f *Face, front bool) {
				visited++
				toEye := tc.eye.Sub(f.MidPoint())
				if front {
					facing++
					if f.Normal().Dot(toEye) <= 0 {
						t.Errorf("face at %v reported facing but points away", f.MidPoint())
					}
				} else if f.Normal().Dot(toEye) > 0 {
					t.Errorf("face at %v reported hidden but points at the eye", f.MidPoint())
				}
			})
			if visited != 6 {
				t.Errorf("visited %d faces, want 6", visited)
			}
			if facing != tc.facing {
				t.Errorf("%d faces facing the eye, want %d", facing, tc.facing)
			}
		})
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewPerspectiveCamera(45, 1, 0.1, 100)
	cam.SetPosition(0, 0, 5)
	cam.LookAt(0, 0, 0)

	x, y, ok := cam.Project(mgl64.Vec3{}, 100, 100)
	if !ok || !almostEqual(x, 50) || !almostEqual(y, 50) {
		t.Errorf("Project(target) = (%v, %v, %v), want centre", x, y, ok)
	}

	x, y, ok = cam.Project(mgl64.Vec3{1, 1, 1}, 100, 100)
	if !ok || x <= 50 || y >= 50 {
		t.Errorf("Project(+x,+y) = (%v, %v), want right of and above centre", x, y)
	}

	if _, _, ok := cam.Project(mgl64.Vec3{0, 0, 10}, 100, 100); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestParseHexColor(t *testing.T) {
	testCases := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#0b0b0b", 0x0b0b0b, false},
		{"d9d9d9", 0xd9d9d9, false},
		{"0x404040", 0x404040, false},
		{"#fff", 0xffffff, false},
		{"#12345", 0, true},
		{"#zzzzzz", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHexColor(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got != Hex(tc.want) {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tc.in, got, Hex(tc.want))
			}
		})
	}
}

func TestSceneAddRemove(t *testing.T) {
	s := NewScene()
	light := NewDirectionalLight(Hex(0xffffff), 1)
	mesh := NewMesh(NewBoxGeometry(1, 1, 1), NewStandardMaterial(Hex(0xffffff)))
	s.Add(NewAmbientLight(Hex(0x404040), 0.3), light, mesh, mesh)

	if n := len(s.Children()); n != 3 {
		t.Fatalf("scene has %d children, want 3", n)
	}
	if s.DirectionalLight() != light {
		t.Error("DirectionalLight() did not find the light")
	}
	if !s.Remove(mesh) || s.Remove(mesh) {
		t.Error("Remove should succeed once")
	}
	if len(s.Meshes(mgl64.Vec3{})) != 0 {
		t.Error("mesh still listed after Remove")
	}
}
