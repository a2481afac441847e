package engine

import (
	"errors"
	"image/color"
	"testing"
)

func cubeScene(intensity float64, wireframe bool) (*Scene, *PerspectiveCamera, *Mesh) {
	scene := NewScene()
	light := NewDirectionalLight(Hex(0xffffff), intensity)
	light.Position = [3]float64{0, 0, 5}
	mat := NewStandardMaterial(Hex(0xffffff))
	mat.Wireframe = wireframe
	cube := NewMesh(NewBoxGeometry(2, 2, 2), mat)
	scene.Add(NewAmbientLight(Hex(0x404040), 0.3), light, cube)

	cam := NewPerspectiveCamera(45, 1, 0.1, 1000)
	cam.SetPosition(0, 0, 5)
	cam.LookAt(0, 0, 0)
	return scene, cam, cube
}

func TestRendererDrawCalls(t *testing.T) {
	testCases := []struct {
		name      string
		wireframe bool
		fills     int
		strokes   int
	}{
		// three faces are visible from (3,3,5)
		{"solid", false, 3, 0},
		// every face, two triangles each
		{"wireframe", true, 0, 12},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var surface *recordingSurface
			r, err := NewRenderer(recordingSurfaces(&surface), 100, 100)
			if err != nil {
				t.Fatalf("NewRenderer() error = %v", err)
			}
			scene, cam, _ := cubeScene(1, tc.wireframe)
			cam.SetPosition(3, 3, 5)

			if err := r.Render(scene, cam); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if surface.fills != tc.fills || surface.strokes != tc.strokes {
				t.Errorf("fills=%d strokes=%d, want %d and %d", surface.fills, surface.strokes, tc.fills, tc.strokes)
			}
			if len(surface.clears) != 1 || surface.clears[0] != scene.Background {
				t.Errorf("clears = %v, want one clear to the background", surface.clears)
			}
			if r.Frames() != 1 {
				t.Errorf("Frames() = %d, want 1", r.Frames())
			}
		})
	}
}

func TestRendererPixelRatio(t *testing.T) {
	var surface *recordingSurface
	r, err := NewRenderer(recordingSurfaces(&surface), 100, 50, WithPixelRatio(2))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if w, h := surface.Size(); w != 200 || h != 100 {
		t.Errorf("surface is %dx%d, want 200x100", w, h)
	}
	if w, h := r.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %dx%d, want 100x50", w, h)
	}
}

func TestNewRendererErrors(t *testing.T) {
	if _, err := NewRenderer(RasterSurfaces, 0, 100); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width: error = %v, want ErrInvalidSize", err)
	}

	boom := errors.New("no context")
	failing := func(int, int) (Surface, error) { return nil, boom }
	if _, err := NewRenderer(failing, 10, 10); !errors.Is(err, boom) {
		t.Errorf("factory failure: error = %v, want it wrapped", err)
	}
}

func TestRendererDispose(t *testing.T) {
	var surface *recordingSurface
	r, err := NewRenderer(recordingSurfaces(&surface), 10, 10)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	r.Dispose()
	r.Dispose()

	if !surface.disposed || !r.Disposed() {
		t.Error("Dispose should release the surface")
	}
	scene, cam, _ := cubeScene(1, false)
	if err := r.Render(scene, cam); !errors.Is(err, ErrDisposed) {
		t.Errorf("Render() after Dispose error = %v, want ErrDisposed", err)
	}
}

func renderRaster(t *testing.T, intensity float64, wireframe bool) *RasterSurface {
	t.Helper()
	r, err := NewRenderer(RasterSurfaces, 100, 100)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	scene, cam, _ := cubeScene(intensity, wireframe)
	if err := r.Render(scene, cam); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return r.Surface().(*RasterSurface)
}

func TestRasterSolidAndWireframe(t *testing.T) {
	black := color.RGBA{A: 255}

	// (62,53) is inside the front face and away from every projected edge
	solid := renderRaster(t, 0.5, false).Image().RGBAAt(62, 53)
	if solid == black {
		t.Errorf("solid cube pixel = %v, want lit", solid)
	}
	wire := renderRaster(t, 0.5, true).Image().RGBAAt(62, 53)
	if wire != black {
		t.Errorf("wireframe interior pixel = %v, want background", wire)
	}

	// the front face's right edge projects to x ≈ 80.2
	img := renderRaster(t, 0.5, true).Image()
	lit := false
	for x := 78; x <= 82; x++ {
		if img.RGBAAt(x, 40) != black {
			lit = true
		}
	}
	if !lit {
		t.Error("wireframe edge not drawn")
	}
}

func TestRasterLightIntensity(t *testing.T) {
	dim := renderRaster(t, 0.2, false).Image().RGBAAt(50, 50)
	bright := renderRaster(t, 0.5, false).Image().RGBAAt(50, 50)
	if bright.R <= dim.R {
		t.Errorf("brighter light gave %v, dimmer gave %v", bright, dim)
	}
	// ambient 0x40*0.3 plus a head-on light at 0.5
	if bright.R < 145 || bright.R > 149 {
		t.Errorf("front face red = %d, want about 147", bright.R)
	}
}

func TestShadowCoverage(t *testing.T) {
	testCases := []struct {
		name string
		typ  ShadowMapType
		dist float64
		want float64
	}{
		{"basic inside", BasicShadowMap, 0.5, 0},
		{"basic outside", BasicShadowMap, 1.5, 1},
		{"pcf centre", PCFShadowMap, 0, 0},
		{"pcf edge", PCFShadowMap, 1, 0.5},
		{"soft far", PCFSoftShadowMap, 2, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.coverage(tc.dist, 1); !almostEqual(got, tc.want) {
				t.Errorf("coverage(%v) = %v, want %v", tc.dist, got, tc.want)
			}
		})
	}
}

func TestShadowFactor(t *testing.T) {
	scene := NewScene()
	light := NewDirectionalLight(Hex(0xffffff), 1)
	light.Position = [3]float64{0, 10, 0}
	light.CastShadow = true

	blocker := NewMesh(NewBoxGeometry(1, 1, 1), NewStandardMaterial(Hex(0xffffff)))
	blocker.Position = [3]float64{0, 2, 0}
	blocker.CastShadow = true
	floor := NewMesh(NewBoxGeometry(10, 0.1, 10), NewStandardMaterial(Hex(0xffffff)))
	floor.ReceiveShadow = true
	scene.Add(light, blocker, floor)

	l := newLighting(scene, ShadowMap{Enabled: true, Type: BasicShadowMap})
	if f := l.shadowFactor(light, [3]float64{0, 0, 0}, floor); f != 0 {
		t.Errorf("point under the blocker lit %v, want 0", f)
	}
	if f := l.shadowFactor(light, [3]float64{4, 0, 0}, floor); f != 1 {
		t.Errorf("point beside the blocker lit %v, want 1", f)
	}

	off := newLighting(scene, ShadowMap{})
	if f := off.shadowFactor(light, [3]float64{0, 0, 0}, floor); f != 1 {
		t.Errorf("shadows disabled but lit %v", f)
	}
}
