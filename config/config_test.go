package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cubelab.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Variant != VariantLab || c.Window.Width != 1140 || c.Lab.Sensitivity != 0.01 {
		t.Errorf("Load() = %+v, want defaults", c)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := writeFile(t, `
variant: canvas
lab:
  light_intensity: 2.5
canvas:
  background: "#101010"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Variant != VariantCanvas || c.Lab.LightIntensity != 2.5 || c.Canvas.Background != "#101010" {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.Lab.Width != 800 || c.Canvas.Camera.FOV != 45 || c.Window.TPS != 60 {
		t.Errorf("unnamed keys lost their defaults: %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"malformed", "variant: [lab"},
		{"unknown variant", "variant: teapot"},
		{"bad window", "window: {width: 0}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tc.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cubelab.yaml")
	want := Default()
	want.Variant = VariantCanvas
	want.Lab.Wireframe = true
	want.Canvas.Controls.EnablePan = true

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Variant != want.Variant || !got.Lab.Wireframe || !got.Canvas.Controls.EnablePan {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}
