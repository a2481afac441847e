// Package viewer implements the two cube viewers: Lab, which rotates the cube
// from raw pointer drags and exposes a control panel, and SceneCanvas, which
// builds the same scene from a Description and hands interaction to orbit
// controls.
package viewer

import (
	"errors"

	"github.com/smasonuk/cubelab/engine"
	"github.com/smasonuk/cubelab/host"
)

// ErrAlreadyMounted is returned by Mount on a viewer that is still mounted.
var ErrAlreadyMounted = errors.New("viewer: already mounted")

// Env is what a viewer needs from its host.
type Env struct {
	Frames     host.FrameScheduler
	Surfaces   engine.SurfaceFactory
	PixelRatio float64
}

func (e Env) withDefaults() Env {
	if e.Frames == nil {
		e.Frames = host.NewFrames()
	}
	if e.Surfaces == nil {
		e.Surfaces = engine.ImageSurfaces(true)
	}
	if e.PixelRatio <= 0 {
		e.PixelRatio = 1
	}
	return e
}
