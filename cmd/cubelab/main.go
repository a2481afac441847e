package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/cubelab/config"
	"github.com/smasonuk/cubelab/engine"
	"github.com/smasonuk/cubelab/host"
	"github.com/smasonuk/cubelab/snapshot"
	"github.com/smasonuk/cubelab/viewer"
)

type surfaced interface {
	host.Component
	Surface() engine.Surface
}

func main() {
	var (
		cfgPath     = flag.String("config", config.DefaultPath, "YAML settings file.")
		variant     = flag.String("variant", "", "lab|canvas; overrides the config file.")
		snapPath    = flag.String("snapshot", "", "Render headless and write the last frame here (.png or .webp).")
		frames      = flag.Int("frames", 1, "Frames to render before a snapshot.")
		readable    = flag.Bool("readable", false, "Start the lab in a random readable orientation.")
		writeConfig = flag.String("write-config", "", "Write the effective settings to this path and exit.")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	if *variant != "" {
		cfg.Variant = *variant
		if err := cfg.Validate(); err != nil {
			fatalf("%v", err)
		}
	}

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			fatalf("write config: %v", err)
		}
		return
	}

	if *snapPath != "" {
		if err := runSnapshot(cfg, *snapPath, *frames, *readable); err != nil {
			fatalf("snapshot: %v", err)
		}
		return
	}
	if err := runWindow(cfg, *readable); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func newViewer(cfg config.Config, env viewer.Env) (surfaced, *viewer.Lab, image.Point) {
	if cfg.Variant == config.VariantCanvas {
		return viewer.NewSceneCanvas(env, cfg.Canvas), nil, image.Pt(cfg.Canvas.Width, cfg.Canvas.Height)
	}
	lab := viewer.NewLab(env, cfg.Lab)
	return lab, lab, image.Pt(cfg.Lab.Width, cfg.Lab.Height)
}

// readableOnMount turns the lab to a readable orientation once it has mounted.
type readableOnMount struct {
	*viewer.Lab
}

func (r readableOnMount) Mount(root *host.Element) error {
	if err := r.Lab.Mount(root); err != nil {
		return err
	}
	r.Lab.ReadableOrientation()
	return nil
}

func runWindow(cfg config.Config, readable bool) error {
	w := host.NewWindow(cfg.Window.Width, cfg.Window.Height)
	w.Title = cfg.Window.Title
	w.TPS = cfg.Window.TPS

	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}
	env := viewer.Env{
		Frames:     w.Frames,
		Surfaces:   engine.ImageSurfaces(true),
		PixelRatio: ratio,
	}
	v, lab, _ := newViewer(cfg, env)
	var c host.Component = v
	if lab != nil {
		w.AddOverlay(lab.Panel())
		if readable {
			c = readableOnMount{lab}
		}
	}
	return host.Run(w, c)
}

func runSnapshot(cfg config.Config, path string, frames int, readable bool) error {
	if _, err := snapshot.FormatFromPath(path); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sched := host.NewFrames()
	env := viewer.Env{Frames: sched, Surfaces: engine.RasterSurfaces}
	v, lab, size := newViewer(cfg, env)
	var c host.Component = v
	if lab != nil && readable {
		c = readableOnMount{lab}
	}
	rec := snapshot.NewRecorder(c, v.Surface)

	root := host.NewElement(image.Rectangle{Max: size})
	if err := host.RunHeadless(ctx, root, sched, rec, host.HeadlessConfig{Frames: frames}); err != nil {
		return err
	}
	img, err := rec.Image()
	if err != nil {
		return err
	}
	return snapshot.Save(path, img)
}
