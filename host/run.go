package host

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Component is a viewer that can be attached to a mount point. Unmount must be
// safe to call more than once and after a failed Mount.
type Component interface {
	Mount(root *Element) error
	Unmount()
}

// Run mounts c into the window and blocks until the window closes. c is
// unmounted on every return path.
func Run(w *Window, c Component) error {
	defer c.Unmount()
	if err := c.Mount(w.Root); err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetTPS(w.TPS)
	log.Printf("window: %dx%d %q", w.width, w.height, w.Title)

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Frames to run before returning; at least one.
	Frames int
	// Hz paces ticks when positive; otherwise ticks run back to back.
	Hz int
}

// RunHeadless mounts c into root and ticks frames without opening a window.
func RunHeadless(ctx context.Context, root *Element, frames *Frames, c Component, cfg HeadlessConfig) error {
	if cfg.Frames <= 0 {
		cfg.Frames = 1
	}
	defer c.Unmount()
	if err := c.Mount(root); err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	var tick <-chan time.Time
	step := time.Second / 60
	if cfg.Hz > 0 {
		step = time.Second / time.Duration(cfg.Hz)
		t := time.NewTicker(step)
		defer t.Stop()
		tick = t.C
	}

	for i := 0; i < cfg.Frames; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		frames.Tick(time.Duration(i) * step)
	}
	log.Printf("headless: ran %d frames", cfg.Frames)
	return nil
}
