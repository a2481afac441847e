// Package ui holds the control panel widgets drawn over the viewer canvas.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/smasonuk/cubelab/host"
)

// Widget is one row of a Panel.
type Widget interface {
	Draw(screen *ebiten.Image, face text.Face)
	HandlePointer(ev host.PointerEvent) bool
	SetPosition(x, y float32)
	SetSize(w, h float32)
	GetSize() (float32, float32)
}

type BaseComponent struct {
	X, Y, W, H float32
}

func (b *BaseComponent) SetPosition(x, y float32)    { b.X, b.Y = x, y }
func (b *BaseComponent) SetSize(w, h float32)        { b.W, b.H = w, h }
func (b *BaseComponent) GetSize() (float32, float32) { return b.W, b.H }

func (b *BaseComponent) contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= b.X && fx <= b.X+b.W && fy >= b.Y && fy <= b.Y+b.H
}

var (
	textColor     = color.RGBA{0xee, 0xee, 0xee, 0xff}
	mutedColor    = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
	buttonColor   = color.RGBA{0x4d, 0x4d, 0x4d, 0xff}
	hoverColor    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	trackColor    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	thumbColor    = color.RGBA{0xd9, 0xd9, 0xd9, 0xff}
	toggleOnColor = color.RGBA{0x33, 0x80, 0x33, 0xff}
	toggleOff     = color.RGBA{0x80, 0x33, 0x33, 0xff}
)

// drawText draws s with its top-left corner at x, y.
func drawText(screen *ebiten.Image, face text.Face, s string, x, y float32, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawCentred draws s centred in the rectangle.
func drawCentred(screen *ebiten.Image, face text.Face, s string, x, y, w, h float32, c color.Color) {
	tw, th := text.Measure(s, face, 0)
	drawText(screen, face, s, x+(w-float32(tw))/2, y+(h-float32(th))/2, c)
}

func fillRect(screen *ebiten.Image, x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(screen, x, y, w, h, c, false)
}
