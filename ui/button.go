package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/smasonuk/cubelab/host"
)

type Button struct {
	BaseComponent
	Text      string
	OnClick   func()
	IsHovered bool
}

func NewButton(text string, onClick func()) *Button {
	return &Button{Text: text, OnClick: onClick}
}

func (b *Button) Draw(screen *ebiten.Image, face text.Face) {
	c := buttonColor
	if b.IsHovered {
		c = hoverColor
	}
	fillRect(screen, b.X, b.Y, b.W, b.H, c)
	drawCentred(screen, face, b.Text, b.X, b.Y, b.W, b.H, textColor)
}

func (b *Button) HandlePointer(ev host.PointerEvent) bool {
	switch ev.Type {
	case host.PointerMove:
		b.IsHovered = b.contains(ev.X, ev.Y)
	case host.PointerDown:
		if ev.Button == host.ButtonLeft && b.contains(ev.X, ev.Y) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}
