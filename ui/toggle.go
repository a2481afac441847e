package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/smasonuk/cubelab/host"
)

type Toggle struct {
	BaseComponent
	Label     string
	IsOn      bool
	OnToggle  func(isOn bool)
	IsHovered bool
}

func NewToggle(label string, initial bool, onToggle func(isOn bool)) *Toggle {
	return &Toggle{Label: label, IsOn: initial, OnToggle: onToggle}
}

// Status is the text shown on the switch.
func (t *Toggle) Status() string {
	if t.IsOn {
		return "ON"
	}
	return "OFF"
}

func (t *Toggle) Draw(screen *ebiten.Image, face text.Face) {
	drawText(screen, face, t.Label, t.X, t.Y+t.H/2-7, textColor)

	const switchW = 56
	c := toggleOff
	if t.IsOn {
		c = toggleOnColor
	}
	if t.IsHovered {
		c.R, c.G, c.B = brighten(c.R), brighten(c.G), brighten(c.B)
	}
	x := t.X + t.W - switchW
	fillRect(screen, x, t.Y, switchW, t.H, c)
	drawCentred(screen, face, t.Status(), x, t.Y, switchW, t.H, textColor)
}

func brighten(v uint8) uint8 {
	if v > 212 {
		return 255
	}
	return v + v/5
}

func (t *Toggle) HandlePointer(ev host.PointerEvent) bool {
	switch ev.Type {
	case host.PointerMove:
		t.IsHovered = t.contains(ev.X, ev.Y)
	case host.PointerDown:
		if ev.Button == host.ButtonLeft && t.contains(ev.X, ev.Y) {
			t.IsOn = !t.IsOn
			if t.OnToggle != nil {
				t.OnToggle(t.IsOn)
			}
			return true
		}
	}
	return false
}
