package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/smasonuk/cubelab/host"
)

const (
	padding      = 12
	lineHeight   = 18
	rowHeight    = 28
	rowGap       = 8
	sectionSpace = 14
)

var panelColor = color.RGBA{0x18, 0x18, 0x18, 0xe6}

type section struct {
	title   string
	top     float32
	widgets []Widget
}

// Panel stacks titled sections of widgets in a fixed-width column.
type Panel struct {
	X, Y, W  float32
	Title    string
	Hint     string
	sections []section
	face     text.Face
	height   float32
}

func NewPanel(x, y, w float32, title, hint string) *Panel {
	p := &Panel{X: x, Y: y, W: w, Title: title, Hint: hint, face: text.NewGoXFace(basicfont.Face7x13)}
	p.layout()
	return p
}

// AddSection appends a titled group of widgets below the existing ones.
func (p *Panel) AddSection(title string, widgets ...Widget) {
	p.sections = append(p.sections, section{title: title, widgets: widgets})
	p.layout()
}

// Widgets returns every widget in layout order.
func (p *Panel) Widgets() []Widget {
	var out []Widget
	for _, s := range p.sections {
		out = append(out, s.widgets...)
	}
	return out
}

func (p *Panel) Height() float32 {
	return p.height
}

func (p *Panel) layout() {
	y := p.Y + padding + 2*lineHeight + sectionSpace
	for i := range p.sections {
		s := &p.sections[i]
		s.top = y
		y += lineHeight
		for _, w := range s.widgets {
			w.SetPosition(p.X+padding, y)
			w.SetSize(p.W-2*padding, rowHeight)
			y += rowHeight + rowGap
		}
		y += sectionSpace
	}
	p.height = y - p.Y
}

// HandlePointer offers ev to every widget and reports whether one consumed it.
// Move events reach all widgets so hover state stays current.
func (p *Panel) HandlePointer(ev host.PointerEvent) bool {
	consumed := false
	for _, w := range p.Widgets() {
		if w.HandlePointer(ev) {
			consumed = true
			if ev.Type != host.PointerMove {
				break
			}
		}
	}
	return consumed
}

func (p *Panel) Draw(screen *ebiten.Image) {
	fillRect(screen, p.X, p.Y, p.W, p.height, panelColor)

	x := p.X + padding
	drawText(screen, p.face, p.Title, x, p.Y+padding, textColor)
	drawText(screen, p.face, p.Hint, x, p.Y+padding+lineHeight, mutedColor)

	for _, s := range p.sections {
		drawText(screen, p.face, s.title, x, s.top, mutedColor)
		for _, w := range s.widgets {
			w.Draw(screen, p.face)
		}
	}
}
