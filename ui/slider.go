package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/smasonuk/cubelab/host"
)

// Slider is a range input. Value always satisfies Min <= Value <= Max and lies
// on a multiple of Step from Min.
type Slider struct {
	BaseComponent
	// Label is a format string for the current value, e.g. "Intensity: %.1f".
	Label    string
	Min      float64
	Max      float64
	Step     float64
	Value    float64
	OnChange func(v float64)

	dragging bool
}

func NewSlider(label string, min, max, step, value float64, onChange func(float64)) *Slider {
	s := &Slider{Label: label, Min: min, Max: max, Step: step, OnChange: onChange}
	s.Value = s.Quantize(value)
	return s
}

// Quantize clamps v to the slider range, snaps it to the step grid and rounds
// away float noise to the step's decimal places.
func (s *Slider) Quantize(v float64) float64 {
	v = math.Min(math.Max(v, s.Min), s.Max)
	if s.Step <= 0 {
		return v
	}
	v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	p := math.Pow(10, float64(decimals(s.Step)))
	v = math.Round(v*p) / p
	return math.Min(math.Max(v, s.Min), s.Max)
}

func decimals(f float64) int {
	str := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(str, '.'); i >= 0 {
		return len(str) - i - 1
	}
	return 0
}

// SetValue moves the slider without calling OnChange.
func (s *Slider) SetValue(v float64) {
	s.Value = s.Quantize(v)
}

func (s *Slider) setFromX(x int) {
	if s.W <= 0 {
		return
	}
	t := float64((float32(x) - s.X) / s.W)
	v := s.Quantize(s.Min + t*(s.Max-s.Min))
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *Slider) HandlePointer(ev host.PointerEvent) bool {
	switch ev.Type {
	case host.PointerDown:
		if ev.Button != host.ButtonLeft || !s.contains(ev.X, ev.Y) {
			return false
		}
		s.dragging = true
		s.setFromX(ev.X)
		return true
	case host.PointerMove:
		if s.dragging {
			s.setFromX(ev.X)
			return true
		}
	case host.PointerUp, host.PointerLeave:
		if s.dragging {
			s.dragging = false
			return true
		}
	}
	return false
}

func (s *Slider) Draw(screen *ebiten.Image, face text.Face) {
	drawText(screen, face, fmt.Sprintf(s.Label, s.Value), s.X, s.Y, textColor)

	trackY := s.Y + s.H*0.6
	trackH := s.H * 0.25
	fillRect(screen, s.X, trackY, s.W, trackH, trackColor)

	t := float32(0)
	if s.Max > s.Min {
		t = float32((s.Value - s.Min) / (s.Max - s.Min))
	}
	const thumbW = 8
	fillRect(screen, s.X+t*(s.W-thumbW), trackY-trackH/2, thumbW, trackH*2, thumbColor)
}
