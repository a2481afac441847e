// Package orientation produces random 3-axis rotations for posing a model.
package orientation

import (
	"math"
	"math/rand/v2"
)

// Euler is a rotation triple in radians.
type Euler struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

const deg = math.Pi / 180

// Degrees converts d degrees to radians.
func Degrees(d float64) float64 {
	return d * deg
}

// Generator draws orientations from an explicit random source.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator backed by r.
func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{rnd: r}
}

func (g *Generator) float() float64 {
	if g == nil || g.rnd == nil {
		return rand.Float64()
	}
	return g.rnd.Float64()
}

// Rand returns a uniformly distributed value in [min, max). min must not exceed max.
func (g *Generator) Rand(min, max float64) float64 {
	r := g.float()*(max-min) + min
	if r >= max {
		r = math.Nextafter(max, min)
	}
	return r
}

func (g *Generator) sign() float64 {
	if g.float() < 0.5 {
		return 1
	}
	return -1
}

// RandomReadableEuler favours three-quarter views and never yields a straight
// front, top or side view.
func (g *Generator) RandomReadableEuler() Euler {
	yaw := g.Rand(20*deg, 70*deg) * g.sign()
	pitch := g.Rand(10*deg, 25*deg) * g.sign()
	roll := g.Rand(-5*deg, 5*deg)
	return Euler{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// RandomFullTurnEuler picks each axis independently in [0, 2π).
func (g *Generator) RandomFullTurnEuler() Euler {
	return Euler{
		Pitch: g.float() * 2 * math.Pi,
		Yaw:   g.float() * 2 * math.Pi,
		Roll:  g.float() * 2 * math.Pi,
	}
}

var global *Generator

// Rand returns a uniformly distributed value in [min, max) from the global source.
func Rand(min, max float64) float64 {
	return global.Rand(min, max)
}

// RandomReadableEuler is Generator.RandomReadableEuler on the global source.
func RandomReadableEuler() Euler {
	return global.RandomReadableEuler()
}

// RandomFullTurnEuler is Generator.RandomFullTurnEuler on the global source.
func RandomFullTurnEuler() Euler {
	return global.RandomFullTurnEuler()
}
