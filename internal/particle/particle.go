// Package particle holds the plain records the engine simulates: particles
// with their trails, attractors with their force law, and the arena that owns
// live particles.
package particle

import (
	"image/color"
	"strings"

	"confetti/internal/vmath"
)

// ID identifies a particle for its whole life. IDs are never reused within a
// Store.
type ID uint64

// Shape selects how the renderer draws a particle.
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeStar
	ShapeHeart
	ShapeHexagon
	ShapeSpiral
)

var shapeNames = [...]string{"square", "circle", "star", "heart", "hexagon", "spiral"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// ShapeFromString parses a shape name. Unknown names report false.
func ShapeFromString(name string) (Shape, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return ShapeSquare, false
}

// Particle is the kinematic and visual state of one confetti piece. Life and
// MaxLife are measured in ticks.
type Particle struct {
	ID ID

	Pos vmath.Vec2
	Vel vmath.Vec2
	Acc vmath.Vec2

	Size          float64
	Pulse         float64 // apparent size multiplier, recomputed every tick
	Rotation      float64
	RotationSpeed float64
	Color         color.RGBA
	Opacity       float64
	Life          float64
	MaxLife       float64
	Mass          float64
	Shape         Shape
	Trail         Trail
	PulsePhase    float64

	HasSpiral   bool
	SpiralAngle float64
}

// New returns a particle at pos moving with vel that lives for life ticks.
func New(pos, vel vmath.Vec2, life float64) Particle {
	if life <= 0 {
		life = 1
	}
	return Particle{
		Pos:     pos,
		Vel:     vel,
		Size:    4,
		Pulse:   1,
		Color:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Opacity: 1,
		Life:    life,
		MaxLife: life,
		Mass:    1,
		Shape:   ShapeSquare,
	}
}

// Fade returns the opacity implied by the remaining life: fully opaque for the
// first half of life, then a linear fade reaching zero exactly when life does.
func Fade(life, maxLife float64) float64 {
	if maxLife <= 0 || life <= 0 {
		return 0
	}
	o := life / maxLife * 2
	if o > 1 {
		return 1
	}
	return o
}

// Alive reports whether the particle should survive pruning.
func (p *Particle) Alive() bool {
	return p.Life > 0 && p.Opacity > 0
}

// ApparentSize is the drawn size including the pulse modulation.
func (p *Particle) ApparentSize() float64 {
	return p.Size * p.Pulse
}
