// Package recipe holds the named celebration recipes. A recipe is a pure
// function from a Request to a Plan: the particles to spawn now, the ones to
// spawn after a delay, and the attractor and field configuration that shapes
// their motion. Recipes never touch engine state.
package recipe

import (
	"image/color"
	"math"
	"time"

	"confetti/internal/core"
	"confetti/internal/field"
	"confetti/internal/particle"
	"confetti/internal/vmath"
	"confetti/pkg/rng"
)

// DefaultBPM is used by heart-rate driven recipes when no rate is supplied.
const DefaultBPM = 72

// Request carries everything a recipe may read.
type Request struct {
	Origin    vmath.Vec2 // absolute viewport coordinates
	Viewport  core.Size
	Count     int
	Colors    []color.RGBA
	Intensity float64 // 0..1
	BPM       float64
	Petals    int
	Layers    int
	RNG       *rng.RNG
}

// Color returns the palette entry for index i, cycling through Colors.
func (r Request) Color(i int) color.RGBA {
	if len(r.Colors) == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if i < 0 {
		i = -i
	}
	return r.Colors[i%len(r.Colors)]
}

// Normalized returns a copy with intensity clamped, a non-negative count, a
// default heart rate and an RNG.
func (r Request) Normalized() Request {
	r.Intensity = math.Max(0, math.Min(1, r.Intensity))
	if math.IsNaN(r.Intensity) {
		r.Intensity = 0
	}
	if r.Count < 0 {
		r.Count = 0
	}
	if r.BPM <= 0 || math.IsNaN(r.BPM) {
		r.BPM = DefaultBPM
	}
	if r.RNG == nil {
		r.RNG = rng.New(1)
	}
	return r
}

// FluidOpKind selects what a FluidOp writes into the fluid grid.
type FluidOpKind uint8

const (
	FluidForce FluidOpKind = iota
	FluidDensity
)

// FluidOp is a single write into the fluid grid at an absolute position.
type FluidOp struct {
	Kind   FluidOpKind
	At     vmath.Vec2
	Force  vmath.Vec2
	Amount float64
	Radius float64 // grid cells
}

// Delayed is a batch the engine applies after a wall-clock delay.
type Delayed struct {
	After     time.Duration
	Particles []particle.Particle
	Fluid     []FluidOp
}

// Lissajous is a two-frequency sinusoidal path.
type Lissajous struct {
	AmpX, AmpY   float64
	FreqX, FreqY float64
	Phase        float64
}

// At returns the point on the curve at tick t around center.
func (l Lissajous) At(center vmath.Vec2, t float64) vmath.Vec2 {
	return vmath.Vec2{
		X: center.X + l.AmpX*math.Sin(l.FreqX*t+l.Phase),
		Y: center.Y + l.AmpY*math.Sin(l.FreqY*t),
	}
}

// Harmony is the auxiliary state of the harmony recipe: attractor i follows
// Curves[i] around Center.
type Harmony struct {
	Center vmath.Vec2
	Curves []Lissajous
}

// Plan is the output of a recipe.
type Plan struct {
	Particles  []particle.Particle
	Attractors []particle.Attractor
	Fluid      []FluidOp
	Flow       []field.Source
	Delayed    []Delayed
	Harmony    *Harmony
}

// Total returns the number of particles across the immediate and delayed
// batches.
func (p *Plan) Total() int {
	n := len(p.Particles)
	for _, d := range p.Delayed {
		n += len(d.Particles)
	}
	return n
}

func (p *Plan) force(at, f vmath.Vec2, radius float64) {
	p.Fluid = append(p.Fluid, FluidOp{Kind: FluidForce, At: at, Force: f, Radius: radius})
}

func (p *Plan) density(at vmath.Vec2, amount, radius float64) {
	p.Fluid = append(p.Fluid, FluidOp{Kind: FluidDensity, At: at, Amount: amount, Radius: radius})
}
