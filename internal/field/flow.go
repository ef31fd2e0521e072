package field

import (
	"confetti/internal/vmath"

	"github.com/aquilax/go-perlin"
)

// SourceMode selects how a flow source turns its velocity into a sample.
type SourceMode uint8

const (
	// Directional sources push everything in range along Vel.
	Directional SourceMode = iota
	// Radial sources push away from Pos with magnitude |Vel|.
	Radial
)

// Source is one weighted contributor to a flow field.
type Source struct {
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64
	Mode   SourceMode
	// Wobble is the maximum rotation (radians) applied to Vel by the noise
	// driven update. Zero keeps the source static.
	Wobble float64

	current vmath.Vec2
}

// Flow is a continuous directional field sampled at arbitrary positions.
type Flow struct {
	sources []Source
	noise   *perlin.Perlin
	t       float64
	// NoiseScale converts source positions into noise space.
	NoiseScale float64
	// NoiseSpeed converts elapsed ticks into noise time.
	NoiseSpeed float64
}

// NewFlow creates an empty flow field whose source wobble is seeded by seed.
func NewFlow(seed int64) *Flow {
	return &Flow{
		noise:      perlin.NewPerlin(2, 2, 3, seed),
		NoiseScale: 0.004,
		NoiseSpeed: 0.01,
	}
}

// AddSource appends a source to the field.
func (f *Flow) AddSource(s Source) {
	s.current = s.Vel
	f.sources = append(f.sources, s)
}

// Len returns the number of sources.
func (f *Flow) Len() int { return len(f.sources) }

// Sources returns a copy of the current sources with their evolved velocity.
func (f *Flow) Sources() []Source {
	out := make([]Source, len(f.sources))
	for i, s := range f.sources {
		s.Vel = s.current
		out[i] = s
	}
	return out
}

// Clear removes every source and resets the field clock.
func (f *Flow) Clear() {
	f.sources = f.sources[:0]
	f.t = 0
}

// Sample returns the summed contribution of every source whose radius covers
// (x, y), each weighted by a linear distance falloff.
func (f *Flow) Sample(x, y float64) vmath.Vec2 {
	p := vmath.Vec2{X: x, Y: y}
	var sum vmath.Vec2
	for i := range f.sources {
		s := &f.sources[i]
		if s.Radius <= 0 {
			continue
		}
		offset := p.Sub(s.Pos)
		d := offset.Len()
		if d >= s.Radius {
			continue
		}
		w := 1 - d/s.Radius
		switch s.Mode {
		case Radial:
			if d == 0 {
				continue
			}
			sum = sum.Add(offset.Scale(s.current.Len() * w / d))
		default:
			sum = sum.Add(s.current.Scale(w))
		}
	}
	return sum
}

// Update advances the field clock and rotates each wobbling source's velocity
// by a slowly varying noise angle.
func (f *Flow) Update(dt float64) {
	f.t += dt
	for i := range f.sources {
		s := &f.sources[i]
		if s.Wobble == 0 {
			s.current = s.Vel
			continue
		}
		n := f.noise.Noise3D(s.Pos.X*f.NoiseScale, s.Pos.Y*f.NoiseScale, f.t*f.NoiseSpeed)
		s.current = s.Vel.Rotate(n * s.Wobble)
	}
}
