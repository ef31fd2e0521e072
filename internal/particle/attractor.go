package particle

import "confetti/internal/vmath"

// MinDistance is the distance below which an attractor contributes nothing.
const MinDistance = 0.1

// Kind selects the direction an attractor's force takes.
type Kind uint8

const (
	Pull Kind = iota
	Push
	Orbit
	Vortex
)

var kindNames = [...]string{"pull", "push", "orbit", "vortex"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Attractor is a point force source.
type Attractor struct {
	Pos      vmath.Vec2
	Strength float64
	Radius   float64
	Kind     Kind
}

// Force returns the acceleration a exerts on a particle at p. The result is
// zero outside the radius and inside MinDistance; softening keeps the
// magnitude bounded near the guard.
func Force(a Attractor, p vmath.Vec2, softening float64) vmath.Vec2 {
	delta := a.Pos.Sub(p)
	distSq := delta.LenSq()
	if distSq <= MinDistance*MinDistance || distSq >= a.Radius*a.Radius {
		return vmath.Vec2{}
	}
	if softening < 0 {
		softening = 0
	}
	dist := delta.Len()
	falloff := 1 - dist/a.Radius
	mag := a.Strength * falloff * falloff / (distSq + softening)

	radial := delta.Scale(1 / dist)
	perp := radial.Perp()
	switch a.Kind {
	case Push:
		return radial.Scale(-mag)
	case Orbit:
		return perp.Scale(mag * 0.7).Add(radial.Scale(mag * 0.3))
	case Vortex:
		return perp.Scale(mag * 0.8).Add(radial.Scale(mag * 0.5))
	default:
		return radial.Scale(mag)
	}
}
