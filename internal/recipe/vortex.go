package recipe

import (
	"math"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("vortex", Vortex) }

var vortexShapes = []particle.Shape{particle.ShapeCircle, particle.ShapeStar, particle.ShapeSquare}

// Vortex rings the origin with particles moving along the swirl of a vortex
// attractor, so they spiral inward.
func Vortex(req Request) Plan {
	in := req.Intensity
	plan := Plan{
		Attractors: []particle.Attractor{{
			Pos:      req.Origin,
			Strength: 600 * in,
			Radius:   420,
			Kind:     particle.Vortex,
		}},
	}

	for k := 0; k < 8; k++ {
		a := float64(k) * math.Pi / 4
		plan.force(req.Origin.Add(vmath.FromAngle(a, 60)), vmath.FromAngle(a-math.Pi/2, 4*in), 3)
	}

	for i := 0; i < req.Count; i++ {
		a := float64(i) / float64(req.Count) * 2 * math.Pi
		pos := req.Origin.Add(vmath.FromAngle(a, req.RNG.Range(90, 150)))
		// The vortex force turns clockwise relative to the inward radial, so
		// the initial velocity follows the same sense.
		tangent := vmath.FromAngle(a-math.Pi/2, req.RNG.Range(2.5, 4)*in)
		inward := vmath.FromAngle(a+math.Pi, 0.4*in)
		p := spawn(req, i, pos, tangent.Add(inward), req.RNG.Range(140, 200), 0.3)
		p.Size = req.RNG.Range(3, 6)
		p.Shape = vortexShapes[i%len(vortexShapes)]
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
