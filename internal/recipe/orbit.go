package recipe

import (
	"math"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("orbit", Orbit) }

// Orbit places three orbit attractors on a triangle and sends particles
// around them at roughly circular-orbit speed.
func Orbit(req Request) Plan {
	in := req.Intensity
	var plan Plan
	for k := 0; k < 3; k++ {
		a := -math.Pi/2 + float64(k)*2*math.Pi/3
		plan.Attractors = append(plan.Attractors, particle.Attractor{
			Pos:      req.Origin.Add(vmath.FromAngle(a, 130)),
			Strength: 300 * in,
			Radius:   260,
			Kind:     particle.Orbit,
		})
	}

	for i := 0; i < req.Count; i++ {
		att := plan.Attractors[i%3]
		r := req.RNG.Range(40, 110)
		theta := req.RNG.Angle()
		pos := att.Pos.Add(vmath.FromAngle(theta, r))
		speed := math.Sqrt(att.Strength / r)
		vel := vmath.FromAngle(theta-math.Pi/2, speed)

		p := spawn(req, i, pos, vel, req.RNG.Range(200, 260), 0.1)
		p.Size = req.RNG.Range(3, 5)
		if i%3 == 1 {
			p.Shape = particle.ShapeStar
		} else {
			p.Shape = particle.ShapeCircle
		}
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
