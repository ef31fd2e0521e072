package recipe

import (
	"math"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("helix", Helix) }

const (
	helixRadius    = 60
	helixTurn      = 0.35 // radians per particle along a strand
	helixRise      = 6.0  // pixels per particle along a strand
	helixBaseDrop  = 120
	helixRiseSpeed = 1.5
)

// Helix winds two strands, half a turn apart, into a rising double spiral.
// Each strand takes a single palette colour.
func Helix(req Request) Plan {
	in := req.Intensity
	var plan Plan
	for i := 0; i < req.Count; i++ {
		strand := i % 2
		j := i / 2
		a := float64(j)*helixTurn + float64(strand)*math.Pi
		pos := vmath.V(
			req.Origin.X+math.Cos(a)*helixRadius,
			req.Origin.Y+helixBaseDrop-float64(j)*helixRise,
		)
		vel := vmath.V(-math.Sin(a)*helixRadius*helixTurn*0.05*in, -helixRiseSpeed*in)

		p := spawn(req, i, pos, vel, req.RNG.Range(180, 240), 0.05)
		p.Color = req.Color(strand)
		p.Size = 4 + math.Sin(a)*1.5
		p.Shape = particle.ShapeCircle
		p.PulsePhase = a
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
