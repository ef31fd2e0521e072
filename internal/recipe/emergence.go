package recipe

import (
	"math"
	"time"

	"confetti/internal/field"
	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("emergence", Emergence) }

// Emergence timing.
const (
	EmergenceBatches = 12
	EmergenceSpan    = 1200 * time.Millisecond
)

// Emergence grows spiralling particles out of the origin on a radial flow
// surrounded by a ring of turbulent sources.
func Emergence(req Request) Plan {
	in := req.Intensity
	plan := Plan{
		Flow: []field.Source{{
			Pos:    req.Origin,
			Vel:    vmath.V(1.5*in, 0),
			Radius: 220,
			Mode:   field.Radial,
		}},
	}
	for k := 0; k < 8; k++ {
		a := float64(k) * math.Pi / 4
		plan.Flow = append(plan.Flow, field.Source{
			Pos:    req.Origin.Add(vmath.FromAngle(a, 120)),
			Vel:    vmath.FromAngle(a-math.Pi/2, 1.2*in),
			Radius: 90,
			Wobble: 1.2,
		})
	}

	ps := make([]particle.Particle, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		pos := req.Origin.Add(vmath.FromAngle(req.RNG.Angle(), req.RNG.Range(0, 15)))
		vel := vmath.FromAngle(req.RNG.Angle(), req.RNG.Range(0.3, 1.2)*in)
		p := spawn(req, i, pos, vel, req.RNG.Range(150, 210), 0.2)
		p.Size = req.RNG.Range(4, 7)
		p.Shape = particle.ShapeSpiral
		p.HasSpiral = true
		p.SpiralAngle = req.RNG.Angle()
		ps = append(ps, p)
	}
	stagger(&plan, ps, EmergenceBatches, EmergenceSpan)
	return plan
}
