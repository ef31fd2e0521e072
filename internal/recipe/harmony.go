package recipe

import (
	"math"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("harmony", Harmonize) }

// Harmonize sets three pull attractors dancing on Lissajous curves around the
// origin and scatters particles in an annulus for them to herd.
func Harmonize(req Request) Plan {
	in := req.Intensity
	h := &Harmony{Center: req.Origin}
	var plan Plan
	for k := 0; k < 3; k++ {
		curve := Lissajous{
			AmpX:  req.RNG.Range(80, 160),
			AmpY:  req.RNG.Range(60, 120),
			FreqX: req.RNG.Range(0.01, 0.03),
			FreqY: req.RNG.Range(0.01, 0.03),
			Phase: float64(k) * 2 * math.Pi / 3,
		}
		h.Curves = append(h.Curves, curve)
		plan.Attractors = append(plan.Attractors, particle.Attractor{
			Pos:      curve.At(h.Center, 0),
			Strength: 200 * in,
			Radius:   300,
			Kind:     particle.Pull,
		})
	}
	plan.Harmony = h

	for i := 0; i < req.Count; i++ {
		pos := req.Origin.Add(vmath.FromAngle(req.RNG.Angle(), req.RNG.Range(80, 200)))
		vel := vmath.FromAngle(req.RNG.Angle(), req.RNG.Range(0, 0.5)*in)
		p := spawn(req, i, pos, vel, req.RNG.Range(220, 300), 0.1)
		p.Size = req.RNG.Range(3, 5)
		if i%2 == 0 {
			p.Shape = particle.ShapeCircle
		} else {
			p.Shape = particle.ShapeHexagon
		}
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
