package recipe

import (
	"math"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("constellation", Constellation) }

// ConstellationMargin keeps placed stars this far from every viewport edge.
const ConstellationMargin = 40

// GoldenAngle is the angular step of a Fibonacci spiral.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// Constellation spreads near-still stars over the viewport on a golden-angle
// spiral stretched to the usable rectangle inside the margins, so every
// requested star is placed whatever the aspect ratio. The renderer's
// proximity lines turn them into a constellation. A viewport no larger than
// the margins gets no stars.
func Constellation(req Request) Plan {
	in := req.Intensity
	var plan Plan
	if req.Count == 0 {
		return plan
	}
	w := float64(req.Viewport.W)
	h := float64(req.Viewport.H)
	rx := w/2 - ConstellationMargin
	ry := h/2 - ConstellationMargin
	if rx <= 0 || ry <= 0 {
		return plan
	}
	center := vmath.V(w/2, h/2)

	for k := 0; k < req.Count; k++ {
		r := math.Sqrt((float64(k) + 0.5) / float64(req.Count))
		a := float64(k) * GoldenAngle
		pos := center.Add(vmath.V(r*math.Cos(a)*rx, r*math.Sin(a)*ry))
		vel := vmath.FromAngle(req.RNG.Angle(), req.RNG.Range(0, 0.15)*in)
		p := spawn(req, k, pos, vel, req.RNG.Range(260, 340), 0)
		p.Size = req.RNG.Range(2, 4)
		p.RotationSpeed *= 0.25
		if k%5 == 0 {
			p.Shape = particle.ShapeStar
			p.Size += 2
		} else {
			p.Shape = particle.ShapeCircle
		}
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
