package recipe

import (
	"math"

	"confetti/internal/field"
	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("aurora", Aurora) }

const auroraRibbons = 4

var auroraHeights = []float64{0.2, 0.35, 0.5, 0.65, 0.8}

// Aurora lays four horizontal ribbons across the viewport that drift to the
// right while each ribbon sways vertically in its own phase. A band of wavy
// flow sources keeps them moving.
func Aurora(req Request) Plan {
	in := req.Intensity
	w := float64(req.Viewport.W)
	h := float64(req.Viewport.H)
	var plan Plan

	const columns = 4
	for k, frac := range auroraHeights {
		for c := 0; c < columns; c++ {
			plan.Flow = append(plan.Flow, field.Source{
				Pos:    vmath.V(w*(float64(c)+0.5)/columns, h*frac),
				Vel:    vmath.V(1.2*in, 0.6*math.Sin(float64(k+c))*in),
				Radius: w/columns + 40,
				Wobble: 0.6,
			})
		}
	}

	perRibbon := share(req.Count, auroraRibbons, 0)
	for i := 0; i < req.Count; i++ {
		r := i % auroraRibbons
		j := i / auroraRibbons
		phase := float64(r) * math.Pi / 2
		baseY := req.Origin.Y + (float64(r)-1.5)*45

		x := w * (float64(j) + 0.5) / float64(perRibbon)
		wave := x*0.012 + phase
		pos := vmath.V(x, baseY+math.Sin(wave)*20)
		vel := vmath.V(req.RNG.Range(0.4, 0.9)*in, math.Cos(wave)*0.35*in)

		p := spawn(req, i, pos, vel, req.RNG.Range(180, 240), 0.1)
		p.Size = req.RNG.Range(3, 5)
		p.Shape = particle.ShapeCircle
		p.PulsePhase = phase
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
