package recipe

import (
	"time"

	"confetti/internal/field"
	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("cascade", Cascade) }

// Cascade timing. Particles leave the top edge in CascadeBatches waves spread
// over CascadeSpan.
const (
	CascadeBatches = 15
	CascadeSpan    = 1500 * time.Millisecond
)

const cascadeColumns = 6

var cascadeShapes = []particle.Shape{particle.ShapeSquare, particle.ShapeSquare, particle.ShapeStar}

// Cascade drops a curtain of confetti from the top edge into a set of
// downward flow columns.
func Cascade(req Request) Plan {
	in := req.Intensity
	w := float64(req.Viewport.W)
	h := float64(req.Viewport.H)
	var plan Plan

	colW := w / cascadeColumns
	for c := 0; c < cascadeColumns; c++ {
		x := colW * (float64(c) + 0.5)
		for _, frac := range []float64{0.25, 0.65} {
			plan.Flow = append(plan.Flow, field.Source{
				Pos:    vmath.V(x, h*frac),
				Vel:    vmath.V(0, req.RNG.Range(1.5, 2.5)*in),
				Radius: colW,
				Wobble: 0.3,
			})
		}
	}

	ps := make([]particle.Particle, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		x := w * (float64(i) + req.RNG.Float64()) / float64(req.Count)
		pos := vmath.V(x, req.RNG.Range(-20, 0))
		vel := vmath.V(req.RNG.Range(-0.5, 0.5)*in, req.RNG.Range(1, 3)*in)
		p := spawn(req, i, pos, vel, req.RNG.Range(160, 220), 0.8)
		p.Size = req.RNG.Range(3, 6)
		p.Shape = cascadeShapes[i%len(cascadeShapes)]
		ps = append(ps, p)
	}
	stagger(&plan, ps, CascadeBatches, CascadeSpan)
	return plan
}
