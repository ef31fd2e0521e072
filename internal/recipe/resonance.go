package recipe

import (
	"math"
	"time"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("resonance", Resonance) }

const (
	resonancePulses = 5
	resonanceRings  = 5
)

// BeatInterval converts a heart rate into the delay between pulses.
func BeatInterval(bpm float64) time.Duration {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	return time.Duration(60000 / bpm * float64(time.Millisecond))
}

// Resonance arranges still particles in concentric rings around a gentle pull
// and thumps the fluid once per heartbeat, five times.
func Resonance(req Request) Plan {
	in := req.Intensity
	plan := Plan{
		Attractors: []particle.Attractor{{
			Pos:      req.Origin,
			Strength: 250 * in,
			Radius:   320,
			Kind:     particle.Pull,
		}},
	}

	beat := func() []FluidOp {
		ops := make([]FluidOp, 0, 8)
		for k := 0; k < 8; k++ {
			dir := vmath.FromAngle(float64(k)*math.Pi/4, 1)
			ops = append(ops, FluidOp{
				Kind:   FluidForce,
				At:     req.Origin.Add(dir.Scale(20)),
				Force:  dir.Scale(3 * in),
				Radius: 4,
			})
		}
		return ops
	}
	plan.Fluid = append(plan.Fluid, beat()...)
	interval := BeatInterval(req.BPM)
	for k := 1; k < resonancePulses; k++ {
		plan.Delayed = append(plan.Delayed, Delayed{After: interval * time.Duration(k), Fluid: beat()})
	}

	for i := 0; i < req.Count; i++ {
		ring := i % resonanceRings
		j := i / resonanceRings
		n := share(req.Count, resonanceRings, ring)
		a := float64(j)/float64(n)*2*math.Pi + float64(ring)*0.3
		pos := req.Origin.Add(vmath.FromAngle(a, 40+float64(ring)*35))

		p := spawn(req, i, pos, vmath.Vec2{}, req.RNG.Range(200, 260), 0.05)
		p.RotationSpeed = 0
		p.Size = 6 - float64(ring)*0.5
		p.PulsePhase = float64(ring) * math.Pi / 4
		if ring%2 == 0 {
			p.Shape = particle.ShapeHeart
		} else {
			p.Shape = particle.ShapeCircle
		}
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
