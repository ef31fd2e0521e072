package recipe

import (
	"time"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

// spawn builds the i-th particle of a recipe with the shared defaults: palette
// colour by index, random orientation and pulse phase, and a mass scaled by
// intensity so an intensity of zero leaves the particle unaffected by gravity.
func spawn(req Request, i int, pos, vel vmath.Vec2, life, weight float64) particle.Particle {
	p := particle.New(pos, vel, life)
	p.Color = req.Color(i)
	p.Mass = weight * req.Intensity
	p.Rotation = req.RNG.Angle()
	p.RotationSpeed = req.RNG.Range(-0.12, 0.12) * req.Intensity
	p.PulsePhase = req.RNG.Angle()
	return p
}

// stagger spreads ps over batches evenly spaced across span. Batch zero goes
// out immediately; particle i lands in batch i%batches so every batch samples
// the whole pattern.
func stagger(plan *Plan, ps []particle.Particle, batches int, span time.Duration) {
	if batches < 1 {
		batches = 1
	}
	groups := make([][]particle.Particle, batches)
	for i, p := range ps {
		b := i % batches
		groups[b] = append(groups[b], p)
	}
	plan.Particles = append(plan.Particles, groups[0]...)
	for b := 1; b < batches; b++ {
		if len(groups[b]) == 0 {
			continue
		}
		plan.Delayed = append(plan.Delayed, Delayed{
			After:     span * time.Duration(b) / time.Duration(batches),
			Particles: groups[b],
		})
	}
}

// share returns how many of count items land in bucket k of n when items are
// dealt round-robin.
func share(count, n, k int) int {
	if n <= 0 {
		return 0
	}
	s := count / n
	if k < count%n {
		s++
	}
	return s
}
