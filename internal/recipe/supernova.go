package recipe

import (
	"math"
	"time"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("supernova", Supernova) }

// SupernovaDelay separates the fast burst from the slower secondary ring.
const SupernovaDelay = 300 * time.Millisecond

// Supernova speed and size bands.
const (
	SupernovaBurstMinSpeed = 6.0
	SupernovaBurstMaxSpeed = 12.0
	SupernovaRingMinSpeed  = 2.0
	SupernovaRingMaxSpeed  = 5.0
	SupernovaBurstMaxSize  = 6.0
	SupernovaRingMinSize   = 7.0
)

var (
	burstShapes = []particle.Shape{particle.ShapeSquare, particle.ShapeStar, particle.ShapeCircle}
	ringShapes  = []particle.Shape{particle.ShapeCircle, particle.ShapeHexagon}
)

// Supernova fires roughly 60% of the particles as a fast radial burst and
// follows up with a slower ring of larger particles.
func Supernova(req Request) Plan {
	in := req.Intensity
	var plan Plan
	for k := 0; k < 8; k++ {
		dir := vmath.FromAngle(float64(k)*math.Pi/4, 1)
		plan.force(req.Origin.Add(dir.Scale(30)), dir.Scale(5*in), 3)
	}
	plan.density(req.Origin, 3*in, 4)

	burst := int(math.Round(float64(req.Count) * 0.6))
	for i := 0; i < burst; i++ {
		vel := vmath.FromAngle(req.RNG.Angle(), req.RNG.Range(SupernovaBurstMinSpeed, SupernovaBurstMaxSpeed)*in)
		p := spawn(req, i, req.Origin, vel, req.RNG.Range(80, 120), 1)
		p.Size = req.RNG.Range(3, SupernovaBurstMaxSize)
		p.Shape = burstShapes[i%len(burstShapes)]
		plan.Particles = append(plan.Particles, p)
	}

	ringCount := req.Count - burst
	if ringCount <= 0 {
		return plan
	}
	ring := make([]particle.Particle, 0, ringCount)
	for j := 0; j < ringCount; j++ {
		a := float64(j)/float64(ringCount)*2*math.Pi + req.RNG.Range(-0.05, 0.05)
		vel := vmath.FromAngle(a, req.RNG.Range(SupernovaRingMinSpeed, SupernovaRingMaxSpeed)*in)
		p := spawn(req, burst+j, req.Origin, vel, req.RNG.Range(110, 150), 1.2)
		p.Size = req.RNG.Range(SupernovaRingMinSize, 11)
		p.Shape = ringShapes[j%len(ringShapes)]
		ring = append(ring, p)
	}
	plan.Delayed = append(plan.Delayed, Delayed{After: SupernovaDelay, Particles: ring})
	return plan
}
