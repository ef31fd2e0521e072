package recipe

import (
	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("nebula", Nebula) }

const (
	nebulaBumps  = 5
	nebulaSpread = 80
	nebulaAlpha  = 178
)

// Nebula seeds a cloud of dye near the origin and fills it with large,
// slow, translucent particles scattered on a Gaussian. Translucency lives in
// the colour alpha, so the life fade still applies on top of it.
func Nebula(req Request) Plan {
	in := req.Intensity
	var plan Plan
	for k := 0; k < nebulaBumps; k++ {
		gx, gy := req.RNG.Gaussian()
		at := req.Origin.Add(vmath.V(gx*40, gy*40))
		plan.density(at, req.RNG.Range(1.5, 3)*in, req.RNG.Range(3, 6))
		plan.force(at, vmath.FromAngle(req.RNG.Angle(), 0.8*in), 3)
	}

	for i := 0; i < req.Count; i++ {
		gx, gy := req.RNG.Gaussian()
		pos := req.Origin.Add(vmath.V(gx*nebulaSpread, gy*nebulaSpread))
		vel := vmath.FromAngle(req.RNG.Angle(), req.RNG.Range(0, 0.4)*in)
		p := spawn(req, i, pos, vel, req.RNG.Range(240, 320), 0.05)
		p.Size = req.RNG.Range(8, 14)
		p.Color.A = nebulaAlpha
		p.RotationSpeed *= 0.3
		p.Shape = particle.ShapeCircle
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
