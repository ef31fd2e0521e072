package recipe

import (
	"math"

	"confetti/internal/particle"
	"confetti/internal/vmath"
)

func init() { Register("bloom", Bloom) }

// Bloom defaults.
const (
	DefaultPetals = 6
	DefaultLayers = 3
)

var bloomShapes = []particle.Shape{particle.ShapeHeart, particle.ShapeCircle, particle.ShapeStar}

// Bloom opens a flower: particles are dealt into petal and layer slots and
// leave the origin outward with a slight twist, outer layers faster and
// smaller. A weak pull keeps the flower from scattering.
func Bloom(req Request) Plan {
	in := req.Intensity
	petals := req.Petals
	if petals <= 0 {
		petals = DefaultPetals
	}
	layers := req.Layers
	if layers <= 0 {
		layers = DefaultLayers
	}
	plan := Plan{
		Attractors: []particle.Attractor{{
			Pos:      req.Origin,
			Strength: 80 * in,
			Radius:   300,
			Kind:     particle.Pull,
		}},
	}

	for i := 0; i < req.Count; i++ {
		petal := i % petals
		layer := (i / petals) % layers
		a := float64(petal)*2*math.Pi/float64(petals) + float64(layer)*math.Pi/float64(petals*layers)
		a += req.RNG.Range(-0.08, 0.08)

		out := vmath.FromAngle(a, (1.5+float64(layer))*in)
		twist := vmath.FromAngle(a-math.Pi/2, 0.4*in)
		pos := req.Origin.Add(vmath.FromAngle(a, 8))

		p := spawn(req, i, pos, out.Add(twist), req.RNG.Range(140, 190), 0.2)
		p.Size = math.Max(2, 7-float64(layer)*1.5)
		p.Shape = bloomShapes[layer%len(bloomShapes)]
		p.Color = req.Color(layer)
		plan.Particles = append(plan.Particles, p)
	}
	return plan
}
