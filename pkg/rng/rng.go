package rng

import (
	"math"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a random value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Range returns a random value in [lo, hi). Inverted bounds are swapped.
func (r *RNG) Range(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// Angle returns a random angle in [0, 2π).
func (r *RNG) Angle() float64 {
	return r.r.Float64() * 2 * math.Pi
}

// Gaussian returns a pair of independent standard normal samples using the
// Box–Muller transform.
func (r *RNG) Gaussian() (float64, float64) {
	u1 := r.r.Float64()
	for u1 <= math.SmallestNonzeroFloat64 {
		u1 = r.r.Float64()
	}
	u2 := r.r.Float64()
	mag := math.Sqrt(-2 * math.Log(u1))
	return mag * math.Cos(2*math.Pi*u2), mag * math.Sin(2*math.Pi*u2)
}
