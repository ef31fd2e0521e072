package core

// Size describes the dimensions of the viewport in pixels.
type Size struct {
	W int
	H int
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Denormalize converts a normalized (0–1) coordinate into absolute viewport
// coordinates. Inputs outside [0, 1] are clamped.
func (s Size) Denormalize(nx, ny float64) (float64, float64) {
	return clamp01(nx) * float64(s.W), clamp01(ny) * float64(s.H)
}

// Center returns the absolute centre of the viewport.
func (s Size) Center() (float64, float64) {
	return float64(s.W) / 2, float64(s.H) / 2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Sim is the minimal contract the HUD and the debug overlay need from a
// running session.
type Sim interface {
	Name() string
	Size() Size
}
