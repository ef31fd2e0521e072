package core

import "math"

// Grid stores a 2D grid of float64 samples in row-major order.
type Grid struct {
	W, H int
	data []float64
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Clamp limits the provided coordinates to the grid bounds.
func (g *Grid) Clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= g.W {
		x = g.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.H {
		y = g.H - 1
	}
	return x, y
}

// At returns the value at (x, y), clamping out-of-range coordinates.
func (g *Grid) At(x, y int) float64 {
	x, y = g.Clamp(x, y)
	return g.data[y*g.W+x]
}

// Add accumulates v into (x, y). Out-of-range coordinates are ignored.
func (g *Grid) Add(x, y int, v float64) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.data[y*g.W+x] += v
}

// Sample bilinearly interpolates the grid at a fractional coordinate where
// integer coordinates address cell centres.
func (g *Grid) Sample(x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	tx := x - float64(x0)
	ty := y - float64(y0)
	a := g.At(x0, y0)
	b := g.At(x0+1, y0)
	c := g.At(x0, y0+1)
	d := g.At(x0+1, y0+1)
	top := a + (b-a)*tx
	bottom := c + (d-c)*tx
	return top + (bottom-top)*ty
}

// CopyFrom overwrites the grid with the contents of src. Grids of different
// sizes are left untouched.
func (g *Grid) CopyFrom(src *Grid) {
	if src == nil || src.W != g.W || src.H != g.H {
		return
	}
	copy(g.data, src.data)
}

// Scale multiplies every cell by s.
func (g *Grid) Scale(s float64) {
	for i := range g.data {
		g.data[i] *= s
	}
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
