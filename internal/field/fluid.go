// Package field implements the two ambient velocity fields that push particles
// around: a coarse grid fluid and a continuous flow field built from point
// sources.
package field

import (
	"math"

	"confetti/internal/core"
	"confetti/internal/vmath"
)

// FluidParams tunes the diffusion and decay of the fluid grid.
type FluidParams struct {
	Diffusion   float64 // blend toward the 4-neighbour mean per step, 0..1
	Viscosity   float64 // velocity retained per step, 0..1
	Dissipation float64 // density retained per step, 0..1
}

// DefaultFluidParams returns the stock tuning.
func DefaultFluidParams() FluidParams {
	return FluidParams{Diffusion: 0.2, Viscosity: 0.96, Dissipation: 0.97}
}

// Fluid is a coarse velocity/density grid covering the viewport.
type Fluid struct {
	cell   float64
	params FluidParams

	vx, vy, density  *core.Grid
	tmpX, tmpY, tmpD *core.Grid
}

// NewFluid allocates a grid covering width×height at one cell per cell units.
func NewFluid(width, height, cell float64, params FluidParams) *Fluid {
	if cell <= 0 {
		cell = 20
	}
	f := &Fluid{cell: cell, params: params}
	f.Resize(width, height)
	return f
}

// Resize reallocates the grid for a new viewport. Existing state is dropped.
func (f *Fluid) Resize(width, height float64) {
	cols := int(math.Ceil(width / f.cell))
	rows := int(math.Ceil(height / f.cell))
	f.vx = core.NewGrid(cols, rows)
	f.vy = core.NewGrid(cols, rows)
	f.density = core.NewGrid(cols, rows)
	f.tmpX = core.NewGrid(cols, rows)
	f.tmpY = core.NewGrid(cols, rows)
	f.tmpD = core.NewGrid(cols, rows)
}

// SetParams replaces the tuning used by subsequent steps.
func (f *Fluid) SetParams(p FluidParams) { f.params = p }

// Cols returns the number of grid columns.
func (f *Fluid) Cols() int { return f.vx.W }

// Rows returns the number of grid rows.
func (f *Fluid) Rows() int { return f.vx.H }

// Cell returns the cell size in viewport units.
func (f *Fluid) Cell() float64 { return f.cell }

// ToGrid maps an absolute position to fractional grid coordinates.
func (f *Fluid) ToGrid(p vmath.Vec2) (float64, float64) {
	return p.X / f.cell, p.Y / f.cell
}

// AddForce adds a velocity impulse centred on a fractional grid coordinate,
// falling off linearly to zero at radius cells.
func (f *Fluid) AddForce(gx, gy, fx, fy, radius float64) {
	f.splat(gx, gy, radius, func(idx int, w float64) {
		f.vx.Cells()[idx] += fx * w
		f.vy.Cells()[idx] += fy * w
	})
}

// AddDensity adds density centred on a fractional grid coordinate.
func (f *Fluid) AddDensity(gx, gy, amount, radius float64) {
	f.splat(gx, gy, radius, func(idx int, w float64) {
		f.density.Cells()[idx] += amount * w
	})
}

func (f *Fluid) splat(gx, gy, radius float64, apply func(idx int, w float64)) {
	if radius <= 0 {
		radius = 1
	}
	x0 := int(math.Floor(gx - radius))
	x1 := int(math.Ceil(gx + radius))
	y0 := int(math.Floor(gy - radius))
	y1 := int(math.Ceil(gy + radius))
	g := f.vx
	for y := y0; y <= y1; y++ {
		if y < 0 || y >= g.H {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= g.W {
				continue
			}
			d := math.Hypot(float64(x)-gx, float64(y)-gy)
			if d >= radius {
				continue
			}
			apply(g.Index(x, y), 1-d/radius)
		}
	}
}

// Sample returns the interpolated velocity at a fractional grid coordinate.
func (f *Fluid) Sample(gx, gy float64) vmath.Vec2 {
	return vmath.Vec2{X: f.vx.Sample(gx, gy), Y: f.vy.Sample(gx, gy)}
}

// Density returns the interpolated density at a fractional grid coordinate.
func (f *Fluid) Density(gx, gy float64) float64 {
	return f.density.Sample(gx, gy)
}

// DensityGrid exposes the live density layer. Callers must not modify it.
func (f *Fluid) DensityGrid() *core.Grid { return f.density }

// Energy returns the summed speed over all cells.
func (f *Fluid) Energy() float64 {
	total := 0.0
	vx, vy := f.vx.Cells(), f.vy.Cells()
	for i := range vx {
		total += math.Hypot(vx[i], vy[i])
	}
	return total
}

// Step performs one diffusion + advection update.
func (f *Fluid) Step(dt float64) {
	f.diffuse(f.vx, f.tmpX)
	f.diffuse(f.vy, f.tmpY)
	f.diffuse(f.density, f.tmpD)

	// tmp* now hold the diffused fields; advect them back into the live grids
	// using the diffused velocity.
	f.advect(f.tmpX, f.vx, dt)
	f.advect(f.tmpY, f.vy, dt)
	f.advect(f.tmpD, f.density, dt)

	f.vx.Scale(f.params.Viscosity)
	f.vy.Scale(f.params.Viscosity)
	f.density.Scale(f.params.Dissipation)
}

func (f *Fluid) diffuse(src, dst *core.Grid) {
	k := f.params.Diffusion
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			mean := (src.At(x-1, y) + src.At(x+1, y) + src.At(x, y-1) + src.At(x, y+1)) / 4
			c := src.At(x, y)
			dst.Cells()[dst.Index(x, y)] = c + (mean-c)*k
		}
	}
}

func (f *Fluid) advect(src, dst *core.Grid, dt float64) {
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			idx := src.Index(x, y)
			// Velocities are in viewport units per tick; convert to cells.
			bx := float64(x) - dt*f.tmpX.Cells()[idx]/f.cell
			by := float64(y) - dt*f.tmpY.Cells()[idx]/f.cell
			dst.Cells()[idx] = src.Sample(bx, by)
		}
	}
}

// Clear zeroes velocity and density.
func (f *Fluid) Clear() {
	f.vx.Clear()
	f.vy.Clear()
	f.density.Clear()
	f.tmpX.Clear()
	f.tmpY.Clear()
	f.tmpD.Clear()
}
