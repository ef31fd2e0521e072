package engine

import (
	"confetti/internal/core"
	"confetti/internal/particle"
	"confetti/internal/vmath"
)

// Len returns the number of live particles.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

// Particles returns a copy of the live particles.
func (e *Engine) Particles() []particle.Particle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]particle.Particle(nil), e.store.All()...)
}

// Attractors returns a copy of the active attractors.
func (e *Engine) Attractors() []particle.Attractor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]particle.Attractor(nil), e.attractors...)
}

// Ticks returns the number of ticks run since the session started.
func (e *Engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.Ticks
}

// Animating reports whether the next Frame will run a tick.
func (e *Engine) Animating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.animating && !e.destroyed
}

// Pending returns the number of delayed batches not yet delivered.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// HasHarmony reports whether Lissajous-driven attractors are active.
func (e *Engine) HasHarmony() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.harmony != nil
}

// Stats returns the activity counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// FlowAt samples the flow field at an absolute position.
func (e *Engine) FlowAt(x, y float64) vmath.Vec2 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flow.Sample(x, y)
}

// FluidAt samples the fluid velocity at an absolute position.
func (e *Engine) FluidAt(x, y float64) vmath.Vec2 {
	e.mu.Lock()
	defer e.mu.Unlock()
	gx, gy := e.fluid.ToGrid(vmath.V(x, y))
	return e.fluid.Sample(gx, gy)
}

// FluidEnergy returns the summed fluid speed over all cells.
func (e *Engine) FluidEnergy() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fluid.Energy()
}

// Density returns a copy of the fluid density layer.
func (e *Engine) Density() *core.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	src := e.fluid.DensityGrid()
	g := core.NewGrid(src.W, src.H)
	g.CopyFrom(src)
	return g
}

// FluidDims returns the fluid grid size in cells.
func (e *Engine) FluidDims() (cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fluid.Cols(), e.fluid.Rows()
}
