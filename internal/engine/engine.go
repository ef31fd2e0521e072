// Package engine runs a celebration session: it turns recipe plans into live
// particles, advances them one fixed tick per host frame and hands each frame
// to the renderer. An Engine is safe for concurrent use; delayed spawns fire
// on clock goroutines and share one mutex with the frame loop.
package engine

import (
	"image/color"
	"log"
	"math"
	"sync"

	"confetti/internal/core"
	"confetti/internal/field"
	"confetti/internal/palette"
	"confetti/internal/particle"
	"confetti/internal/recipe"
	"confetti/internal/render"
	"confetti/internal/vmath"
	"confetti/pkg/rng"

	"github.com/benbjohnson/clock"
)

// Options configures a new session.
type Options struct {
	Viewport core.Size
	Params   Params
	// Clock drives delayed spawns. Nil means wall-clock time.
	Clock clock.Clock
	Seed  int64
	// Palette resolves emotion names when a celebration carries no colours.
	// Nil means palette.Builtin.
	Palette palette.Source
}

// Celebration is a single trigger request.
type Celebration struct {
	Recipe    string
	Origin    vmath.Vec2 // normalized to the viewport, 0..1
	Count     int
	Colors    []color.RGBA
	Intensity float64
	HeartRate float64 // beats per minute, 0 for the default
	Emotion   string
	Petals    int
	Layers    int
}

// NewCelebration returns a request for recipe with the stock defaults: centred
// origin, 100 particles, full intensity.
func NewCelebration(name string) Celebration {
	return Celebration{
		Recipe:    name,
		Origin:    vmath.V(0.5, 0.5),
		Count:     100,
		Intensity: 1,
	}
}

// Stats counts session activity.
type Stats struct {
	Celebrations int // accepted Celebrate calls
	Ignored      int // calls refused while disabled, reduced or destroyed
	Unknown      int // calls naming an unregistered recipe
	Spawned      int
	Dropped      int // spawns refused by the particle cap
	Pruned       int
	Ticks        uint64
	Renders      int
	Peak         int // most particles alive at once
}

// Engine is one celebration session bound to a viewport.
type Engine struct {
	mu sync.Mutex

	clk     clock.Clock
	params  Params
	size    core.Size
	rng     *rng.RNG
	palette palette.Source

	store      *particle.Store
	attractors []particle.Attractor
	harmony    *recipe.Harmony
	harmonyAt  uint64
	fluid      *field.Fluid
	flow       *field.Flow

	renderer *render.Renderer
	surface  render.Surface

	enabled   bool
	reduced   bool
	destroyed bool
	animating bool

	generation uint64
	timers     map[uint64]*clock.Timer
	nextTimer  uint64

	stats Stats
}

// New constructs an enabled, idle session.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Palette == nil {
		opts.Palette = palette.Builtin{}
	}
	if opts.Params == (Params{}) {
		opts.Params = DefaultParams()
	}
	p := opts.Params
	e := &Engine{
		clk:      opts.Clock,
		params:   p,
		size:     opts.Viewport,
		rng:      rng.New(opts.Seed),
		palette:  opts.Palette,
		store:    particle.NewStore(p.MaxParticles),
		fluid:    field.NewFluid(float64(opts.Viewport.W), float64(opts.Viewport.H), p.FluidCell, p.fluidParams()),
		flow:     field.NewFlow(opts.Seed),
		renderer: render.NewRenderer(),
		enabled:  true,
		timers:   make(map[uint64]*clock.Timer),
	}
	e.renderer.ConnectDistance = p.ConnectDistance
	return e
}

// Name implements core.Sim.
func (e *Engine) Name() string { return "confetti" }

// Size implements core.Sim.
func (e *Engine) Size() core.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.size
}

// Celebrate runs the named recipe and merges its particles into the session.
// The attractor list, flow sources and harmony state are replaced by the new
// plan. Calls are silently ignored while the session is disabled, in reduced
// motion, destroyed, or when the recipe is unknown.
func (e *Engine) Celebrate(c Celebration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed || !e.enabled || e.reduced {
		e.stats.Ignored++
		return
	}
	colors := c.Colors
	if len(colors) == 0 {
		colors = e.palette.Palette(c.Emotion)
	}
	if len(colors) == 1 {
		colors = palette.Extend(colors, 3)
	}
	// A single celebration never builds more particles than the store holds.
	count := c.Count
	if count > e.params.MaxParticles {
		count = e.params.MaxParticles
	}
	x, y := e.size.Denormalize(c.Origin.X, c.Origin.Y)
	plan, ok := recipe.Build(c.Recipe, recipe.Request{
		Origin:    vmath.V(x, y),
		Viewport:  e.size,
		Count:     count,
		Colors:    colors,
		Intensity: c.Intensity,
		BPM:       c.HeartRate,
		Petals:    c.Petals,
		Layers:    c.Layers,
		RNG:       e.rng,
	})
	if !ok {
		log.Printf("[engine] unknown recipe %q", c.Recipe)
		e.stats.Unknown++
		return
	}

	e.attractors = append([]particle.Attractor(nil), plan.Attractors...)
	e.harmony = plan.Harmony
	e.harmonyAt = e.stats.Ticks
	e.flow.Clear()
	for _, s := range plan.Flow {
		e.flow.AddSource(s)
	}
	e.applyFluid(plan.Fluid)
	e.spawn(plan.Particles)
	for _, d := range plan.Delayed {
		e.schedule(d)
	}
	e.animating = true
	e.stats.Celebrations++
}

func (e *Engine) spawn(ps []particle.Particle) {
	for _, p := range ps {
		if _, ok := e.store.Add(p); ok {
			e.stats.Spawned++
		} else {
			e.stats.Dropped++
		}
	}
	if n := e.store.Len(); n > e.stats.Peak {
		e.stats.Peak = n
	}
}

func (e *Engine) applyFluid(ops []recipe.FluidOp) {
	for _, op := range ops {
		gx, gy := e.fluid.ToGrid(op.At)
		switch op.Kind {
		case recipe.FluidForce:
			e.fluid.AddForce(gx, gy, op.Force.X, op.Force.Y, op.Radius)
		case recipe.FluidDensity:
			e.fluid.AddDensity(gx, gy, op.Amount, op.Radius)
		}
	}
}

// schedule arms a timer for a delayed batch. The callback is tagged with the
// current generation so a batch armed before Clear never lands after it.
func (e *Engine) schedule(d recipe.Delayed) {
	if d.After <= 0 {
		e.applyFluid(d.Fluid)
		e.spawn(d.Particles)
		return
	}
	gen := e.generation
	id := e.nextTimer
	e.nextTimer++
	e.timers[id] = e.clk.AfterFunc(d.After, func() { e.fire(gen, id, d) })
}

func (e *Engine) fire(gen, id uint64, d recipe.Delayed) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.generation || e.destroyed {
		return
	}
	delete(e.timers, id)
	e.applyFluid(d.Fluid)
	e.spawn(d.Particles)
	e.animating = true
}

// Frame is one scheduling pass. It runs a tick when the session is animating
// and reports whether further frames are wanted.
func (e *Engine) Frame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || !e.animating {
		return false
	}
	e.tick()
	return e.animating
}

func (e *Engine) tick() {
	p := e.params
	e.stats.Ticks++
	now := e.stats.Ticks

	if e.harmony != nil {
		t := float64(now - e.harmonyAt)
		for i, curve := range e.harmony.Curves {
			if i < len(e.attractors) {
				e.attractors[i].Pos = curve.At(e.harmony.Center, t)
			}
		}
	}

	e.store.Each(func(pt *particle.Particle) {
		if p.TrailLength > 0 {
			pt.Trail.Push(pt.Pos, pt.Opacity, p.TrailLength)
		}
		pt.Acc = vmath.V(0, p.Gravity*pt.Mass)
		for _, a := range e.attractors {
			pt.Acc = pt.Acc.Add(particle.Force(a, pt.Pos, p.Softening))
		}

		gx, gy := e.fluid.ToGrid(pt.Pos)
		pt.Vel = pt.Vel.Add(e.fluid.Sample(gx, gy).Scale(p.FluidInfluence))
		if e.flow.Len() > 0 {
			pt.Vel = pt.Vel.Add(e.flow.Sample(pt.Pos.X, pt.Pos.Y).Scale(p.FlowInfluence))
		}

		pt.Vel = pt.Vel.Add(pt.Acc).Scale(p.Drag)
		pt.Pos = pt.Pos.Add(pt.Vel)
		pt.Rotation += pt.RotationSpeed
		if pt.HasSpiral {
			pt.SpiralAngle += p.SpiralStep
		}

		pt.Life--
		pt.Opacity = particle.Fade(pt.Life, pt.MaxLife)
		pt.Pulse = 1 + math.Sin(float64(now)*p.PulseRate+pt.PulsePhase)*p.PulseAmount
	})

	e.fluid.Step(1)
	e.flow.Update(1)
	e.stats.Pruned += e.store.Prune(func(pt *particle.Particle) bool { return pt.Alive() })

	if e.store.Len() == 0 && len(e.timers) == 0 {
		e.attractors = nil
	}
	if e.store.Len() == 0 && len(e.attractors) == 0 {
		e.animating = false
		e.harmony = nil
	}
	e.draw()
}

func (e *Engine) draw() {
	if e.surface == nil {
		return
	}
	e.renderer.Draw(e.surface, e.store.All())
	e.stats.Renders++
}

// reset drops all simulation state and cancels pending delayed spawns.
// Callers hold e.mu.
func (e *Engine) reset() {
	e.generation++
	for id, t := range e.timers {
		t.Stop()
		delete(e.timers, id)
	}
	e.store.Clear()
	e.attractors = nil
	e.harmony = nil
	e.fluid.Clear()
	e.flow.Clear()
	e.animating = false
	if e.surface != nil {
		e.surface.Clear()
	}
}

// Clear empties particles, attractors and fields and halts ticking.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// SetEnabled turns celebrations on or off. Disabling clears the session.
func (e *Engine) SetEnabled(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = on
	if !on {
		e.reset()
	}
}

// IsEnabled reports whether Celebrate would currently do anything.
func (e *Engine) IsEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled && !e.reduced && !e.destroyed
}

// SetReducedMotion mirrors the accessibility preference. Turning it on
// clears the session.
func (e *Engine) SetReducedMotion(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reduced = on
	if on {
		e.reset()
	}
}

// ReducedMotion reports the accessibility preference.
func (e *Engine) ReducedMotion() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reduced
}

// Resize follows a viewport change. The fluid grid is reallocated and an
// attached surface that implements render.Resizer is resized with it.
func (e *Engine) Resize(w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	e.size = core.Size{W: w, H: h}
	e.fluid.Resize(float64(w), float64(h))
	if r, ok := e.surface.(render.Resizer); ok {
		r.Resize(w, h)
	}
}

// Attach sets the drawing surface. Without one, ticks still run but nothing
// is drawn.
func (e *Engine) Attach(s render.Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.surface = s
	if r, ok := s.(render.Resizer); ok {
		if w, h := s.Size(); w != e.size.W || h != e.size.H {
			r.Resize(e.size.W, e.size.H)
		}
	}
}

// Detach drops the drawing surface.
func (e *Engine) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surface = nil
}

// Destroy ends the session. Every later call is a no-op.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.reset()
	e.destroyed = true
	e.surface = nil
}
