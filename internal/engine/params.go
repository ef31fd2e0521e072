package engine

import (
	"strconv"

	"confetti/internal/core"
	"confetti/internal/field"
	"confetti/internal/particle"
)

// Params holds the physical and visual tunables of a session.
type Params struct {
	Gravity        float64 // downward acceleration per unit mass
	Drag           float64 // velocity retained per tick
	FluidInfluence float64
	FlowInfluence  float64
	Softening      float64 // added to d² in the attractor force law
	TrailLength    int
	SpiralStep     float64 // radians per tick
	PulseAmount    float64
	PulseRate      float64 // radians per tick

	ConnectDistance float64

	FluidCell        float64
	FluidViscosity   float64
	FluidDissipation float64
	FluidDiffusion   float64

	MaxParticles int
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Gravity:          0.05,
		Drag:             0.985,
		FluidInfluence:   0.15,
		FlowInfluence:    0.1,
		Softening:        50,
		TrailLength:      8,
		SpiralStep:       0.08,
		PulseAmount:      0.08,
		PulseRate:        0.15,
		ConnectDistance:  90,
		FluidCell:        20,
		FluidViscosity:   0.96,
		FluidDissipation: 0.97,
		FluidDiffusion:   0.2,
		MaxParticles:     2000,
	}
}

func (p Params) fluidParams() field.FluidParams {
	return field.FluidParams{
		Diffusion:   p.FluidDiffusion,
		Viscosity:   p.FluidViscosity,
		Dissipation: p.FluidDissipation,
	}
}

type floatField struct {
	key, label string
	group      string
	get        func(p *Params) *float64
	min, max   float64
	step       float64
}

type intField struct {
	key, label string
	group      string
	get        func(p *Params) *int
	min, max   int
	step       int
}

var floatFields = []floatField{
	{"gravity", "Gravity", "Motion", func(p *Params) *float64 { return &p.Gravity }, -1, 1, 0.01},
	{"drag", "Drag", "Motion", func(p *Params) *float64 { return &p.Drag }, 0.5, 1, 0.005},
	{"softening", "Softening", "Motion", func(p *Params) *float64 { return &p.Softening }, 1, 500, 5},
	{"fluid_influence", "Fluid influence", "Fields", func(p *Params) *float64 { return &p.FluidInfluence }, 0, 1, 0.01},
	{"flow_influence", "Flow influence", "Fields", func(p *Params) *float64 { return &p.FlowInfluence }, 0, 1, 0.01},
	{"fluid_cell", "Fluid cell", "Fields", func(p *Params) *float64 { return &p.FluidCell }, 4, 200, 2},
	{"fluid_viscosity", "Fluid viscosity", "Fields", func(p *Params) *float64 { return &p.FluidViscosity }, 0, 1, 0.01},
	{"fluid_dissipation", "Fluid dissipation", "Fields", func(p *Params) *float64 { return &p.FluidDissipation }, 0, 1, 0.01},
	{"fluid_diffusion", "Fluid diffusion", "Fields", func(p *Params) *float64 { return &p.FluidDiffusion }, 0, 1, 0.05},
	{"spiral_step", "Spiral step", "Look", func(p *Params) *float64 { return &p.SpiralStep }, 0, 1, 0.01},
	{"pulse_amount", "Pulse amount", "Look", func(p *Params) *float64 { return &p.PulseAmount }, 0, 0.5, 0.01},
	{"pulse_rate", "Pulse rate", "Look", func(p *Params) *float64 { return &p.PulseRate }, 0, 1, 0.01},
	{"connect_distance", "Connect distance", "Look", func(p *Params) *float64 { return &p.ConnectDistance }, 0, 400, 10},
}

var intFields = []intField{
	{"trail_length", "Trail length", "Look", func(p *Params) *int { return &p.TrailLength }, 0, particle.TrailCap, 1},
	{"max_particles", "Max particles", "Motion", func(p *Params) *int { return &p.MaxParticles }, 1, 20000, 100},
}

// ParamsFromMap overlays string values onto DefaultParams. Unknown keys,
// unparsable values and values outside a field's range are ignored.
func ParamsFromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	for _, f := range floatFields {
		v, ok := cfg[f.key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= f.min && parsed <= f.max {
			*f.get(&p) = parsed
		}
	}
	for _, f := range intFields {
		v, ok := cfg[f.key]
		if !ok {
			continue
		}
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= f.min && parsed <= f.max {
			*f.get(&p) = parsed
		}
	}
	return p
}

// Parameters reports the current tunables grouped for the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot {
	e.mu.Lock()
	p := e.params
	e.mu.Unlock()

	var groups []core.ParameterGroup
	groupIndex := map[string]int{}
	add := func(group string, param core.Parameter) {
		i, ok := groupIndex[group]
		if !ok {
			i = len(groups)
			groupIndex[group] = i
			groups = append(groups, core.ParameterGroup{Name: group})
		}
		groups[i].Params = append(groups[i].Params, param)
	}
	for _, f := range floatFields {
		add(f.group, core.FloatParam(f.key, f.label, *f.get(&p)))
	}
	for _, f := range intFields {
		add(f.group, core.IntParam(f.key, f.label, *f.get(&p)))
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists every tunable with its HUD step and bounds.
func (e *Engine) ParameterControls() []core.ParameterControl {
	controls := make([]core.ParameterControl, 0, len(floatFields)+len(intFields))
	for _, f := range floatFields {
		controls = append(controls, core.ParameterControl{
			Key: f.key, Label: f.label, Type: core.ParamTypeFloat,
			Step: f.step, Min: f.min, Max: f.max, HasMin: true, HasMax: true,
		})
	}
	for _, f := range intFields {
		controls = append(controls, core.ParameterControl{
			Key: f.key, Label: f.label, Type: core.ParamTypeInt,
			Step: float64(f.step), Min: float64(f.min), Max: float64(f.max), HasMin: true, HasMax: true,
		})
	}
	return controls
}

// SetFloatParameter updates a float tunable. It reports false for unknown
// keys and out-of-range values.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	for _, f := range floatFields {
		if f.key != key {
			continue
		}
		if value < f.min || value > f.max {
			return false
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		p := e.params
		*f.get(&p) = value
		e.applyParams(p)
		return true
	}
	return false
}

// SetIntParameter updates an integer tunable.
func (e *Engine) SetIntParameter(key string, value int) bool {
	for _, f := range intFields {
		if f.key != key {
			continue
		}
		if value < f.min || value > f.max {
			return false
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		p := e.params
		*f.get(&p) = value
		e.applyParams(p)
		return true
	}
	return false
}

// SetParams replaces every tunable at once.
func (e *Engine) SetParams(p Params) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyParams(p)
}

// Params returns the current tunables.
func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// applyParams installs p and pushes it into the fields, store and renderer.
// Callers hold e.mu.
func (e *Engine) applyParams(p Params) {
	cellChanged := p.FluidCell != e.params.FluidCell
	e.params = p
	e.store.SetLimit(p.MaxParticles)
	e.renderer.ConnectDistance = p.ConnectDistance
	if cellChanged {
		e.fluid = field.NewFluid(float64(e.size.W), float64(e.size.H), p.FluidCell, p.fluidParams())
		return
	}
	e.fluid.SetParams(p.fluidParams())
}
