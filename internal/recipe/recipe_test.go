package recipe

import (
	"image/color"
	"math"
	"testing"
	"time"

	"confetti/internal/core"
	"confetti/internal/particle"
	"confetti/internal/vmath"
	"confetti/pkg/rng"
)

var testPalette = []color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
}

func testRequest(count int, intensity float64) Request {
	return Request{
		Origin:    vmath.V(500, 400),
		Viewport:  core.Size{W: 1000, H: 800},
		Count:     count,
		Colors:    testPalette,
		Intensity: intensity,
		RNG:       rng.New(42),
	}
}

func TestAllRecipesRegistered(t *testing.T) {
	want := []string{
		"aurora", "bloom", "cascade", "constellation", "emergence", "harmony",
		"helix", "nebula", "orbit", "resonance", "supernova", "vortex",
	}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d recipes, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recipe %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if _, ok := Lookup("  SuperNova "); !ok {
		t.Fatalf("lookup should ignore case and surrounding space")
	}
	if _, ok := Build("fireworks", testRequest(10, 1)); ok {
		t.Fatalf("unknown recipe should not build")
	}
}

func TestRecipesSpawnRequestedCount(t *testing.T) {
	for _, name := range Names() {
		for _, count := range []int{1, 7, 60, 150} {
			plan, ok := Build(name, testRequest(count, 1))
			if !ok {
				t.Fatalf("%s: build failed", name)
			}
			if got := plan.Total(); got != count {
				t.Fatalf("%s: expected %d particles, got %d", name, count, got)
			}
		}
	}
}

func TestZeroCountKeepsFieldSetup(t *testing.T) {
	for _, name := range Names() {
		plan, _ := Build(name, testRequest(0, 1))
		if plan.Total() != 0 {
			t.Fatalf("%s: expected no particles, got %d", name, plan.Total())
		}
	}

	vortex, _ := Build("vortex", testRequest(0, 1))
	if len(vortex.Attractors) != 1 || len(vortex.Fluid) == 0 {
		t.Fatalf("vortex should still set up attractor and fluid, got %d/%d", len(vortex.Attractors), len(vortex.Fluid))
	}
	cascade, _ := Build("cascade", testRequest(0, 1))
	if len(cascade.Flow) != 12 {
		t.Fatalf("cascade should seed 12 flow sources, got %d", len(cascade.Flow))
	}
}

func TestZeroIntensityIsInert(t *testing.T) {
	for _, name := range Names() {
		plan, _ := Build(name, testRequest(40, 0))
		check := func(where string, vel vmath.Vec2, mass, spin float64) {
			if vel.Len() > 1e-9 || mass != 0 || spin != 0 {
				t.Fatalf("%s %s: expected inert particle, got vel=%v mass=%v spin=%v", name, where, vel, mass, spin)
			}
		}
		for _, p := range plan.Particles {
			check("immediate", p.Vel, p.Mass, p.RotationSpeed)
		}
		for _, d := range plan.Delayed {
			for _, p := range d.Particles {
				check("delayed", p.Vel, p.Mass, p.RotationSpeed)
			}
		}
		for _, a := range plan.Attractors {
			if a.Strength != 0 {
				t.Fatalf("%s: expected zero attractor strength, got %v", name, a.Strength)
			}
		}
	}
}

func TestSupernovaBurstThenRing(t *testing.T) {
	plan, _ := Build("supernova", testRequest(100, 1))
	if len(plan.Particles) != 60 {
		t.Fatalf("expected 60 burst particles, got %d", len(plan.Particles))
	}
	for _, p := range plan.Particles {
		if p.Pos != vmath.V(500, 400) {
			t.Fatalf("burst particle should start at origin, got %v", p.Pos)
		}
		speed := p.Vel.Len()
		if speed < SupernovaBurstMinSpeed-1e-9 || speed > SupernovaBurstMaxSpeed+1e-9 {
			t.Fatalf("burst speed out of range: %v", speed)
		}
		if p.Size > SupernovaBurstMaxSize {
			t.Fatalf("burst particle too large: %v", p.Size)
		}
	}
	if len(plan.Delayed) != 1 {
		t.Fatalf("expected one delayed ring, got %d", len(plan.Delayed))
	}
	ring := plan.Delayed[0]
	if ring.After != SupernovaDelay {
		t.Fatalf("expected ring after %v, got %v", SupernovaDelay, ring.After)
	}
	if len(ring.Particles) != 40 {
		t.Fatalf("expected 40 ring particles, got %d", len(ring.Particles))
	}
	for _, p := range ring.Particles {
		if p.Size < SupernovaRingMinSize {
			t.Fatalf("ring particle too small: %v", p.Size)
		}
		if speed := p.Vel.Len(); speed > SupernovaRingMaxSpeed+1e-9 {
			t.Fatalf("ring particle too fast: %v", speed)
		}
	}
}

func TestStaggeredRecipesSpreadOverSpan(t *testing.T) {
	cases := []struct {
		name    string
		batches int
		span    time.Duration
	}{
		{"cascade", CascadeBatches, CascadeSpan},
		{"emergence", EmergenceBatches, EmergenceSpan},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, _ := Build(tc.name, testRequest(120, 1))
			if len(plan.Particles) != 120/tc.batches {
				t.Fatalf("expected %d immediate particles, got %d", 120/tc.batches, len(plan.Particles))
			}
			if len(plan.Delayed) != tc.batches-1 {
				t.Fatalf("expected %d delayed batches, got %d", tc.batches-1, len(plan.Delayed))
			}
			last := time.Duration(0)
			for _, d := range plan.Delayed {
				if d.After <= last || d.After >= tc.span {
					t.Fatalf("delay %v out of order or beyond %v", d.After, tc.span)
				}
				last = d.After
			}
		})
	}
}

func TestEmergenceTagsSpirals(t *testing.T) {
	plan, _ := Build("emergence", testRequest(24, 1))
	for _, p := range plan.Particles {
		if !p.HasSpiral {
			t.Fatalf("expected spiral particles")
		}
	}
	if plan.Flow[0].Pos != vmath.V(500, 400) || len(plan.Flow) != 9 {
		t.Fatalf("expected central source plus ring of 8, got %d", len(plan.Flow))
	}
}

func TestOnlyHarmonyCarriesLissajous(t *testing.T) {
	for _, name := range Names() {
		plan, _ := Build(name, testRequest(10, 1))
		if (plan.Harmony != nil) != (name == "harmony") {
			t.Fatalf("%s: unexpected harmony state %v", name, plan.Harmony)
		}
	}
	plan, _ := Build("harmony", testRequest(10, 1))
	if len(plan.Harmony.Curves) != len(plan.Attractors) || len(plan.Attractors) != 3 {
		t.Fatalf("expected 3 curves driving 3 attractors")
	}
	for i, a := range plan.Attractors {
		if a.Pos != plan.Harmony.Curves[i].At(plan.Harmony.Center, 0) {
			t.Fatalf("attractor %d should start on its curve", i)
		}
	}
}

func TestResonanceBeatsFollowHeartRate(t *testing.T) {
	req := testRequest(20, 1)
	req.BPM = 120
	plan, _ := Build("resonance", req)
	if len(plan.Delayed) != 4 {
		t.Fatalf("expected 4 delayed beats, got %d", len(plan.Delayed))
	}
	for k, d := range plan.Delayed {
		want := time.Duration(k+1) * 500 * time.Millisecond
		if d.After != want || len(d.Fluid) == 0 {
			t.Fatalf("beat %d: expected fluid pulse at %v, got %v", k+1, want, d.After)
		}
	}
	if got := BeatInterval(0); got != BeatInterval(DefaultBPM) {
		t.Fatalf("zero heart rate should use the default, got %v", got)
	}
}

func TestHelixStrandColors(t *testing.T) {
	plan, _ := Build("helix", testRequest(20, 1))
	for i, p := range plan.Particles {
		if p.Color != testPalette[i%2] {
			t.Fatalf("particle %d: expected strand colour %v, got %v", i, testPalette[i%2], p.Color)
		}
	}
}

func TestConstellationStaysInsideMargin(t *testing.T) {
	plan, _ := Build("constellation", testRequest(200, 1))
	for _, p := range plan.Particles {
		if p.Pos.X < ConstellationMargin || p.Pos.X > 1000-ConstellationMargin ||
			p.Pos.Y < ConstellationMargin || p.Pos.Y > 800-ConstellationMargin {
			t.Fatalf("star outside margin: %v", p.Pos)
		}
	}
	req := testRequest(10, 1)
	req.Viewport = core.Size{W: 60, H: 60}
	tiny, _ := Build("constellation", req)
	if tiny.Total() != 0 {
		t.Fatalf("expected no stars in a viewport smaller than the margins")
	}
}

func TestNebulaTranslucencyInColour(t *testing.T) {
	plan, _ := Build("nebula", testRequest(40, 1))
	for _, p := range plan.Particles {
		if p.Color.A != nebulaAlpha {
			t.Fatalf("nebula colour alpha = %d, want %d", p.Color.A, nebulaAlpha)
		}
		if p.Opacity != particle.Fade(p.Life, p.MaxLife) {
			t.Fatalf("opacity %v should follow life", p.Opacity)
		}
	}
}

func TestConstellationFillsExtremeAspectRatios(t *testing.T) {
	for _, size := range []core.Size{{W: 2400, H: 120}, {W: 100, H: 1600}, {W: 81, H: 81}} {
		req := testRequest(150, 1)
		req.Viewport = size
		plan, _ := Build("constellation", req)
		if plan.Total() != 150 {
			t.Fatalf("%dx%d: placed %d stars, want 150", size.W, size.H, plan.Total())
		}
		for _, p := range plan.Particles {
			if p.Pos.X < ConstellationMargin || p.Pos.X > float64(size.W)-ConstellationMargin ||
				p.Pos.Y < ConstellationMargin || p.Pos.Y > float64(size.H)-ConstellationMargin {
				t.Fatalf("%dx%d: star outside margin: %v", size.W, size.H, p.Pos)
			}
		}
	}
}

func TestBloomUsesPetalDefaults(t *testing.T) {
	plan, _ := Build("bloom", testRequest(DefaultPetals*DefaultLayers, 1))
	angles := map[int]bool{}
	for _, p := range plan.Particles {
		dir := p.Pos.Sub(vmath.V(500, 400))
		slot := int(math.Round(math.Atan2(dir.Y, dir.X) / (2 * math.Pi / DefaultPetals)))
		angles[(slot+DefaultPetals)%DefaultPetals] = true
	}
	if len(angles) != DefaultPetals {
		t.Fatalf("expected %d petals, got %d", DefaultPetals, len(angles))
	}
}

func TestNormalizedRequest(t *testing.T) {
	r := Request{Count: -3, Intensity: 4, BPM: math.NaN()}.Normalized()
	if r.Count != 0 || r.Intensity != 1 || r.BPM != DefaultBPM || r.RNG == nil {
		t.Fatalf("unexpected normalization: %+v", r)
	}
	if r := (Request{Intensity: math.NaN()}).Normalized(); r.Intensity != 0 {
		t.Fatalf("NaN intensity should become 0, got %v", r.Intensity)
	}
	if c := (Request{}).Color(5); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("empty palette should fall back to white, got %v", c)
	}
}
