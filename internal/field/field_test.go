package field

import (
	"math"
	"testing"

	"confetti/internal/vmath"
)

func TestFluidDimensions(t *testing.T) {
	f := NewFluid(1000, 810, 20, DefaultFluidParams())
	if f.Cols() != 50 || f.Rows() != 41 {
		t.Fatalf("expected 50x41 grid, got %dx%d", f.Cols(), f.Rows())
	}
	gx, gy := f.ToGrid(vmath.V(500, 400))
	if gx != 25 || gy != 20 {
		t.Fatalf("ToGrid = (%f,%f), want (25,20)", gx, gy)
	}
}

func TestFluidForceSampleAndDecay(t *testing.T) {
	f := NewFluid(400, 400, 20, DefaultFluidParams())
	f.AddForce(10, 10, 4, 0, 3)

	v := f.Sample(10, 10)
	if math.Abs(v.X-4) > 1e-9 || v.Y != 0 {
		t.Fatalf("expected full impulse at centre, got %+v", v)
	}
	if far := f.Sample(0, 0); !far.IsZero() {
		t.Fatalf("expected no velocity outside radius, got %+v", far)
	}

	before := f.Energy()
	for i := 0; i < 30; i++ {
		f.Step(1)
	}
	after := f.Energy()
	if after >= before {
		t.Fatalf("expected energy to decay, before=%f after=%f", before, after)
	}
	if after <= 0 {
		t.Fatal("expected some motion to remain after 30 steps")
	}
}

func TestFluidDensityAndClear(t *testing.T) {
	f := NewFluid(200, 200, 20, DefaultFluidParams())
	f.AddDensity(5, 5, 2, 2)
	if d := f.Density(5, 5); math.Abs(d-2) > 1e-9 {
		t.Fatalf("density at centre = %f, want 2", d)
	}
	f.Clear()
	if d := f.Density(5, 5); d != 0 {
		t.Fatalf("density after Clear = %f", d)
	}
	if e := f.Energy(); e != 0 {
		t.Fatalf("energy after Clear = %f", e)
	}
}

func TestFlowSampleFalloff(t *testing.T) {
	f := NewFlow(1)
	f.AddSource(Source{Pos: vmath.V(100, 100), Vel: vmath.V(2, 0), Radius: 100})

	if got := f.Sample(100, 100); math.Abs(got.X-2) > 1e-9 {
		t.Fatalf("expected full strength at source, got %+v", got)
	}
	if got := f.Sample(150, 100); math.Abs(got.X-1) > 1e-9 {
		t.Fatalf("expected half strength at half radius, got %+v", got)
	}
	if got := f.Sample(250, 100); !got.IsZero() {
		t.Fatalf("expected zero outside radius, got %+v", got)
	}
}

func TestFlowRadialPushesOutward(t *testing.T) {
	f := NewFlow(1)
	f.AddSource(Source{Pos: vmath.V(0, 0), Vel: vmath.V(0, 3), Radius: 100, Mode: Radial})

	right := f.Sample(50, 0)
	if right.X <= 0 || math.Abs(right.Y) > 1e-9 {
		t.Fatalf("expected outward push to the right, got %+v", right)
	}
	up := f.Sample(0, -50)
	if up.Y >= 0 {
		t.Fatalf("expected outward push upward, got %+v", up)
	}
	if centre := f.Sample(0, 0); !centre.IsZero() {
		t.Fatalf("radial source must not push at its own centre, got %+v", centre)
	}
}

func TestFlowUpdateWobblePreservesMagnitude(t *testing.T) {
	f := NewFlow(9)
	f.AddSource(Source{Pos: vmath.V(300, 200), Vel: vmath.V(0, 2), Radius: 80, Wobble: 1.2})
	f.AddSource(Source{Pos: vmath.V(10, 10), Vel: vmath.V(1, 0), Radius: 80})

	for i := 0; i < 200; i++ {
		f.Update(1)
	}
	srcs := f.Sources()
	if got := srcs[0].Vel.Len(); math.Abs(got-2) > 1e-9 {
		t.Fatalf("wobble changed magnitude: %f", got)
	}
	if srcs[1].Vel != vmath.V(1, 0) {
		t.Fatalf("static source drifted: %+v", srcs[1].Vel)
	}

	f.Clear()
	if f.Len() != 0 {
		t.Fatalf("expected no sources after Clear, got %d", f.Len())
	}
}
