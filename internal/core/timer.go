package core

import (
	"time"

	"github.com/benbjohnson/clock"
)

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	clk         clock.Clock
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxCatchUp  int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS. A nil
// clock uses wall-clock time.
func NewFixedStep(tps int, clk clock.Clock) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	if clk == nil {
		clk = clock.New()
	}
	fs := &FixedStep{clk: clk, maxCatchUp: 5}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step reports the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.Due() > 0
}

// Due consumes elapsed time and returns how many ticks are owed, capped so a
// long stall does not trigger a burst of catch-up ticks.
func (f *FixedStep) Due() int {
	now := f.clk.Now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
		if n >= f.maxCatchUp {
			f.accumulator = 0
			break
		}
	}
	return n
}
