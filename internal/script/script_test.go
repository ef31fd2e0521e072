package script

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"confetti/internal/core"
	"confetti/internal/engine"
	"confetti/internal/vmath"

	"github.com/benbjohnson/clock"
)

const sample = `
width: 640
height: 480
seed: 9
cues:
  - at: 1500ms
    recipe: bloom
    petals: 8
    emotion: love
  - at: 0s
    recipe: supernova
    origin: [0.25, 0.75]
    count: 40
    intensity: 0.5
  - at: 1s
    recipe: helix
    colors: ["#ff0000", "00ff00"]
`

type recorder struct {
	mu    sync.Mutex
	got   []engine.Celebration
	times []time.Time
	clk   clock.Clock
}

func (r *recorder) Celebrate(c engine.Celebration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, c)
	r.times = append(r.times, r.clk.Now())
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestParseSortsAndDefaults(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := s.Viewport(core.Size{W: 1, H: 1}); got != (core.Size{W: 640, H: 480}) {
		t.Fatalf("unexpected viewport %v", got)
	}
	names := []string{s.Cues[0].Recipe, s.Cues[1].Recipe, s.Cues[2].Recipe}
	if names[0] != "supernova" || names[1] != "helix" || names[2] != "bloom" {
		t.Fatalf("cues not sorted by time: %v", names)
	}
	if s.Duration() != 1500*time.Millisecond {
		t.Fatalf("unexpected duration %v", s.Duration())
	}

	nova := s.Cues[0].Celebration()
	if nova.Origin != vmath.V(0.25, 0.75) || nova.Count != 40 || nova.Intensity != 0.5 {
		t.Fatalf("unexpected supernova celebration: %+v", nova)
	}
	bloom := s.Cues[2].Celebration()
	if bloom.Origin != vmath.V(0.5, 0.5) || bloom.Count != 100 || bloom.Intensity != 1 || bloom.Petals != 8 {
		t.Fatalf("omitted fields should take defaults: %+v", bloom)
	}
	helix := s.Cues[1].Celebration()
	if len(helix.Colors) != 2 || helix.Colors[1].G != 255 {
		t.Fatalf("colours not parsed: %+v", helix.Colors)
	}
}

func TestParseRejectsInvalidCues(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown recipe", "cues:\n  - recipe: fireworks\n", ErrUnknownRecipe},
		{"negative time", "cues:\n  - at: -1s\n    recipe: vortex\n", ErrNegativeTime},
		{"origin arity", "cues:\n  - recipe: vortex\n    origin: [0.5]\n", ErrBadOrigin},
		{"origin range", "cues:\n  - recipe: vortex\n    origin: [2, 0.5]\n", ErrBadOrigin},
		{"count", "cues:\n  - recipe: vortex\n    count: -4\n", ErrBadCount},
		{"intensity", "cues:\n  - recipe: vortex\n    intensity: 1.5\n", ErrBadIntensity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := Parse([]byte("cues:\n  - recipe: vortex\n    colors: [nope]\n")); err == nil {
		t.Fatalf("bad colour should fail")
	}
	if _, err := Parse([]byte("cues:\n  - recipe: vortex\n    sparkle: true\n")); err == nil {
		t.Fatalf("unknown field should fail")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(s.Cues))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPlayFiresOnClock(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mock := clock.NewMock()
	start := mock.Now()
	rec := &recorder{clk: mock}
	stop := s.Play(rec, mock)
	defer stop()

	if rec.count() != 1 {
		t.Fatalf("cue at zero should fire immediately, got %d", rec.count())
	}
	mock.Add(time.Second)
	waitFor(t, func() bool { return rec.count() == 2 })
	mock.Add(500 * time.Millisecond)
	waitFor(t, func() bool { return rec.count() == 3 })

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.got[1].Recipe != "helix" || rec.times[1].Sub(start) != time.Second {
		t.Fatalf("helix should fire at 1s, got %s at %v", rec.got[1].Recipe, rec.times[1].Sub(start))
	}
}

func TestStopCancelsPendingCues(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mock := clock.NewMock()
	rec := &recorder{clk: mock}
	stop := s.Play(rec, mock)
	stop()
	mock.Add(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("stopped script fired %d cues", rec.count())
	}
}

func TestCursorAdvances(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := s.Cursor()
	if got := c.Advance(0); len(got) != 1 || got[0].Recipe != "supernova" {
		t.Fatalf("expected supernova at 0, got %v", got)
	}
	if got := c.Advance(900 * time.Millisecond); len(got) != 0 {
		t.Fatalf("nothing due before 1s, got %v", got)
	}
	if got := c.Advance(2 * time.Second); len(got) != 2 || !c.Done() {
		t.Fatalf("expected the remaining two cues, got %v", got)
	}
}

func TestPlayDrivesEngine(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mock := clock.NewMock()
	e := engine.New(engine.Options{Viewport: s.Viewport(core.Size{}), Clock: mock, Seed: s.Seed})
	stop := s.Play(e, mock)
	defer stop()
	if e.Len() == 0 {
		t.Fatalf("first cue should spawn particles")
	}
}
