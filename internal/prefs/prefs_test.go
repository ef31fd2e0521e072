package prefs

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openManager(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("open gdata: %v", err)
	}
	return m
}

type recordingTarget struct {
	enabled, reduced bool
	calls            []string
}

func (r *recordingTarget) SetEnabled(on bool) {
	r.enabled = on
	r.calls = append(r.calls, "enabled")
}

func (r *recordingTarget) SetReducedMotion(on bool) {
	r.reduced = on
	r.calls = append(r.calls, "reduced")
}

func TestMemoryOnlyStore(t *testing.T) {
	s := NewStore(nil)
	if s.Persistent() {
		t.Fatalf("nil manager should be memory-only")
	}
	if got := s.Get(); got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	s.SetEnabled(false)
	if err := s.Save(); err != nil {
		t.Fatalf("memory-only save should not fail: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("memory-only load should not fail: %v", err)
	}
	if !s.Get().Enabled {
		t.Fatalf("memory-only load resets to defaults")
	}
}

func TestSaveAndReload(t *testing.T) {
	m := openManager(t, "confetti_prefs_roundtrip")
	s := NewStore(m)
	s.SetEnabled(false)
	s.SetReducedMotion(true)
	if !s.SetEmotion("calm") {
		t.Fatalf("calm should be a known emotion")
	}
	s.SetIntensity(0.4)
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded := NewStore(m)
	want := Preferences{Enabled: false, ReducedMotion: true, Emotion: "calm", Intensity: 0.4}
	if got := reloaded.Get(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadSanitizesPayload(t *testing.T) {
	m := openManager(t, "confetti_prefs_sanitize")
	payload := []byte("enabled: false\nemotion: ennui\nintensity: 7\n")
	if err := m.SaveObjectProp(prefsObject, prefsProperty, payload); err != nil {
		t.Fatalf("seed payload: %v", err)
	}
	got := NewStore(m).Get()
	if got.Enabled || got.Emotion != "joy" || got.Intensity != 1 || got.ReducedMotion {
		t.Fatalf("unexpected sanitized prefs: %+v", got)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	m := openManager(t, "confetti_prefs_garbage")
	if err := m.SaveObjectProp(prefsObject, prefsProperty, []byte("enabled: [")); err != nil {
		t.Fatalf("seed payload: %v", err)
	}
	s := &Store{manager: m}
	if err := s.Load(); err == nil {
		t.Fatalf("expected unmarshal error")
	}
	if s.Get() != Defaults() {
		t.Fatalf("failed load should leave defaults")
	}
}

func TestSetters(t *testing.T) {
	s := NewStore(nil)
	if s.SetEmotion("ennui") {
		t.Fatalf("unknown emotion accepted")
	}
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tc := range cases {
		s.SetIntensity(tc.in)
		if got := s.Get().Intensity; got != tc.want {
			t.Errorf("SetIntensity(%v): got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestApplyPushesSwitches(t *testing.T) {
	s := NewStore(nil)
	s.SetEnabled(false)
	s.SetReducedMotion(true)
	target := &recordingTarget{enabled: true}
	s.Apply(target)
	if target.enabled || !target.reduced || len(target.calls) != 2 {
		t.Fatalf("unexpected target state: %+v", target)
	}
}
