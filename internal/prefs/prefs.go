// Package prefs persists the user's celebration preferences between runs.
// Storage goes through gdata; without a gdata manager the store keeps
// preferences in memory only.
package prefs

import (
	"fmt"
	"log"
	"math"

	"confetti/internal/palette"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "preferences"
	prefsProperty = "global"
)

// Preferences are the persisted, user-facing switches.
type Preferences struct {
	Enabled       bool    `yaml:"enabled"`
	ReducedMotion bool    `yaml:"reducedMotion"`
	Emotion       string  `yaml:"emotion"`
	Intensity     float64 `yaml:"intensity"` // 0..1
}

// Defaults returns the preferences used on first run.
func Defaults() Preferences {
	return Preferences{
		Enabled:   true,
		Emotion:   palette.DefaultEmotion,
		Intensity: 1,
	}
}

// Target receives preferences. *engine.Engine satisfies it.
type Target interface {
	SetEnabled(on bool)
	SetReducedMotion(on bool)
}

// Store loads, holds and saves Preferences.
type Store struct {
	manager *gdata.Manager // nil means memory-only
	prefs   Preferences
}

// Open creates a gdata-backed store for appName. When the storage cannot be
// opened the returned store works in memory-only mode and the error says why.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("open storage: %w", err)
	}
	return NewStore(m), nil
}

// NewStore wraps manager and loads any saved preferences. A load failure is
// logged and leaves the defaults in place.
func NewStore(manager *gdata.Manager) *Store {
	s := &Store{manager: manager, prefs: Defaults()}
	if err := s.Load(); err != nil {
		log.Printf("[prefs] failed to load preferences: %v (using defaults)", err)
	}
	return s
}

// Persistent reports whether the store writes to disk.
func (s *Store) Persistent() bool { return s.manager != nil }

// Load replaces the in-memory preferences with the saved ones. Fields missing
// from the saved payload keep their defaults.
func (s *Store) Load() error {
	s.prefs = Defaults()
	if s.manager == nil {
		return nil
	}
	if !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal preferences: %w", err)
	}
	loaded.Intensity = clampIntensity(loaded.Intensity)
	if _, ok := palette.Lookup(loaded.Emotion); !ok {
		loaded.Emotion = palette.DefaultEmotion
	}
	s.prefs = loaded
	return nil
}

// Save writes the current preferences. In memory-only mode it does nothing.
func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Get returns the current preferences.
func (s *Store) Get() Preferences { return s.prefs }

// SetEnabled changes the master switch. Call Save to persist.
func (s *Store) SetEnabled(on bool) { s.prefs.Enabled = on }

// SetReducedMotion changes the accessibility switch. Call Save to persist.
func (s *Store) SetReducedMotion(on bool) { s.prefs.ReducedMotion = on }

// SetEmotion selects the default palette. Unknown emotions are refused.
func (s *Store) SetEmotion(name string) bool {
	if _, ok := palette.Lookup(name); !ok {
		return false
	}
	s.prefs.Emotion = name
	return true
}

// SetIntensity stores the default intensity, clamped to [0,1].
func (s *Store) SetIntensity(v float64) { s.prefs.Intensity = clampIntensity(v) }

// Apply pushes the switches into t.
func (s *Store) Apply(t Target) {
	t.SetReducedMotion(s.prefs.ReducedMotion)
	t.SetEnabled(s.prefs.Enabled)
}

func clampIntensity(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
