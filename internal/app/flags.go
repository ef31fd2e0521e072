package app

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"confetti/internal/core"
	"confetti/internal/engine"
)

// Config represents the command-line parameters shared by the confetti
// binaries.
type Config struct {
	Width   int
	Height  int
	TPS     int
	Seed    int64
	Recipe  string
	Emotion string
	Script  string
	HUD     int
	Prefs   string
	Set     Settings
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:  960,
		Height: 640,
		TPS:    60,
		Seed:   42,
		Recipe: "supernova",
		HUD:    260,
		Prefs:  "confetti",
		Set:    Settings{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for particle jitter")
	fs.StringVar(&c.Recipe, "recipe", c.Recipe, "recipe fired by the default trigger")
	fs.StringVar(&c.Emotion, "emotion", c.Emotion, "palette emotion, overrides the saved preference")
	fs.StringVar(&c.Script, "script", c.Script, "YAML cue script to play")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width, 0 hides it")
	fs.StringVar(&c.Prefs, "prefs", c.Prefs, "preference store name, empty disables persistence")
	fs.Var(c.Set, "set", "engine parameter override as key=value (repeatable)")
}

// Viewport returns the configured viewport size.
func (c *Config) Viewport() core.Size {
	return core.Size{W: c.Width, H: c.Height}
}

// Params resolves the engine parameters, applying every -set override on top
// of the defaults.
func (c *Config) Params() engine.Params {
	return engine.ParamsFromMap(c.Set)
}

// Settings collects repeated key=value flags.
type Settings map[string]string

// String implements flag.Value.
func (s Settings) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+s[k])
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (s Settings) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	s[key] = strings.TrimSpace(value)
	return nil
}
