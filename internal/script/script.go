// Package script reads timed celebration cues from yaml and plays them
// against an engine.
//
// A script looks like:
//
//	width: 1280
//	height: 720
//	seed: 3
//	cues:
//	  - at: 0s
//	    recipe: supernova
//	    origin: [0.5, 0.4]
//	  - at: 1.2s
//	    recipe: bloom
//	    emotion: love
//	    petals: 8
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"confetti/internal/core"
	"confetti/internal/engine"
	"confetti/internal/palette"
	"confetti/internal/recipe"
	"confetti/internal/vmath"

	"github.com/benbjohnson/clock"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrUnknownRecipe = errors.New("unknown recipe")
	ErrNegativeTime  = errors.New("negative cue time")
	ErrBadOrigin     = errors.New("origin must be two values in [0,1]")
	ErrBadCount      = errors.New("count must not be negative")
	ErrBadIntensity  = errors.New("intensity must be in [0,1]")
)

// Script is a parsed, validated cue list sorted by time.
type Script struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
	Cues   []Cue `yaml:"cues"`
}

// Cue is one timed celebration. Omitted fields take the engine defaults.
type Cue struct {
	At        time.Duration `yaml:"at"`
	Recipe    string        `yaml:"recipe"`
	Origin    []float64     `yaml:"origin,omitempty"`
	Count     *int          `yaml:"count,omitempty"`
	Intensity *float64      `yaml:"intensity,omitempty"`
	HeartRate float64       `yaml:"heartRate,omitempty"`
	Emotion   string        `yaml:"emotion,omitempty"`
	Colors    []string      `yaml:"colors,omitempty"`
	Petals    int           `yaml:"petals,omitempty"`
	Layers    int           `yaml:"layers,omitempty"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a yaml script, rejects unknown fields and invalid cues, and
// sorts the cues by time.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i := range s.Cues {
		if err := s.Cues[i].validate(); err != nil {
			return nil, fmt.Errorf("cue %d: %w", i, err)
		}
	}
	sort.SliceStable(s.Cues, func(i, j int) bool { return s.Cues[i].At < s.Cues[j].At })
	return &s, nil
}

func (c *Cue) validate() error {
	if c.At < 0 {
		return ErrNegativeTime
	}
	if _, ok := recipe.Lookup(c.Recipe); !ok {
		return fmt.Errorf("%w %q", ErrUnknownRecipe, c.Recipe)
	}
	if c.Origin != nil {
		if len(c.Origin) != 2 || c.Origin[0] < 0 || c.Origin[0] > 1 || c.Origin[1] < 0 || c.Origin[1] > 1 {
			return ErrBadOrigin
		}
	}
	if c.Count != nil && *c.Count < 0 {
		return ErrBadCount
	}
	if c.Intensity != nil && (*c.Intensity < 0 || *c.Intensity > 1) {
		return ErrBadIntensity
	}
	if _, err := palette.Parse(c.Colors); err != nil {
		return err
	}
	return nil
}

// Viewport returns the script's canvas size, or fallback when unset.
func (s *Script) Viewport(fallback core.Size) core.Size {
	if s.Width > 0 && s.Height > 0 {
		return core.Size{W: s.Width, H: s.Height}
	}
	return fallback
}

// Duration returns the time of the last cue.
func (s *Script) Duration() time.Duration {
	if len(s.Cues) == 0 {
		return 0
	}
	return s.Cues[len(s.Cues)-1].At
}

// Celebration converts the cue into an engine request.
func (c Cue) Celebration() engine.Celebration {
	out := engine.NewCelebration(c.Recipe)
	if len(c.Origin) == 2 {
		out.Origin = vmath.V(c.Origin[0], c.Origin[1])
	}
	if c.Count != nil {
		out.Count = *c.Count
	}
	if c.Intensity != nil {
		out.Intensity = *c.Intensity
	}
	out.HeartRate = c.HeartRate
	out.Emotion = c.Emotion
	out.Petals = c.Petals
	out.Layers = c.Layers
	if colors, err := palette.Parse(c.Colors); err == nil && len(colors) > 0 {
		out.Colors = colors
	}
	return out
}

// Celebrator receives cues. *engine.Engine satisfies it.
type Celebrator interface {
	Celebrate(c engine.Celebration)
}

// Play fires every cue at its offset from now on clk. Cues at time zero fire
// before Play returns. The returned function cancels cues not yet fired.
func (s *Script) Play(target Celebrator, clk clock.Clock) (stop func()) {
	var (
		mu      sync.Mutex
		timers  []*clock.Timer
		stopped bool
	)
	for _, cue := range s.Cues {
		if cue.At <= 0 {
			target.Celebrate(cue.Celebration())
			continue
		}
		c := cue.Celebration()
		timers = append(timers, clk.AfterFunc(cue.At, func() {
			mu.Lock()
			halted := stopped
			mu.Unlock()
			if !halted {
				target.Celebrate(c)
			}
		}))
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		for _, t := range timers {
			t.Stop()
		}
	}
}

// Cursor walks a script in caller-controlled time, for deterministic
// stepping without timers.
type Cursor struct {
	cues []Cue
	next int
}

// Cursor returns a cursor positioned before the first cue.
func (s *Script) Cursor() *Cursor { return &Cursor{cues: s.Cues} }

// Advance returns the cues due at or before now that were not returned yet.
func (c *Cursor) Advance(now time.Duration) []Cue {
	start := c.next
	for c.next < len(c.cues) && c.cues[c.next].At <= now {
		c.next++
	}
	return c.cues[start:c.next]
}

// Done reports whether every cue has been returned.
func (c *Cursor) Done() bool { return c.next >= len(c.cues) }
