// Package palette maps emotions to celebration colours and widens short
// palettes with derived shades.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultEmotion names the palette used when nothing else is requested.
const DefaultEmotion = "joy"

var builtin = map[string][]string{
	"joy":       {"#ff595e", "#ffca3a", "#8ac926", "#1982c4", "#6a4c93"},
	"love":      {"#ff4d6d", "#ff8fa3", "#ffb3c1", "#c9184a", "#ffccd5"},
	"calm":      {"#a8dadc", "#457b9d", "#1d3557", "#f1faee", "#90e0ef"},
	"pride":     {"#e40303", "#ff8c00", "#ffed00", "#008026", "#004dff", "#750787"},
	"awe":       {"#7400b8", "#5e60ce", "#4ea8de", "#56cfe1", "#80ffdb"},
	"gratitude": {"#f4a261", "#e9c46a", "#2a9d8f", "#e76f51", "#fefae0"},
	"triumph":   {"#ffd700", "#ffb703", "#fb8500", "#ffffff", "#c0c0c0"},
	"hope":      {"#caffbf", "#9bf6ff", "#a0c4ff", "#fdffb6", "#ffc6ff"},
}

// Source resolves an emotion name to a palette. Implementations fall back
// to a default palette for unknown names and never return an empty slice.
type Source interface {
	Palette(emotion string) []color.RGBA
}

// Builtin serves the compiled-in palettes.
type Builtin struct{}

// Palette implements Source.
func (Builtin) Palette(emotion string) []color.RGBA {
	if p, ok := Lookup(emotion); ok {
		return p
	}
	return Default()
}

// Default returns the palette for DefaultEmotion.
func Default() []color.RGBA {
	p, _ := Lookup(DefaultEmotion)
	return p
}

// Lookup returns a fresh copy of the named palette.
func Lookup(emotion string) ([]color.RGBA, bool) {
	hexes, ok := builtin[strings.ToLower(strings.TrimSpace(emotion))]
	if !ok {
		return nil, false
	}
	p, err := Parse(hexes)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Names returns the known emotion names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse converts "#rrggbb" strings into opaque colours.
func Parse(hexes []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(hexes))
	for i, h := range hexes {
		h = strings.TrimSpace(h)
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("colour %d %q: %w", i, hexes[i], err)
		}
		out = append(out, toRGBA(c))
	}
	return out, nil
}

// Format renders c as "#rrggbb".
func Format(c color.RGBA) string {
	return fromRGBA(c).Hex()
}

// Extend returns a palette of at least n colours. Missing entries are lighter
// and darker shades of the existing ones, blended in HCL space.
func Extend(colors []color.RGBA, n int) []color.RGBA {
	out := append([]color.RGBA(nil), colors...)
	if len(colors) == 0 {
		return out
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	for i := len(colors); i < n; i++ {
		base := fromRGBA(colors[i%len(colors)])
		round := i / len(colors)
		t := 0.15 * float64((round+1)/2+1)
		if t > 0.6 {
			t = 0.6
		}
		var shade colorful.Color
		if round%2 == 1 {
			shade = base.BlendHcl(white, t)
		} else {
			shade = base.BlendHcl(black, t)
		}
		out = append(out, toRGBA(shade))
	}
	return out
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
