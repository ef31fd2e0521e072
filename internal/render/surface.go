// Package render draws particle state onto a 2D drawing surface. The
// Renderer is stateless; surfaces own the pixels.
package render

import (
	"image/color"

	"confetti/internal/vmath"
)

// Surface is the minimal vector drawing API the renderer needs.
type Surface interface {
	Size() (w, h int)
	Clear()
	StrokeLine(a, b vmath.Vec2, width float32, c color.NRGBA)
	FillCircle(center vmath.Vec2, radius float32, c color.NRGBA)
	FillPolygon(pts []vmath.Vec2, c color.NRGBA)
	StrokePath(pts []vmath.Vec2, width float32, c color.NRGBA)
}

// Resizer is implemented by surfaces that can follow viewport changes.
type Resizer interface {
	Resize(w, h int)
}

// withAlpha returns c with its alpha scaled by a in [0,1].
func withAlpha(c color.RGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*a + 0.5)}
}

// vertexColor converts c to the premultiplied components ebiten expects in
// vertex colours.
func vertexColor(c color.NRGBA) (r, g, b, a float32) {
	pr, pg, pb, pa := c.RGBA()
	return float32(pr) / 0xffff, float32(pg) / 0xffff, float32(pb) / 0xffff, float32(pa) / 0xffff
}
