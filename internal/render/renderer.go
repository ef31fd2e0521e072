package render

import (
	"math"

	"confetti/internal/particle"
)

// Renderer defaults.
const (
	DefaultConnectDistance = 90
	DefaultLineWidth       = 1
	DefaultLineAlpha       = 0.35
	spiralTurns            = 2.5
)

// Renderer turns a particle snapshot into draw calls.
type Renderer struct {
	ConnectDistance float64
	LineWidth       float32
	LineAlpha       float64
}

// NewRenderer returns a renderer with the default line settings.
func NewRenderer() *Renderer {
	return &Renderer{
		ConnectDistance: DefaultConnectDistance,
		LineWidth:       DefaultLineWidth,
		LineAlpha:       DefaultLineAlpha,
	}
}

// Draw clears s and paints ps: proximity lines first, then each particle's
// trail followed by the particle itself.
func (r *Renderer) Draw(s Surface, ps []particle.Particle) {
	if s == nil {
		return
	}
	s.Clear()
	if len(ps) == 0 {
		return
	}
	r.drawConnections(s, ps)
	for i := range ps {
		p := &ps[i]
		drawTrail(s, p)
		drawShape(s, p)
	}
}

func (r *Renderer) drawConnections(s Surface, ps []particle.Particle) {
	d := r.ConnectDistance
	if d <= 0 {
		return
	}
	d2 := d * d
	for i := 0; i < len(ps); i++ {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			dist2 := a.Pos.Sub(b.Pos).LenSq()
			if dist2 >= d2 {
				continue
			}
			proximity := 1 - math.Sqrt(dist2)/d
			minOpacity := a.Opacity
			if b.Opacity < minOpacity {
				minOpacity = b.Opacity
			}
			alpha := proximity * minOpacity * r.LineAlpha
			if alpha <= 0 {
				continue
			}
			s.StrokeLine(a.Pos, b.Pos, r.LineWidth, withAlpha(a.Color, alpha))
		}
	}
}

func drawTrail(s Surface, p *particle.Particle) {
	n := p.Trail.Len()
	if n == 0 {
		return
	}
	size := p.ApparentSize()
	for i := 0; i < n; i++ {
		pt := p.Trail.At(i)
		age := float64(i+1) / float64(n+1)
		radius := size * 0.5 * age
		alpha := pt.Opacity * age * 0.5
		if radius <= 0 || alpha <= 0 {
			continue
		}
		s.FillCircle(pt.Pos, float32(radius), withAlpha(p.Color, alpha))
	}
}

func drawShape(s Surface, p *particle.Particle) {
	size := p.ApparentSize()
	if size <= 0 || p.Opacity <= 0 {
		return
	}
	c := withAlpha(p.Color, p.Opacity)
	switch p.Shape {
	case particle.ShapeCircle:
		s.FillCircle(p.Pos, float32(size/2), c)
	case particle.ShapeStar:
		s.FillPolygon(StarPoints(p.Pos, size*0.6, p.Rotation), c)
	case particle.ShapeHeart:
		s.FillPolygon(HeartPoints(p.Pos, size, p.Rotation, 24), c)
	case particle.ShapeHexagon:
		s.FillPolygon(HexagonPoints(p.Pos, size/2, p.Rotation), c)
	case particle.ShapeSpiral:
		angle := p.Rotation
		if p.HasSpiral {
			angle += p.SpiralAngle
		}
		s.StrokePath(SpiralPoints(p.Pos, size, angle, spiralTurns, 24), 1.5, c)
	default:
		s.FillPolygon(SquarePoints(p.Pos, size, p.Rotation), c)
	}
}
