//go:build ebiten

package render

import (
	"image"
	"image/color"

	"confetti/internal/core"
	"confetti/internal/vmath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenSurface draws into an offscreen ebiten image.
type EbitenSurface struct {
	img        *ebiten.Image
	background color.RGBA
	vs         []ebiten.Vertex
	is         []uint16
}

// NewEbitenSurface allocates a w×h offscreen surface.
func NewEbitenSurface(w, h int, background color.RGBA) *EbitenSurface {
	s := &EbitenSurface{background: background}
	s.Resize(w, h)
	return s
}

// Resize implements Resizer.
func (s *EbitenSurface) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.img != nil {
		s.img.Dispose()
	}
	s.img = ebiten.NewImage(w, h)
	s.img.Fill(s.background)
}

// Image returns the offscreen image for compositing onto the screen.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (s *EbitenSurface) Clear() { s.img.Fill(s.background) }

// StrokeLine implements Surface.
func (s *EbitenSurface) StrokeLine(a, b vmath.Vec2, width float32, c color.NRGBA) {
	vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
}

// FillCircle implements Surface.
func (s *EbitenSurface) FillCircle(center vmath.Vec2, radius float32, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(center.X), float32(center.Y), radius, c, true)
}

// FillPolygon implements Surface.
func (s *EbitenSurface) FillPolygon(pts []vmath.Vec2, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.drawTriangles(c, ebiten.EvenOdd)
}

// StrokePath implements Surface.
func (s *EbitenSurface) StrokePath(pts []vmath.Vec2, width float32, c color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	op := &vector.StrokeOptions{Width: width, LineJoin: vector.LineJoinRound, LineCap: vector.LineCapRound}
	s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], op)
	s.drawTriangles(c, ebiten.FillAll)
}

func (s *EbitenSurface) drawTriangles(c color.NRGBA, rule ebiten.FillRule) {
	r, g, b, a := vertexColor(c)
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: rule, AntiAlias: true}
	s.img.DrawTriangles(s.vs, s.is, whiteSubImage, op)
}

// FieldPainter uploads a coarse scalar grid into an image and draws it
// stretched over a destination.
type FieldPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewFieldPainter allocates a painter for a grid of size w*h.
func NewFieldPainter(w, h int) *FieldPainter {
	fp := &FieldPainter{}
	fp.resize(w, h)
	return fp
}

func (fp *FieldPainter) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	fp.w, fp.h = w, h
	fp.buf = make([]byte, 4*w*h)
	fp.img = ebiten.NewImage(w, h)
}

// Blit uploads g and draws it scaled to cover dst.
func (fp *FieldPainter) Blit(dst *ebiten.Image, g *core.Grid, peak float64, tint color.RGBA) {
	if g == nil {
		return
	}
	if g.W != fp.w || g.H != fp.h {
		fp.resize(g.W, g.H)
	}
	fillScalarRGBA(fp.buf, g.Cells(), peak, tint)
	fp.img.WritePixels(fp.buf)

	b := dst.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx())/float64(fp.w), float64(b.Dy())/float64(fp.h))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(fp.img, op)
}
