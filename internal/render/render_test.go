package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"confetti/internal/core"
	"confetti/internal/particle"
	"confetti/internal/vmath"
)

type call struct {
	op     string
	points int
	color  color.NRGBA
}

type recorder struct {
	clears int
	calls  []call
}

func (r *recorder) Size() (int, int) { return 100, 100 }
func (r *recorder) Clear() { r.clears++ }
func (r *recorder) StrokeLine(a, b vmath.Vec2, width float32, c color.NRGBA) {
	r.calls = append(r.calls, call{op: "line", points: 2, color: c})
}
func (r *recorder) FillCircle(center vmath.Vec2, radius float32, c color.NRGBA) {
	r.calls = append(r.calls, call{op: "circle", points: 1, color: c})
}
func (r *recorder) FillPolygon(pts []vmath.Vec2, c color.NRGBA) {
	r.calls = append(r.calls, call{op: "polygon", points: len(pts), color: c})
}
func (r *recorder) StrokePath(pts []vmath.Vec2, width float32, c color.NRGBA) {
	r.calls = append(r.calls, call{op: "path", points: len(pts), color: c})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func newParticle(x, y float64, shape particle.Shape) particle.Particle {
	p := particle.New(vmath.V(x, y), vmath.Vec2{}, 100)
	p.Shape = shape
	p.Size = 6
	p.Color = color.RGBA{R: 200, G: 100, B: 50, A: 255}
	return p
}

func TestDrawClearsEvenWhenEmpty(t *testing.T) {
	r := NewRenderer()
	rec := &recorder{}
	r.Draw(rec, nil)
	if rec.clears != 1 || len(rec.calls) != 0 {
		t.Fatalf("expected a single clear and no draws, got %d clears %d calls", rec.clears, len(rec.calls))
	}
	r.Draw(nil, []particle.Particle{newParticle(1, 1, particle.ShapeCircle)})
}

func TestConnectionsFollowDistanceAndOpacity(t *testing.T) {
	r := NewRenderer()
	a := newParticle(10, 10, particle.ShapeCircle)
	b := newParticle(40, 10, particle.ShapeCircle)
	b.Opacity = 0.5
	far := newParticle(500, 500, particle.ShapeCircle)

	rec := &recorder{}
	r.Draw(rec, []particle.Particle{a, b, far})
	if got := rec.count("line"); got != 1 {
		t.Fatalf("expected one proximity line, got %d", got)
	}
	line := rec.calls[0]
	want := (1 - 30.0/DefaultConnectDistance) * 0.5 * DefaultLineAlpha
	if got := float64(line.color.A) / 255; math.Abs(got-want) > 0.01 {
		t.Fatalf("expected line alpha %.3f, got %.3f", want, got)
	}

	r.ConnectDistance = 0
	rec = &recorder{}
	r.Draw(rec, []particle.Particle{a, b})
	if rec.count("line") != 0 {
		t.Fatalf("connections should be disabled at distance 0")
	}
}

func TestTrailDrawnOldestSmallest(t *testing.T) {
	p := newParticle(50, 50, particle.ShapeSquare)
	for i := 0; i < 4; i++ {
		p.Trail.Push(vmath.V(float64(40+i), 50), 1, 8)
	}
	rec := &recorder{}
	NewRenderer().Draw(rec, []particle.Particle{p})
	if got := rec.count("circle"); got != 4 {
		t.Fatalf("expected 4 trail circles, got %d", got)
	}
	if rec.calls[0].color.A >= rec.calls[3].color.A {
		t.Fatalf("older trail points should be fainter")
	}
	if last := rec.calls[len(rec.calls)-1]; last.op != "polygon" || last.points != 4 {
		t.Fatalf("particle should be drawn after its trail, got %+v", last)
	}
}

func TestShapeDispatch(t *testing.T) {
	cases := []struct {
		shape  particle.Shape
		op     string
		points int
	}{
		{particle.ShapeSquare, "polygon", 4},
		{particle.ShapeCircle, "circle", 1},
		{particle.ShapeStar, "polygon", 10},
		{particle.ShapeHeart, "polygon", 24},
		{particle.ShapeHexagon, "polygon", 6},
		{particle.ShapeSpiral, "path", 25},
	}
	for _, tc := range cases {
		t.Run(tc.shape.String(), func(t *testing.T) {
			rec := &recorder{}
			NewRenderer().Draw(rec, []particle.Particle{newParticle(50, 50, tc.shape)})
			if len(rec.calls) != 1 {
				t.Fatalf("expected one draw call, got %d", len(rec.calls))
			}
			if c := rec.calls[0]; c.op != tc.op || c.points != tc.points {
				t.Fatalf("expected %s with %d points, got %+v", tc.op, tc.points, c)
			}
		})
	}
}

func TestInvisibleParticleSkipped(t *testing.T) {
	p := newParticle(50, 50, particle.ShapeStar)
	p.Opacity = 0
	rec := &recorder{}
	NewRenderer().Draw(rec, []particle.Particle{p})
	if len(rec.calls) != 0 {
		t.Fatalf("transparent particle should not be drawn")
	}
}

func TestGeometry(t *testing.T) {
	c := vmath.V(10, 20)
	for _, p := range HexagonPoints(c, 5, 0.3) {
		if math.Abs(p.Dist(c)-5) > 1e-9 {
			t.Fatalf("hexagon vertex off circumradius: %v", p)
		}
	}
	sq := SquarePoints(c, 4, 0)
	if sq[0] != vmath.V(8, 18) || sq[2] != vmath.V(12, 22) {
		t.Fatalf("unexpected square corners: %v", sq)
	}
	spiral := SpiralPoints(c, 8, 0, 2, 16)
	if spiral[0] != c || math.Abs(spiral[16].Dist(c)-8) > 1e-9 {
		t.Fatalf("spiral should run from centre to radius")
	}
	star := StarPoints(c, 10, 0)
	if math.Abs(star[0].Dist(c)-10) > 1e-9 || math.Abs(star[1].Dist(c)-4.5) > 1e-9 {
		t.Fatalf("star radii wrong")
	}
}

func TestRasterFillAndClear(t *testing.T) {
	bg := color.RGBA{A: 255}
	r := NewRaster(40, 30, bg)
	if w, h := r.Size(); w != 40 || h != 30 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	r.FillPolygon(SquarePoints(vmath.V(20, 15), 10, 0), color.NRGBA{R: 255, A: 255})
	if got := r.Image().RGBAAt(20, 15); got.R != 255 {
		t.Fatalf("expected filled centre, got %v", got)
	}
	if got := r.Image().RGBAAt(2, 2); got != bg {
		t.Fatalf("expected untouched corner, got %v", got)
	}
	r.Clear()
	if got := r.Image().RGBAAt(20, 15); got != bg || r.Clears() != 1 {
		t.Fatalf("clear should restore the background")
	}
	r.Resize(10, 5)
	if w, h := r.Size(); w != 10 || h != 5 {
		t.Fatalf("resize failed: %dx%d", w, h)
	}
}

func TestRasterDrawsFrame(t *testing.T) {
	r := NewRaster(100, 100, color.RGBA{A: 255})
	ps := []particle.Particle{
		newParticle(30, 30, particle.ShapeCircle),
		newParticle(60, 30, particle.ShapeSpiral),
		newParticle(50, 70, particle.ShapeHeart),
	}
	NewRenderer().Draw(r, ps)
	if got := r.Image().RGBAAt(30, 30); got.R == 0 {
		t.Fatalf("circle particle not painted: %v", got)
	}
}

func TestRasterField(t *testing.T) {
	r := NewRaster(20, 20, color.RGBA{A: 255})
	g := core.NewGrid(2, 2)
	g.Add(0, 0, 1)
	r.DrawField(g, 1, color.RGBA{B: 255, A: 255})
	if got := r.Image().RGBAAt(1, 1); got.B == 0 {
		t.Fatalf("expected tinted field cell, got %v", got)
	}
	if got := r.Image().RGBAAt(18, 18); got.B != 0 {
		t.Fatalf("empty cell should stay clear, got %v", got)
	}
}

func TestRasterWritePNG(t *testing.T) {
	r := NewRaster(8, 6, color.RGBA{R: 10, A: 255})
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.WritePNG(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if err := r.WritePNG(filepath.Join(t.TempDir(), "missing", "x.png")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestVertexColorIsPremultiplied(t *testing.T) {
	r, g, b, a := vertexColor(color.NRGBA{R: 255, G: 128, A: 26})
	if math.Abs(float64(a)-26.0/255) > 1e-3 {
		t.Fatalf("alpha = %v", a)
	}
	if r > a || g > a || b != 0 {
		t.Fatalf("components must not exceed alpha: r=%v g=%v b=%v a=%v", r, g, b, a)
	}
	if math.Abs(float64(r-a)) > 1e-3 {
		t.Fatalf("full red should equal alpha after premultiplying, r=%v a=%v", r, a)
	}
	r, g, _, a = vertexColor(color.NRGBA{R: 255, G: 128, A: 255})
	if r != 1 || a != 1 || math.Abs(float64(g)-128.0/255) > 1e-3 {
		t.Fatalf("opaque colour should pass through, got r=%v g=%v a=%v", r, g, a)
	}
}

func TestRasterPolygonAtEdges(t *testing.T) {
	bg := color.RGBA{A: 255}
	r := NewRaster(40, 30, bg)
	red := color.NRGBA{R: 255, A: 255}

	r.FillPolygon(SquarePoints(vmath.V(38, 28), 10, 0), red)
	if got := r.Image().RGBAAt(38, 28); got.R != 255 {
		t.Fatalf("corner square not painted: %v", got)
	}
	if got := r.Image().RGBAAt(30, 20); got != bg {
		t.Fatalf("pixel outside the square painted: %v", got)
	}

	r.Clear()
	r.FillPolygon(SquarePoints(vmath.V(-50, -50), 10, 0), red)
	r.FillCircle(vmath.V(100, 15), 5, red)
	for i := 0; i < len(r.Image().Pix); i += 4 {
		if r.Image().Pix[i] != 0 {
			t.Fatalf("off-canvas shapes touched pixel %d", i/4)
		}
	}

	r.FillCircle(vmath.V(10, 10), 3, red)
	if got := r.Image().RGBAAt(10, 10); got.R != 255 {
		t.Fatalf("circle centre not painted: %v", got)
	}
	if got := r.Image().RGBAAt(20, 10); got != bg {
		t.Fatalf("circle spilled: %v", got)
	}
}

func TestColourAlphaScalesOpacity(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 178}
	if got := withAlpha(c, 1); got.A != 178 || got.R != 200 {
		t.Fatalf("full opacity should keep the colour alpha, got %v", got)
	}
	if got := withAlpha(c, 0.5); got.A != 89 {
		t.Fatalf("half opacity alpha = %d, want 89", got.A)
	}
}
