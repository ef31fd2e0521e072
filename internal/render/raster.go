package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"confetti/internal/core"
	"confetti/internal/vmath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Raster is a software Surface backed by an image.RGBA. It is what the
// headless tools and the tests draw into.
type Raster struct {
	img        *image.RGBA
	background color.RGBA
	z          *vector.Rasterizer
	clears     int
}

// NewRaster allocates a w×h raster cleared to background.
func NewRaster(w, h int, background color.RGBA) *Raster {
	r := &Raster{background: background}
	r.Resize(w, h)
	return r
}

// Resize reallocates the backing image.
func (r *Raster) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.z = vector.NewRasterizer(w, h)
	fillSolidRGBA(r.img.Pix, r.background)
}

// Size implements Surface.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (r *Raster) Clear() {
	fillSolidRGBA(r.img.Pix, r.background)
	r.clears++
}

// Clears reports how many times the raster has been cleared.
func (r *Raster) Clears() int { return r.clears }

// Image exposes the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// FillPolygon implements Surface. Only the polygon's bounding box, clipped
// to the image, is rasterized.
func (r *Raster) FillPolygon(pts []vmath.Vec2, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	box := polygonBounds(pts).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}
	view := r.window(box)
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	r.z.Reset(box.Dx(), box.Dy())
	r.z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		r.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	r.z.ClosePath()
	r.z.DrawOp = draw.Over
	r.z.Draw(view, view.Bounds(), image.NewUniform(c), image.Point{})
}

// window returns an image sharing r's pixels inside box, re-based so that
// box.Min is its origin.
func (r *Raster) window(box image.Rectangle) *image.RGBA {
	return &image.RGBA{
		Pix:    r.img.Pix[r.img.PixOffset(box.Min.X, box.Min.Y):],
		Stride: r.img.Stride,
		Rect:   image.Rect(0, 0, box.Dx(), box.Dy()),
	}
}

func polygonBounds(pts []vmath.Vec2) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
}

// FillCircle implements Surface.
func (r *Raster) FillCircle(center vmath.Vec2, radius float32, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	r.FillPolygon(circlePoints(center, float64(radius)), c)
}

// StrokeLine implements Surface.
func (r *Raster) StrokeLine(a, b vmath.Vec2, width float32, c color.NRGBA) {
	r.FillPolygon(strokeQuad(a, b, float64(width)), c)
}

// StrokePath implements Surface.
func (r *Raster) StrokePath(pts []vmath.Vec2, width float32, c color.NRGBA) {
	for i := 1; i < len(pts); i++ {
		r.StrokeLine(pts[i-1], pts[i], width, c)
	}
}

// DrawField composites a coarse scalar grid over the raster, stretched to
// the full image, with alpha proportional to value/peak.
func (r *Raster) DrawField(g *core.Grid, peak float64, tint color.RGBA) {
	if g == nil || g.W == 0 || g.H == 0 {
		return
	}
	layer := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	fillScalarRGBA(layer.Pix, g.Cells(), peak, tint)
	xdraw.BiLinear.Scale(r.img, r.img.Bounds(), layer, layer.Bounds(), xdraw.Over, nil)
}

// EncodePNG writes the raster as PNG to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG writes the raster to path.
func (r *Raster) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
