//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"confetti/internal/core"
	"confetti/internal/engine"
	"confetti/internal/render"
	"confetti/internal/vmath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type densityProvider interface {
	Density() *core.Grid
}

type flowFieldProvider interface {
	FlowAt(x, y float64) vmath.Vec2
	FluidAt(x, y float64) vmath.Vec2
}

type statsProvider interface {
	Stats() engine.Stats
	Len() int
	Pending() int
}

var densityTint = color.RGBA{R: 120, G: 180, B: 255, A: 255}

// Overlay draws optional debugging visuals on top of the celebration view.
type Overlay struct {
	sim         core.Sim
	showDensity bool
	showFlow    bool
	showStats   bool

	painter *render.FieldPainter
	pixel   *ebiten.Image

	samples     []flowSample
	sampleW     int
	sampleH     int
	sampleSpan  float64
	densityPeak float64
}

type flowSample struct {
	x float64
	y float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, showStats: true, densityPeak: 4}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles: F for fluid density, G for the flow and
// fluid vectors, I for the stats line.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.showDensity = !o.showDensity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showFlow = !o.showFlow
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showStats = !o.showStats
	}
}

// Draw renders the overlay onto the viewport region of screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.Empty() {
		return
	}
	view := screen.SubImage(image.Rect(0, 0, size.W, size.H)).(*ebiten.Image)

	if o.showDensity {
		if provider, ok := o.sim.(densityProvider); ok {
			if o.painter == nil {
				o.painter = render.NewFieldPainter(1, 1)
			}
			o.painter.Blit(view, provider.Density(), o.densityPeak, densityTint)
		}
	}
	if o.showFlow {
		if provider, ok := o.sim.(flowFieldProvider); ok {
			o.drawFlowField(view, provider, size)
		}
	}
	if o.showStats {
		if provider, ok := o.sim.(statsProvider); ok {
			o.drawStats(view, provider)
		}
	}
}

func (o *Overlay) drawStats(screen *ebiten.Image, provider statsProvider) {
	st := provider.Stats()
	line := fmt.Sprintf("live %d  peak %d  pending %d  spawned %d  dropped %d  ticks %d",
		provider.Len(), st.Peak, provider.Pending(), st.Spawned, st.Dropped, st.Ticks)
	text.Draw(screen, line, basicfont.Face7x13, 8, 16, color.RGBA{R: 200, G: 200, B: 210, A: 220})
}

func (o *Overlay) drawFlowField(screen *ebiten.Image, provider flowFieldProvider, size core.Size) {
	if !o.ensureSamples(size) {
		return
	}

	const (
		calmThreshold    = 0.02
		maxSpeedEstimate = 2.0
		headAngle        = math.Pi / 6
	)

	minLength := o.sampleSpan * 0.35
	maxLength := o.sampleSpan * 0.8

	for _, s := range o.samples {
		v := provider.FlowAt(s.x, s.y).Add(provider.FluidAt(s.x, s.y))
		speed := v.Len()
		if speed < calmThreshold {
			o.drawPoint(screen, s.x, s.y, 1.5, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}

		dir := v.Scale(1 / speed)
		normalized := clamp01(speed / maxSpeedEstimate)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.3, 5)
		tail := vmath.V(s.x, s.y).Sub(dir.Scale(length * 0.4))
		tip := vmath.V(s.x, s.y).Add(dir.Scale(length * 0.6))
		bodyEnd := tip.Sub(dir.Scale(headLength))

		col := arrowColor(normalized)
		o.drawLine(screen, tail.X, tail.Y, bodyEnd.X, bodyEnd.Y, 1, col)

		angle := math.Atan2(dir.Y, dir.X)
		left := tip.Sub(vmath.FromAngle(angle+headAngle, headLength))
		right := tip.Sub(vmath.FromAngle(angle-headAngle, headLength))
		o.drawLine(screen, tip.X, tip.Y, left.X, left.Y, 1, col)
		o.drawLine(screen, tip.X, tip.Y, right.X, right.Y, 1, col)
	}
}

func (o *Overlay) ensureSamples(size core.Size) bool {
	if o.sampleW == size.W && o.sampleH == size.H && len(o.samples) > 0 {
		return true
	}

	const (
		targetSamples = 480.0
		minSpacing    = 16
		maxSpacing    = 48
	)

	spacing := int(math.Sqrt(float64(size.W*size.H) / targetSamples))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}

	o.samples = o.samples[:0]
	for y := spacing / 2; y < size.H; y += spacing {
		for x := spacing / 2; x < size.W; x += spacing {
			o.samples = append(o.samples, flowSample{x: float64(x), y: float64(y)})
		}
	}
	o.sampleW = size.W
	o.sampleH = size.H
	o.sampleSpan = float64(spacing)
	return len(o.samples) > 0
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func arrowColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(80 + 170*t)),
		G: uint8(math.Round(170 - 60*t)),
		B: uint8(math.Round(230 - 130*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
