package render

import (
	"math"

	"confetti/internal/vmath"
)

// SquarePoints returns the corners of a square of side size centred on c.
func SquarePoints(c vmath.Vec2, size, rotation float64) []vmath.Vec2 {
	h := size / 2
	corners := []vmath.Vec2{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	for i, p := range corners {
		corners[i] = c.Add(p.Rotate(rotation))
	}
	return corners
}

// StarPoints returns a five-pointed star alternating outer and inner radii.
func StarPoints(c vmath.Vec2, outer, rotation float64) []vmath.Vec2 {
	inner := outer * 0.45
	pts := make([]vmath.Vec2, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := rotation - math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, c.Add(vmath.FromAngle(a, r)))
	}
	return pts
}

// HexagonPoints returns a regular hexagon with circumradius r.
func HexagonPoints(c vmath.Vec2, r, rotation float64) []vmath.Vec2 {
	pts := make([]vmath.Vec2, 0, 6)
	for i := 0; i < 6; i++ {
		pts = append(pts, c.Add(vmath.FromAngle(rotation+float64(i)*math.Pi/3, r)))
	}
	return pts
}

// HeartPoints traces the classic parametric heart scaled to roughly size
// pixels across. The point of the heart faces +Y before rotation.
func HeartPoints(c vmath.Vec2, size, rotation float64, segments int) []vmath.Vec2 {
	if segments < 8 {
		segments = 8
	}
	k := size / 32
	pts := make([]vmath.Vec2, 0, segments)
	for i := 0; i < segments; i++ {
		t := float64(i) / float64(segments) * 2 * math.Pi
		s := math.Sin(t)
		x := 16 * s * s * s
		y := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		pts = append(pts, c.Add(vmath.V(x*k, y*k).Rotate(rotation)))
	}
	return pts
}

// SpiralPoints traces an Archimedean spiral of the given number of turns
// whose outer end reaches radius.
func SpiralPoints(c vmath.Vec2, radius, angle, turns float64, segments int) []vmath.Vec2 {
	if segments < 2 {
		segments = 2
	}
	pts := make([]vmath.Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		pts = append(pts, c.Add(vmath.FromAngle(angle+t*turns*2*math.Pi, radius*t)))
	}
	return pts
}

// circlePoints approximates a circle for surfaces without a native circle.
func circlePoints(c vmath.Vec2, r float64) []vmath.Vec2 {
	n := int(math.Ceil(r * 1.5))
	if n < 8 {
		n = 8
	}
	if n > 48 {
		n = 48
	}
	pts := make([]vmath.Vec2, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, c.Add(vmath.FromAngle(float64(i)*2*math.Pi/float64(n), r)))
	}
	return pts
}

// strokeQuad returns the rectangle covering the segment a-b at width w.
func strokeQuad(a, b vmath.Vec2, w float64) []vmath.Vec2 {
	n := b.Sub(a).Normalize().Perp().Scale(w / 2)
	if n.IsZero() {
		return nil
	}
	return []vmath.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}
