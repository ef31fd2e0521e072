package particle

import "confetti/internal/vmath"

// TrailCap is the hard upper bound on trail points per particle.
const TrailCap = 10

// TrailPoint is one remembered position with the opacity the particle had
// when it was recorded.
type TrailPoint struct {
	Pos     vmath.Vec2
	Opacity float64
}

// Trail is a fixed-capacity FIFO of recent positions. The zero value is an
// empty trail; it never allocates.
type Trail struct {
	points [TrailCap]TrailPoint
	start  int
	n      int
}

// Push records a point, evicting the oldest once limit points are stored.
// limit is clamped to [1, TrailCap].
func (t *Trail) Push(pos vmath.Vec2, opacity float64, limit int) {
	if limit > TrailCap {
		limit = TrailCap
	}
	if limit < 1 {
		limit = 1
	}
	for t.n >= limit {
		t.start = (t.start + 1) % TrailCap
		t.n--
	}
	t.points[(t.start+t.n)%TrailCap] = TrailPoint{Pos: pos, Opacity: opacity}
	t.n++
}

// Len returns the number of stored points.
func (t *Trail) Len() int { return t.n }

// At returns the i-th point, oldest first.
func (t *Trail) At(i int) TrailPoint {
	return t.points[(t.start+i)%TrailCap]
}

// Reset empties the trail.
func (t *Trail) Reset() {
	t.start = 0
	t.n = 0
}
