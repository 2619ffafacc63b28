package geometry

import "math"

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// IsFinite reports whether both coordinates are finite numbers.
// Upstream event translation can hand us NaN/Inf; callers treat
// non-finite samples as a no-op.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// DistanceSquared returns the squared Euclidean distance between a and b.
// Used throughout hit-testing to avoid square roots.
func DistanceSquared(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceToSegment returns the distance from p to the segment a→b.
// The projection parameter is clamped to [0, 1], so points beyond either
// endpoint measure against that endpoint.
func DistanceToSegment(p, a, b Point) float64 {
	lenSq := DistanceSquared(a, b)
	if lenSq == 0 {
		return Distance(p, a)
	}

	t := ((p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	closest := Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
	return Distance(p, closest)
}
