package geometry

import "math"

// SegmentCircleIntersections returns the points where the segment p1→p2
// crosses the circle at center with radius r. The segment is parametrized
// as p1 + t*(p2-p1) and only crossings with t in [0, 1] are returned, so
// the result holds 0, 1, or 2 points ordered by increasing t (i.e. by
// distance from p1).
func SegmentCircleIntersections(p1, p2, center Point, r float64) []Point {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	fx := p1.X - center.X
	fy := p1.Y - center.Y

	a := dx*dx + dy*dy
	if a == 0 {
		// Degenerate segment.
		return nil
	}

	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - r*r

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	var out []Point
	if t1 >= 0 && t1 <= 1 {
		out = append(out, Point{X: p1.X + t1*dx, Y: p1.Y + t1*dy})
	}
	if t2 >= 0 && t2 <= 1 && t2 != t1 {
		out = append(out, Point{X: p1.X + t2*dx, Y: p1.Y + t2*dy})
	}
	return out
}

// PointInCircle reports whether p lies strictly inside the circle.
func PointInCircle(p, center Point, r float64) bool {
	return DistanceSquared(p, center) < r*r
}
