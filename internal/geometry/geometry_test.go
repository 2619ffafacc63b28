package geometry

import (
	"math"
	"testing"
)

func TestSegmentCircleIntersections(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		center Point
		radius float64
		want   []Point
	}{
		{
			name: "pass through disc yields two ordered crossings",
			p1:   Point{X: 10, Y: 0}, p2: Point{X: 20, Y: 0},
			center: Point{X: 15, Y: 0}, radius: 2,
			want: []Point{{X: 13, Y: 0}, {X: 17, Y: 0}},
		},
		{
			name: "segment entirely outside",
			p1:   Point{X: 0, Y: 10}, p2: Point{X: 20, Y: 10},
			center: Point{X: 10, Y: 0}, radius: 2,
			want: nil,
		},
		{
			name: "segment entirely inside",
			p1:   Point{X: -1, Y: 0}, p2: Point{X: 1, Y: 0},
			center: Point{X: 0, Y: 0}, radius: 5,
			want: nil,
		},
		{
			name: "enters disc once",
			p1:   Point{X: 10, Y: 0}, p2: Point{X: 15, Y: 0},
			center: Point{X: 15, Y: 0}, radius: 2,
			want: []Point{{X: 13, Y: 0}},
		},
		{
			name: "tangent line through edge",
			p1:   Point{X: 0, Y: 2}, p2: Point{X: 10, Y: 2},
			center: Point{X: 5, Y: 0}, radius: 2,
			want: []Point{{X: 5, Y: 2}},
		},
		{
			name: "crossing beyond segment end ignored",
			p1:   Point{X: 0, Y: 0}, p2: Point{X: 10, Y: 0},
			center: Point{X: 20, Y: 0}, radius: 2,
			want: nil,
		},
		{
			name: "degenerate zero-length segment",
			p1:   Point{X: 5, Y: 5}, p2: Point{X: 5, Y: 5},
			center: Point{X: 5, Y: 5}, radius: 2,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentCircleIntersections(tt.p1, tt.p2, tt.center, tt.radius)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d intersections, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if math.Abs(got[i].X-tt.want[i].X) > 1e-9 || math.Abs(got[i].Y-tt.want[i].Y) > 1e-9 {
					t.Errorf("intersection %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

}

func TestPointInCircle(t *testing.T) {
	center := Point{X: 0, Y: 0}
	if !PointInCircle(Point{X: 1, Y: 1}, center, 2) {
		t.Error("interior point should be inside")
	}
	// Boundary is outside: strict containment.
	if PointInCircle(Point{X: 2, Y: 0}, center, 2) {
		t.Error("boundary point should not count as inside")
	}
	if PointInCircle(Point{X: 3, Y: 0}, center, 2) {
		t.Error("exterior point should not be inside")
	}
}

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		a, b   Point
		want   float64
	}{
		{"perpendicular projection", Point{X: 5, Y: 3}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 3},
		{"clamped to start", Point{X: -4, Y: 3}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 5},
		{"clamped to end", Point{X: 13, Y: 4}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 5},
		{"degenerate segment", Point{X: 3, Y: 4}, Point{X: 0, Y: 0}, Point{X: 0, Y: 0}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceToSegment(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceToSegment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxOverlap(t *testing.T) {
	a := NewBoundingBox(0, 0, 10, 10)

	tests := []struct {
		name string
		b    BoundingBox
		want bool
	}{
		{"full overlap", NewBoundingBox(2, 2, 8, 8), true},
		{"partial overlap", NewBoundingBox(5, 5, 15, 15), true},
		{"shared edge counts", NewBoundingBox(10, 0, 20, 10), true},
		{"shared corner counts", NewBoundingBox(10, 10, 20, 20), true},
		{"disjoint", NewBoundingBox(11, 11, 20, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("Intersects should be symmetric, got %v want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxContains(t *testing.T) {
	box := NewBoundingBox(0, 0, 10, 10)
	if !box.Contains(0, 0) || !box.Contains(10, 10) {
		t.Error("containment should be edge-inclusive")
	}
	if box.Contains(10.01, 5) {
		t.Error("point beyond edge should not be contained")
	}
}

func TestFromPoints(t *testing.T) {
	box, ok := FromPoints([]float64{3, 4, 1, 9, 7, 2})
	if !ok {
		t.Fatal("expected a box from 3 points")
	}
	want := NewBoundingBox(1, 2, 7, 9)
	if box != want {
		t.Errorf("FromPoints = %+v, want %+v", box, want)
	}

	if _, ok := FromPoints(nil); ok {
		t.Error("empty coordinate list should not produce a box")
	}
}

func TestPointIsFinite(t *testing.T) {
	if !(Point{X: 1, Y: 2}).IsFinite() {
		t.Error("ordinary point should be finite")
	}
	if (Point{X: math.NaN(), Y: 0}).IsFinite() {
		t.Error("NaN coordinate should not be finite")
	}
	if (Point{X: 0, Y: math.Inf(1)}).IsFinite() {
		t.Error("infinite coordinate should not be finite")
	}
}

func TestMatrixRotateAround(t *testing.T) {
	m := RotateAround(90, 5, 5)
	got := m.TransformPoint(Point{X: 10, Y: 5})
	if math.Abs(got.X-5) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("rotating (10,5) 90 degrees about (5,5) = %v, want (5,10)", got)
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := Translate(3, -7).Multiply(RotateDegrees(30)).Multiply(Scale(2, 0.5))
	inv := m.Invert()
	p := Point{X: 12, Y: -4}
	back := inv.TransformPoint(m.TransformPoint(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestMatrixTransformBox(t *testing.T) {
	box := RotateDegrees(90).TransformBox(NewBoundingBox(0, 0, 10, 4))
	want := NewBoundingBox(-4, 0, 0, 10)
	if math.Abs(box.MinX-want.MinX) > 1e-9 || math.Abs(box.MaxY-want.MaxY) > 1e-9 ||
		math.Abs(box.Width-want.Width) > 1e-9 || math.Abs(box.Height-want.Height) > 1e-9 {
		t.Errorf("TransformBox = %+v, want %+v", box, want)
	}
}
