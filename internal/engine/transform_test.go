package engine

import (
	"math"
	"testing"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
)

func TestResizeBox(t *testing.T) {
	anchor := geometry.NewBoundingBox(100, 100, 200, 200)

	tests := []struct {
		name       string
		handle     Handle
		pointer    geometry.Point
		lockAspect bool
		want       geometry.BoundingBox
	}{
		{
			name:    "se corner grows both axes",
			handle:  HandleSE,
			pointer: geometry.Point{X: 250, Y: 250},
			want:    geometry.NewBoundingBox(100, 100, 250, 250),
		},
		{
			name:    "east edge moves only width",
			handle:  HandleE,
			pointer: geometry.Point{X: 260, Y: 500},
			want:    geometry.NewBoundingBox(100, 100, 260, 200),
		},
		{
			name:    "nw corner moves min edges",
			handle:  HandleNW,
			pointer: geometry.Point{X: 80, Y: 90},
			want:    geometry.NewBoundingBox(80, 90, 200, 200),
		},
		{
			name:    "overshoot past opposite edge floors at minimum",
			handle:  HandleE,
			pointer: geometry.Point{X: 50, Y: 150},
			want:    geometry.NewBoundingBox(100, 100, 110, 200),
		},
		{
			name:    "north overshoot floors height",
			handle:  HandleN,
			pointer: geometry.Point{X: 150, Y: 400},
			want:    geometry.NewBoundingBox(100, 190, 200, 200),
		},
		{
			name:       "aspect lock derives height from larger scale",
			handle:     HandleSE,
			pointer:    geometry.Point{X: 250, Y: 220},
			lockAspect: true,
			want:       geometry.NewBoundingBox(100, 100, 250, 250),
		},
		{
			name:       "aspect lock keeps nw anchor on se drag",
			handle:     HandleNW,
			pointer:    geometry.Point{X: 50, Y: 120},
			lockAspect: true,
			want:       geometry.NewBoundingBox(50, 50, 200, 200),
		},
		{
			name:       "aspect lock ignored on edge handles",
			handle:     HandleS,
			pointer:    geometry.Point{X: 150, Y: 260},
			lockAspect: true,
			want:       geometry.NewBoundingBox(100, 100, 200, 260),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resizeBox(anchor, tt.handle, tt.pointer, tt.lockAspect)
			if !boxesClose(got, tt.want) {
				t.Errorf("resizeBox = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScaleShapeRectangle(t *testing.T) {
	old := geometry.NewBoundingBox(100, 100, 200, 200)
	new := geometry.NewBoundingBox(100, 100, 250, 250)

	s := board.Shape{
		Kind:     board.KindRectangle,
		Position: geometry.Point{X: 100, Y: 100},
		Width:    100,
		Height:   100,
	}
	got := scaleShape(s, old, new, HandleSE)

	if got.Position != (geometry.Point{X: 100, Y: 100}) {
		t.Errorf("anchored corner moved: %+v", got.Position)
	}
	if got.Width != 150 || got.Height != 150 {
		t.Errorf("size = %vx%v, want 150x150", got.Width, got.Height)
	}
}

func TestScaleShapeCircle(t *testing.T) {
	old := geometry.NewBoundingBox(0, 0, 100, 100)

	s := board.Shape{Kind: board.KindCircle, Position: geometry.Point{X: 50, Y: 50}, Radius: 40}

	t.Run("east edge uses horizontal scale", func(t *testing.T) {
		got := scaleShape(s, old, geometry.NewBoundingBox(0, 0, 200, 100), HandleE)
		if got.Radius != 80 {
			t.Errorf("radius = %v, want 80", got.Radius)
		}
	})

	t.Run("corner uses larger scale", func(t *testing.T) {
		got := scaleShape(s, old, geometry.NewBoundingBox(0, 0, 150, 120), HandleSE)
		if got.Radius != 60 {
			t.Errorf("radius = %v, want 60", got.Radius)
		}
	})
}

func TestScaleShapeLineEndpoints(t *testing.T) {
	old := geometry.NewBoundingBox(0, 0, 100, 100)
	new := geometry.NewBoundingBox(0, 0, 200, 50)

	s := board.Shape{
		Kind:  board.KindLine,
		Start: geometry.Point{X: 10, Y: 20},
		End:   geometry.Point{X: 90, Y: 80},
	}
	got := scaleShape(s, old, new, HandleSE)

	if got.Start != (geometry.Point{X: 20, Y: 10}) {
		t.Errorf("start = %+v, want (20,10)", got.Start)
	}
	if got.End != (geometry.Point{X: 180, Y: 40}) {
		t.Errorf("end = %+v, want (180,40)", got.End)
	}
}

func TestScaleStroke(t *testing.T) {
	old := geometry.NewBoundingBox(0, 0, 10, 10)
	new := geometry.NewBoundingBox(0, 0, 20, 30)

	s := board.StrokeLine{Points: []float64{0, 0, 5, 10, 10, 5}}
	got := scaleStroke(s, old, new)

	want := []float64{0, 0, 10, 30, 20, 15}
	for i, v := range want {
		if math.Abs(got.Points[i]-v) > 1e-9 {
			t.Fatalf("points = %v, want %v", got.Points, want)
		}
	}
}

func TestScaleTextFontAxis(t *testing.T) {
	old := geometry.NewBoundingBox(0, 0, 100, 100)
	txt := board.TextAnnotation{X: 50, Y: 50, FontSize: 16}

	t.Run("south handle scales by vertical factor", func(t *testing.T) {
		got := scaleText(txt, old, geometry.NewBoundingBox(0, 0, 100, 200), HandleS)
		if got.FontSize != 32 {
			t.Errorf("fontSize = %v, want 32", got.FontSize)
		}
	})

	t.Run("east handle scales by horizontal factor", func(t *testing.T) {
		got := scaleText(txt, old, geometry.NewBoundingBox(0, 0, 150, 100), HandleE)
		if got.FontSize != 24 {
			t.Errorf("fontSize = %v, want 24", got.FontSize)
		}
	})
}

func TestTranslateShapeVariants(t *testing.T) {
	tri := board.Shape{
		Kind:   board.KindTriangle,
		Points: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}},
	}
	got := translateShape(tri, 3, -2)
	if got.Points[2] != (geometry.Point{X: 8, Y: 8}) {
		t.Errorf("triangle vertex = %+v, want (8,8)", got.Points[2])
	}
	// Original must be untouched; translation copies the point slice.
	if tri.Points[2] != (geometry.Point{X: 5, Y: 10}) {
		t.Error("translateShape mutated its input")
	}

	arrow := board.Shape{
		Kind:  board.KindArrow,
		Start: geometry.Point{X: 1, Y: 1},
		End:   geometry.Point{X: 9, Y: 9},
	}
	got = translateShape(arrow, 1, 1)
	if got.Start != (geometry.Point{X: 2, Y: 2}) || got.End != (geometry.Point{X: 10, Y: 10}) {
		t.Errorf("arrow endpoints = %+v/%+v", got.Start, got.End)
	}
}

func TestSnapAngle(t *testing.T) {
	tests := []struct {
		delta, want float64
	}{
		{0, 0},
		{7, 0},
		{8, 15},
		{47, 45},
		{-22, -15},
		{-23, -30},
		{90, 90},
	}
	for _, tt := range tests {
		if got := snapAngle(tt.delta); got != tt.want {
			t.Errorf("snapAngle(%v) = %v, want %v", tt.delta, got, tt.want)
		}
	}
}

func TestHandleAt(t *testing.T) {
	box := geometry.NewBoundingBox(100, 100, 200, 200)

	if h, ok := handleAt(box, geometry.Point{X: 200, Y: 200}); !ok || h != HandleSE {
		t.Errorf("se corner pick = %v, %v", h, ok)
	}
	if h, ok := handleAt(box, geometry.Point{X: 150, Y: 100 - rotateHandleOffset}); !ok || h != HandleRotate {
		t.Errorf("rotate anchor pick = %v, %v", h, ok)
	}
	if h, ok := handleAt(box, geometry.Point{X: 153, Y: 203}); !ok || h != HandleS {
		t.Errorf("near south edge pick = %v, %v", h, ok)
	}
	if _, ok := handleAt(box, geometry.Point{X: 150, Y: 150}); ok {
		t.Error("box interior should not pick a handle")
	}
}

func boxesClose(a, b geometry.BoundingBox) bool {
	const eps = 1e-9
	return math.Abs(a.MinX-b.MinX) < eps && math.Abs(a.MinY-b.MinY) < eps &&
		math.Abs(a.MaxX-b.MaxX) < eps && math.Abs(a.MaxY-b.MaxY) < eps
}
