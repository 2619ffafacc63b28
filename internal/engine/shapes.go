package engine

import (
	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
)

// ShapeBounds returns the axis-aligned bounding box of a shape's raw
// geometry. Rotation is ignored here; hit-testing and marquee selection
// operate on the unrotated box, matching paint-order hit priority.
func ShapeBounds(s board.Shape) geometry.BoundingBox {
	switch s.Kind {
	case board.KindRectangle:
		return geometry.NewBoundingBox(
			s.Position.X, s.Position.Y,
			s.Position.X+s.Width, s.Position.Y+s.Height,
		)

	case board.KindCircle:
		return geometry.NewBoundingBox(
			s.Position.X-s.Radius, s.Position.Y-s.Radius,
			s.Position.X+s.Radius, s.Position.Y+s.Radius,
		)

	case board.KindEllipse:
		return geometry.NewBoundingBox(
			s.Position.X-s.RadiusX, s.Position.Y-s.RadiusY,
			s.Position.X+s.RadiusX, s.Position.Y+s.RadiusY,
		)

	case board.KindLine, board.KindArrow:
		return geometry.NewBoundingBox(
			min(s.Start.X, s.End.X), min(s.Start.Y, s.End.Y),
			max(s.Start.X, s.End.X), max(s.Start.Y, s.End.Y),
		)

	case board.KindTriangle:
		if len(s.Points) == 0 {
			return geometry.NewBoundingBox(s.Position.X, s.Position.Y, s.Position.X, s.Position.Y)
		}
		minX, maxX := s.Points[0].X, s.Points[0].X
		minY, maxY := s.Points[0].Y, s.Points[0].Y
		for _, p := range s.Points[1:] {
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
		return geometry.NewBoundingBox(minX, minY, maxX, maxY)

	default:
		return geometry.NewBoundingBox(s.Position.X, s.Position.Y, s.Position.X, s.Position.Y)
	}
}

// StrokeBounds returns the bounding box of a stroke's point list inflated
// by half its width. Returns false for strokes without a complete point.
func StrokeBounds(s board.StrokeLine) (geometry.BoundingBox, bool) {
	box, ok := geometry.FromPoints(s.Points)
	if !ok {
		return geometry.BoundingBox{}, false
	}
	return box.Inflate(s.Width / 2), true
}

// TextBounds returns the approximate box of a text annotation. The size is
// estimated from character count and font size; it is used only for
// hit-testing and marquee intersection, never for painting.
func TextBounds(t board.TextAnnotation) geometry.BoundingBox {
	width := float64(len([]rune(t.Text))) * t.FontSize * 0.6
	height := t.FontSize * 1.2
	return geometry.NewBoundingBox(t.X, t.Y, t.X+width, t.Y+height)
}

// PointInShape reports whether (x, y) hits the shape, inflated by buffer.
// Triangles use an inflated bounding-box approximation rather than exact
// polygon containment.
func PointInShape(s board.Shape, x, y, buffer float64) bool {
	switch s.Kind {
	case board.KindRectangle:
		return ShapeBounds(s).Inflate(buffer).Contains(x, y)

	case board.KindCircle:
		r := s.Radius + buffer
		if r <= 0 {
			return false
		}
		dx := x - s.Position.X
		dy := y - s.Position.Y
		return dx*dx+dy*dy <= r*r

	case board.KindEllipse:
		rx := s.RadiusX + buffer
		ry := s.RadiusY + buffer
		if rx <= 0 || ry <= 0 {
			return false
		}
		dx := (x - s.Position.X) / rx
		dy := (y - s.Position.Y) / ry
		return dx*dx+dy*dy <= 1

	case board.KindLine, board.KindArrow:
		d := geometry.DistanceToSegment(geometry.Point{X: x, Y: y}, s.Start, s.End)
		return d <= s.Style.StrokeWidth/2+buffer

	case board.KindTriangle:
		return ShapeBounds(s).Inflate(buffer).Contains(x, y)

	default:
		return false
	}
}
