package engine

import (
	"math"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
)

// Handle identifies one of the 8 resize anchors or the rotation anchor on
// a selection's bounding box.
type Handle string

const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"

	HandleRotate Handle = "rotate"
)

const (
	// minResize floors post-resize width and height.
	minResize = 10.0

	// handleHitRadius is the pick distance around a handle.
	handleHitRadius = 8.0

	// rotateHandleOffset places the rotation anchor above the box top edge.
	rotateHandleOffset = 24.0

	// rotationSnap is the angle increment applied when snapping is requested.
	rotationSnap = 15.0
)

// isCorner reports whether h is one of the four corner handles.
func (h Handle) isCorner() bool {
	switch h {
	case HandleNE, HandleNW, HandleSE, HandleSW:
		return true
	}
	return false
}

// handlePosition returns the canvas position of a handle on the given box.
func handlePosition(box geometry.BoundingBox, h Handle) geometry.Point {
	switch h {
	case HandleN:
		return geometry.Point{X: box.CenterX, Y: box.MinY}
	case HandleS:
		return geometry.Point{X: box.CenterX, Y: box.MaxY}
	case HandleE:
		return geometry.Point{X: box.MaxX, Y: box.CenterY}
	case HandleW:
		return geometry.Point{X: box.MinX, Y: box.CenterY}
	case HandleNE:
		return geometry.Point{X: box.MaxX, Y: box.MinY}
	case HandleNW:
		return geometry.Point{X: box.MinX, Y: box.MinY}
	case HandleSE:
		return geometry.Point{X: box.MaxX, Y: box.MaxY}
	case HandleSW:
		return geometry.Point{X: box.MinX, Y: box.MaxY}
	case HandleRotate:
		return geometry.Point{X: box.CenterX, Y: box.MinY - rotateHandleOffset}
	}
	return geometry.Point{}
}

// handleAt returns the handle under the pointer, if any. The rotation
// anchor wins over resize anchors when they overlap on tiny selections.
func handleAt(box geometry.BoundingBox, p geometry.Point) (Handle, bool) {
	order := []Handle{
		HandleRotate,
		HandleNW, HandleNE, HandleSW, HandleSE,
		HandleN, HandleS, HandleE, HandleW,
	}
	for _, h := range order {
		hp := handlePosition(box, h)
		if geometry.DistanceSquared(p, hp) <= handleHitRadius*handleHitRadius {
			return h, true
		}
	}
	return "", false
}

// resizeBox recomputes the selection box from the live pointer position
// against the fixed opposite edge(s) of the anchor box. Width and height
// are floored at minResize regardless of pointer overshoot. With
// lockAspect and a corner handle, the dimension with the smaller scale
// factor is derived from the other via the anchor box's aspect ratio,
// keeping the anchored corner fixed.
func resizeBox(anchor geometry.BoundingBox, h Handle, pointer geometry.Point, lockAspect bool) geometry.BoundingBox {
	minX, minY := anchor.MinX, anchor.MinY
	maxX, maxY := anchor.MaxX, anchor.MaxY

	switch h {
	case HandleE:
		maxX = max(pointer.X, minX+minResize)
	case HandleW:
		minX = min(pointer.X, maxX-minResize)
	case HandleS:
		maxY = max(pointer.Y, minY+minResize)
	case HandleN:
		minY = min(pointer.Y, maxY-minResize)
	case HandleSE:
		maxX = max(pointer.X, minX+minResize)
		maxY = max(pointer.Y, minY+minResize)
	case HandleNE:
		maxX = max(pointer.X, minX+minResize)
		minY = min(pointer.Y, maxY-minResize)
	case HandleSW:
		minX = min(pointer.X, maxX-minResize)
		maxY = max(pointer.Y, minY+minResize)
	case HandleNW:
		minX = min(pointer.X, maxX-minResize)
		minY = min(pointer.Y, maxY-minResize)
	}

	if lockAspect && h.isCorner() && anchor.Width > 0 && anchor.Height > 0 {
		sx := (maxX - minX) / anchor.Width
		sy := (maxY - minY) / anchor.Height
		s := max(sx, sy)
		newW := anchor.Width * s
		newH := anchor.Height * s

		// Re-derive the moving corner from the anchored one.
		switch h {
		case HandleSE:
			maxX = minX + newW
			maxY = minY + newH
		case HandleNE:
			maxX = minX + newW
			minY = maxY - newH
		case HandleSW:
			minX = maxX - newW
			maxY = minY + newH
		case HandleNW:
			minX = maxX - newW
			minY = maxY - newH
		}
	}

	return geometry.NewBoundingBox(minX, minY, maxX, maxY)
}

// translateShape shifts a shape's variant geometry by (dx, dy).
func translateShape(s board.Shape, dx, dy float64) board.Shape {
	s.Position = s.Position.Add(dx, dy)
	s.Start = s.Start.Add(dx, dy)
	s.End = s.End.Add(dx, dy)
	if len(s.Points) > 0 {
		pts := make([]geometry.Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = p.Add(dx, dy)
		}
		s.Points = pts
	}
	return s
}

// translateStroke shifts every coordinate of the stroke's flat point list,
// offsetting by dx or dy depending on parity.
func translateStroke(s board.StrokeLine, dx, dy float64) board.StrokeLine {
	pts := make([]float64, len(s.Points))
	for i, v := range s.Points {
		if i%2 == 0 {
			pts[i] = v + dx
		} else {
			pts[i] = v + dy
		}
	}
	s.Points = pts
	return s
}

// translateText shifts a text annotation's anchor.
func translateText(t board.TextAnnotation, dx, dy float64) board.TextAnnotation {
	t.X += dx
	t.Y += dy
	return t
}

// remapX maps an x coordinate from the old box into the new one.
func remapX(x float64, old, new geometry.BoundingBox, sx float64) float64 {
	return new.MinX + (x-old.MinX)*sx
}

func remapY(y float64, old, new geometry.BoundingBox, sy float64) float64 {
	return new.MinY + (y-old.MinY)*sy
}

// scaleShape rescales a shape from the old selection box into the new one.
// Circles take a single scalar: the dragged axis on edge handles,
// max(sx, sy) on corners, since the variant has no ellipse degeneration.
func scaleShape(s board.Shape, old, new geometry.BoundingBox, h Handle) board.Shape {
	sx := new.Width / old.Width
	sy := new.Height / old.Height

	remapPoint := func(p geometry.Point) geometry.Point {
		return geometry.Point{X: remapX(p.X, old, new, sx), Y: remapY(p.Y, old, new, sy)}
	}

	switch s.Kind {
	case board.KindRectangle:
		s.Position = remapPoint(s.Position)
		s.Width *= sx
		s.Height *= sy

	case board.KindCircle:
		s.Position = remapPoint(s.Position)
		s.Radius *= circleScale(h, sx, sy)

	case board.KindEllipse:
		s.Position = remapPoint(s.Position)
		s.RadiusX *= sx
		s.RadiusY *= sy

	case board.KindLine, board.KindArrow:
		s.Start = remapPoint(s.Start)
		s.End = remapPoint(s.End)

	case board.KindTriangle:
		pts := make([]geometry.Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = remapPoint(p)
		}
		s.Points = pts
	}

	return s
}

func circleScale(h Handle, sx, sy float64) float64 {
	switch h {
	case HandleE, HandleW:
		return sx
	case HandleN, HandleS:
		return sy
	}
	return max(sx, sy)
}

// scaleStroke remaps every stroke point proportionally into the new box.
func scaleStroke(s board.StrokeLine, old, new geometry.BoundingBox) board.StrokeLine {
	sx := new.Width / old.Width
	sy := new.Height / old.Height

	pts := make([]float64, len(s.Points))
	for i, v := range s.Points {
		if i%2 == 0 {
			pts[i] = remapX(v, old, new, sx)
		} else {
			pts[i] = remapY(v, old, new, sy)
		}
	}
	s.Points = pts
	return s
}

// scaleText remaps the anchor and scales fontSize by the axis most
// relevant to the dragged handle.
func scaleText(t board.TextAnnotation, old, new geometry.BoundingBox, h Handle) board.TextAnnotation {
	sx := new.Width / old.Width
	sy := new.Height / old.Height

	t.X = remapX(t.X, old, new, sx)
	t.Y = remapY(t.Y, old, new, sy)

	switch h {
	case HandleN, HandleS:
		t.FontSize *= sy
	default:
		t.FontSize *= sx
	}
	return t
}

// pointerAngle returns the angle, in degrees, of the pointer about center.
func pointerAngle(pointer, center geometry.Point) float64 {
	return math.Atan2(pointer.Y-center.Y, pointer.X-center.X) * 180 / math.Pi
}

// snapAngle rounds delta to the nearest rotationSnap increment.
func snapAngle(delta float64) float64 {
	return math.Round(delta/rotationSnap) * rotationSnap
}
