package engine

import (
	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
)

// hit-test inflation buffers, in canvas units
const (
	shapeHitBuffer  = 5
	strokeHitBuffer = 5
)

// Selection holds the three disjoint id sets of selected objects. The
// interaction engine exclusively owns selection state; collaborators read
// it through copies.
type Selection struct {
	Shapes  map[string]bool
	Strokes map[string]bool
	Texts   map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{
		Shapes:  make(map[string]bool),
		Strokes: make(map[string]bool),
		Texts:   make(map[string]bool),
	}
}

// IsEmpty reports whether all three sets are empty.
func (s Selection) IsEmpty() bool {
	return len(s.Shapes) == 0 && len(s.Strokes) == 0 && len(s.Texts) == 0
}

// Count returns the total number of selected objects.
func (s Selection) Count() int {
	return len(s.Shapes) + len(s.Strokes) + len(s.Texts)
}

// Clear empties all three sets.
func (s *Selection) Clear() {
	s.Shapes = make(map[string]bool)
	s.Strokes = make(map[string]bool)
	s.Texts = make(map[string]bool)
}

// SelectOnly replaces all three sets with the single given element.
func (s *Selection) SelectOnly(category board.Category, id string) {
	s.Clear()
	s.set(category)[id] = true
}

// Toggle flips membership of id within its own category, leaving the other
// two sets untouched.
func (s *Selection) Toggle(category board.Category, id string) {
	set := s.set(category)
	if set[id] {
		delete(set, id)
	} else {
		set[id] = true
	}
}

// Has reports whether id is selected within its category.
func (s *Selection) Has(category board.Category, id string) bool {
	return s.set(category)[id]
}

// Copy returns a deep copy safe to hand to external readers.
func (s *Selection) Copy() Selection {
	out := Selection{
		Shapes:  make(map[string]bool, len(s.Shapes)),
		Strokes: make(map[string]bool, len(s.Strokes)),
		Texts:   make(map[string]bool, len(s.Texts)),
	}
	for id := range s.Shapes {
		out.Shapes[id] = true
	}
	for id := range s.Strokes {
		out.Strokes[id] = true
	}
	for id := range s.Texts {
		out.Texts[id] = true
	}
	return out
}

func (s *Selection) set(category board.Category) map[string]bool {
	switch category {
	case board.CategoryShape:
		return s.Shapes
	case board.CategoryStroke:
		return s.Strokes
	case board.CategoryText:
		return s.Texts
	}
	return map[string]bool{}
}

// FindElementAtPoint resolves a canvas point to the top-most object,
// testing texts, then strokes, then shapes, each from front to back.
// Returns ok=false when nothing is hit.
func FindElementAtPoint(
	shapes []board.Shape,
	strokes []board.StrokeLine,
	texts []board.TextAnnotation,
	x, y float64,
) (board.Category, string, bool) {
	for i := len(texts) - 1; i >= 0; i-- {
		if TextBounds(texts[i]).Contains(x, y) {
			return board.CategoryText, texts[i].ID, true
		}
	}

	for i := len(strokes) - 1; i >= 0; i-- {
		box, ok := StrokeBounds(strokes[i])
		if !ok {
			continue
		}
		if box.Inflate(strokeHitBuffer).Contains(x, y) {
			return board.CategoryStroke, strokes[i].ID, true
		}
	}

	for i := len(shapes) - 1; i >= 0; i-- {
		if !shapes[i].Visible {
			continue
		}
		if shapeHit(shapes[i], x, y) {
			return board.CategoryShape, shapes[i].ID, true
		}
	}

	return "", "", false
}

// shapeHit tests the point against the shape's inflated bounding box.
// A rotated shape is tested in its own frame: the point is mapped
// through the inverse rotation about the box center first.
func shapeHit(s board.Shape, x, y float64) bool {
	box := ShapeBounds(s)
	if s.Transform.Rotation != 0 {
		p := geometry.RotateAround(s.Transform.Rotation, box.CenterX, box.CenterY).
			Invert().
			TransformPoint(geometry.Point{X: x, Y: y})
		x, y = p.X, p.Y
	}
	return box.Inflate(shapeHitBuffer).Contains(x, y)
}

// shapeWorldBounds returns the axis-aligned box of the shape's rotated
// footprint.
func shapeWorldBounds(s board.Shape) geometry.BoundingBox {
	box := ShapeBounds(s)
	if s.Transform.Rotation == 0 {
		return box
	}
	return geometry.RotateAround(s.Transform.Rotation, box.CenterX, box.CenterY).TransformBox(box)
}

// MarqueeSelect returns the selection of every object whose bounding box
// overlaps the marquee rectangle. Overlap is edge-inclusive on both axes.
// The result replaces any prior selection; there is no additive marquee.
func MarqueeSelect(
	shapes []board.Shape,
	strokes []board.StrokeLine,
	texts []board.TextAnnotation,
	marquee geometry.BoundingBox,
) *Selection {
	sel := NewSelection()

	for _, s := range shapes {
		if shapeWorldBounds(s).Intersects(marquee) {
			sel.Shapes[s.ID] = true
		}
	}
	for _, s := range strokes {
		if box, ok := StrokeBounds(s); ok && box.Intersects(marquee) {
			sel.Strokes[s.ID] = true
		}
	}
	for _, t := range texts {
		if TextBounds(t).Intersects(marquee) {
			sel.Texts[t.ID] = true
		}
	}

	return sel
}

// SelectionBounds returns the union bounding box of all selected members,
// or nil when the selection is empty or none of its ids resolve.
func SelectionBounds(
	sel *Selection,
	shapes []board.Shape,
	strokes []board.StrokeLine,
	texts []board.TextAnnotation,
) *geometry.BoundingBox {
	var result *geometry.BoundingBox

	extend := func(box geometry.BoundingBox) {
		if result == nil {
			b := box
			result = &b
			return
		}
		b := result.Union(box)
		result = &b
	}

	for _, s := range shapes {
		if sel.Shapes[s.ID] {
			extend(ShapeBounds(s))
		}
	}
	for _, s := range strokes {
		if sel.Strokes[s.ID] {
			if box, ok := StrokeBounds(s); ok {
				extend(box)
			}
		}
	}
	for _, t := range texts {
		if sel.Texts[t.ID] {
			extend(TextBounds(t))
		}
	}

	return result
}
