package board

import "sync"

// Store holds the authoritative object lists for one board. Slice order is
// the z-order within each category (index 0 paints first). The interaction
// engine mutates it only through the Replace methods; Upsert/Remove exist
// for remote operations arriving over the collaboration channel.
type Store struct {
	mu      sync.RWMutex
	shapes  []Shape
	strokes []StrokeLine
	texts   []TextAnnotation
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Shapes returns a copy of the shape list in z-order.
func (s *Store) Shapes() []Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Strokes returns a copy of the stroke list in z-order.
func (s *Store) Strokes() []StrokeLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StrokeLine, len(s.strokes))
	copy(out, s.strokes)
	return out
}

// Texts returns a copy of the text list in z-order.
func (s *Store) Texts() []TextAnnotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TextAnnotation, len(s.texts))
	copy(out, s.texts)
	return out
}

// ReplaceShapes swaps in a new shape list. ZIndex is reassigned from slice
// position so it stays unique and consistent with paint order.
func (s *Store) ReplaceShapes(shapes []Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = make([]Shape, len(shapes))
	copy(s.shapes, shapes)
	for i := range s.shapes {
		s.shapes[i].ZIndex = i
	}
}

// ReplaceStrokes swaps in a new stroke list.
func (s *Store) ReplaceStrokes(strokes []StrokeLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strokes = make([]StrokeLine, len(strokes))
	copy(s.strokes, strokes)
}

// ReplaceTexts swaps in a new text list.
func (s *Store) ReplaceTexts(texts []TextAnnotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = make([]TextAnnotation, len(texts))
	copy(s.texts, texts)
}

// UpsertShape inserts the shape or replaces the one with the same id.
func (s *Store) UpsertShape(shape Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shapes {
		if s.shapes[i].ID == shape.ID {
			shape.ZIndex = i
			s.shapes[i] = shape
			return
		}
	}
	shape.ZIndex = len(s.shapes)
	s.shapes = append(s.shapes, shape)
}

// UpsertStroke inserts the stroke or replaces the one with the same id.
func (s *Store) UpsertStroke(stroke StrokeLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.strokes {
		if s.strokes[i].ID == stroke.ID {
			s.strokes[i] = stroke
			return
		}
	}
	s.strokes = append(s.strokes, stroke)
}

// UpsertText inserts the annotation or replaces the one with the same id.
func (s *Store) UpsertText(text TextAnnotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.texts {
		if s.texts[i].ID == text.ID {
			s.texts[i] = text
			return
		}
	}
	s.texts = append(s.texts, text)
}

// RemoveShape deletes the shape with the given id and reports whether it
// was present.
func (s *Store) RemoveShape(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shapes {
		if s.shapes[i].ID == id {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			for j := range s.shapes {
				s.shapes[j].ZIndex = j
			}
			return true
		}
	}
	return false
}

// RemoveStroke deletes the stroke with the given id.
func (s *Store) RemoveStroke(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.strokes {
		if s.strokes[i].ID == id {
			s.strokes = append(s.strokes[:i], s.strokes[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveText deletes the annotation with the given id.
func (s *Store) RemoveText(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.texts {
		if s.texts[i].ID == id {
			s.texts = append(s.texts[:i], s.texts[i+1:]...)
			return true
		}
	}
	return false
}

// ReorderShapes rearranges the shape list to match the given id order.
// Ids not present are skipped; shapes absent from the order keep their
// relative position at the end.
func (s *Store) ReorderShapes(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = reorder(s.shapes, order, func(v Shape) string { return v.ID })
	for i := range s.shapes {
		s.shapes[i].ZIndex = i
	}
}

// ReorderStrokes rearranges the stroke list to match the given id order.
func (s *Store) ReorderStrokes(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strokes = reorder(s.strokes, order, func(v StrokeLine) string { return v.ID })
}

// ReorderTexts rearranges the annotation list to match the given id order.
func (s *Store) ReorderTexts(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = reorder(s.texts, order, func(v TextAnnotation) string { return v.ID })
}

func reorder[T any](values []T, order []string, idOf func(T) string) []T {
	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	out := make([]T, 0, len(values))
	var rest []T
	for _, v := range values {
		if _, ok := index[idOf(v)]; ok {
			out = append(out, v)
			continue
		}
		rest = append(rest, v)
	}

	// Stable placement by ordered index.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && index[idOf(out[j-1])] > index[idOf(out[j])]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	return append(out, rest...)
}

// Clear removes every object from the board.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = nil
	s.strokes = nil
	s.texts = nil
}

// Snapshot captures the full board state for persistence or export.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := Document{
		Shapes:  make([]Shape, len(s.shapes)),
		Strokes: make([]StrokeLine, len(s.strokes)),
		Texts:   make([]TextAnnotation, len(s.texts)),
	}
	copy(doc.Shapes, s.shapes)
	copy(doc.Strokes, s.strokes)
	copy(doc.Texts, s.texts)
	return doc
}

// Restore replaces the full board state from a snapshot.
func (s *Store) Restore(doc Document) {
	s.ReplaceShapes(doc.Shapes)
	s.ReplaceStrokes(doc.Strokes)
	s.ReplaceTexts(doc.Texts)
}
