package board

import (
	"testing"

	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
)

func shape(id string) Shape {
	return Shape{ID: id, Kind: KindRectangle, Visible: true, Position: geometry.Point{X: 1, Y: 2}, Width: 10, Height: 10}
}

func TestReplaceShapesReassignsZIndex(t *testing.T) {
	s := NewStore()
	s.ReplaceShapes([]Shape{shape("a"), shape("b"), shape("c")})

	for i, sh := range s.Shapes() {
		if sh.ZIndex != i {
			t.Errorf("zIndex[%d] = %d, want %d", i, sh.ZIndex, i)
		}
	}
}

func TestShapesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.ReplaceShapes([]Shape{shape("a")})

	out := s.Shapes()
	out[0].Width = 999

	if s.Shapes()[0].Width != 10 {
		t.Error("mutating the returned slice must not affect the store")
	}
}

func TestUpsertShape(t *testing.T) {
	s := NewStore()
	s.ReplaceShapes([]Shape{shape("a"), shape("b")})

	updated := shape("a")
	updated.Width = 50
	s.UpsertShape(updated)

	shapes := s.Shapes()
	if len(shapes) != 2 {
		t.Fatalf("upsert of existing id grew the list: %d", len(shapes))
	}
	if shapes[0].Width != 50 {
		t.Error("existing shape not replaced in place")
	}
	if shapes[0].ZIndex != 0 {
		t.Error("in-place replace should keep the z slot")
	}

	s.UpsertShape(shape("c"))
	if got := s.Shapes(); len(got) != 3 || got[2].ID != "c" || got[2].ZIndex != 2 {
		t.Errorf("new shape should append at top: %+v", got)
	}
}

func TestRemoveShapeReindexes(t *testing.T) {
	s := NewStore()
	s.ReplaceShapes([]Shape{shape("a"), shape("b"), shape("c")})

	if !s.RemoveShape("b") {
		t.Fatal("expected removal")
	}
	if s.RemoveShape("b") {
		t.Error("second removal should report false")
	}

	shapes := s.Shapes()
	if len(shapes) != 2 || shapes[0].ID != "a" || shapes[1].ID != "c" {
		t.Fatalf("shapes = %+v", shapes)
	}
	if shapes[1].ZIndex != 1 {
		t.Errorf("zIndex not reindexed after removal: %d", shapes[1].ZIndex)
	}
}

func TestReorderShapes(t *testing.T) {
	s := NewStore()
	s.ReplaceShapes([]Shape{shape("a"), shape("b"), shape("c")})

	s.ReorderShapes([]string{"b", "a", "c"})

	shapes := s.Shapes()
	want := []string{"b", "a", "c"}
	for i, id := range want {
		if shapes[i].ID != id {
			t.Fatalf("order = %v", shapes)
		}
		if shapes[i].ZIndex != i {
			t.Errorf("zIndex[%d] = %d", i, shapes[i].ZIndex)
		}
	}
}

func TestReorderKeepsUnlistedAtEnd(t *testing.T) {
	s := NewStore()
	s.ReplaceStrokes([]StrokeLine{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	// An order computed before "c" existed must not drop it.
	s.ReorderStrokes([]string{"b", "a"})

	strokes := s.Strokes()
	if len(strokes) != 3 {
		t.Fatalf("stroke dropped by reorder: %+v", strokes)
	}
	if strokes[0].ID != "b" || strokes[1].ID != "a" || strokes[2].ID != "c" {
		t.Errorf("order = %v, %v, %v", strokes[0].ID, strokes[1].ID, strokes[2].ID)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := NewStore()
	s.ReplaceShapes([]Shape{shape("a")})
	s.ReplaceStrokes([]StrokeLine{{ID: "p", Points: []float64{0, 0, 5, 5}}})
	s.ReplaceTexts([]TextAnnotation{{ID: "t", Text: "x"}})

	doc := s.Snapshot()
	s.Clear()
	if len(s.Shapes()) != 0 || len(s.Strokes()) != 0 || len(s.Texts()) != 0 {
		t.Fatal("clear left objects behind")
	}

	s.Restore(doc)
	if len(s.Shapes()) != 1 || len(s.Strokes()) != 1 || len(s.Texts()) != 1 {
		t.Error("restore did not bring the snapshot back")
	}
}
