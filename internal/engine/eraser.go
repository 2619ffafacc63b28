package engine

import (
	"fmt"
	"strings"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/geometry"
	"github.com/drawdeck/drawdeck/backend-go/internal/history"
)

// EraserMode selects between whole-object and sub-stroke erasing.
type EraserMode string

const (
	// EraseModeStroke removes every stroke with a vertex inside the disc.
	EraseModeStroke EraserMode = "stroke"
	// EraseModePixel splits strokes around the erased disc.
	EraseModePixel EraserMode = "pixel"
)

const (
	// minFragmentNumbers is the shortest point run kept as a fragment:
	// 4 numbers, i.e. 2 points. Shorter runs cannot render meaningfully.
	minFragmentNumbers = 4

	// textEraseBuffer pads the center-distance test for text removal.
	textEraseBuffer = 20.0
)

// fragmentIDs issues deterministic fragment ids, a monotonic counter
// scoped to the originating stroke id. Deterministic ids keep the
// split/delete classification stable and avoid collisions under
// concurrent replication.
type fragmentIDs struct {
	seq map[string]int
}

func newFragmentIDs() *fragmentIDs {
	return &fragmentIDs{seq: make(map[string]int)}
}

func (f *fragmentIDs) next(originID string) string {
	f.seq[originID]++
	return fmt.Sprintf("%s-%d", originID, f.seq[originID])
}

// eraseStrokesAt removes, in one batch, every stroke having at least one
// vertex within radius of center. Returns the surviving list and whether
// anything was removed.
func eraseStrokesAt(strokes []board.StrokeLine, center geometry.Point, radius float64) ([]board.StrokeLine, bool) {
	kept := strokes[:0:0]
	removed := false

	for _, s := range strokes {
		hit := false
		for i := 0; i+1 < len(s.Points); i += 2 {
			p := geometry.Point{X: s.Points[i], Y: s.Points[i+1]}
			if geometry.DistanceSquared(p, center) <= radius*radius {
				hit = true
				break
			}
		}
		if hit {
			removed = true
			continue
		}
		kept = append(kept, s)
	}

	return kept, removed
}

// eraseAtPosition splits every stroke around the eraser disc. Points
// strictly inside the disc are dropped, segment/disc intersection points
// become new endpoints, and accumulated runs of at least 2 points become
// fragments carrying deterministic ids. Strokes untouched by the disc are
// returned unchanged.
func eraseAtPosition(strokes []board.StrokeLine, center geometry.Point, radius float64, ids *fragmentIDs) ([]board.StrokeLine, bool) {
	out := strokes[:0:0]
	changed := false

	for _, s := range strokes {
		if !strokeTouchesDisc(s, center, radius) {
			out = append(out, s)
			continue
		}
		changed = true
		out = append(out, splitStroke(s, center, radius, ids)...)
	}

	return out, changed
}

func strokeTouchesDisc(s board.StrokeLine, center geometry.Point, radius float64) bool {
	for i := 0; i+1 < len(s.Points); i += 2 {
		p := geometry.Point{X: s.Points[i], Y: s.Points[i+1]}
		if geometry.PointInCircle(p, center, radius) {
			return true
		}
		if i+3 < len(s.Points) {
			q := geometry.Point{X: s.Points[i+2], Y: s.Points[i+3]}
			if len(geometry.SegmentCircleIntersections(p, q, center, radius)) > 0 {
				return true
			}
		}
	}
	return false
}

// splitStroke walks one stroke's point list and returns the surviving
// fragments outside the disc.
func splitStroke(s board.StrokeLine, center geometry.Point, radius float64, ids *fragmentIDs) []board.StrokeLine {
	var fragments []board.StrokeLine
	var run []float64

	flush := func() {
		if len(run) >= minFragmentNumbers {
			frag := s
			frag.ID = ids.next(s.ID)
			frag.Points = run
			fragments = append(fragments, frag)
		}
		run = nil
	}

	n := len(s.Points) / 2
	for i := 0; i < n; i++ {
		cur := geometry.Point{X: s.Points[2*i], Y: s.Points[2*i+1]}
		curInside := geometry.PointInCircle(cur, center, radius)

		if i == 0 {
			if !curInside {
				run = append(run, cur.X, cur.Y)
			}
			continue
		}

		prev := geometry.Point{X: s.Points[2*(i-1)], Y: s.Points[2*(i-1)+1]}
		prevInside := geometry.PointInCircle(prev, center, radius)
		crossings := geometry.SegmentCircleIntersections(prev, cur, center, radius)

		switch {
		case !prevInside && !curInside:
			if len(crossings) == 2 {
				// Segment passes through the disc: end the run at the
				// entry point and restart it at the exit point.
				run = append(run, crossings[0].X, crossings[0].Y)
				flush()
				run = append(run, crossings[1].X, crossings[1].Y)
			}
			run = append(run, cur.X, cur.Y)

		case !prevInside && curInside:
			if len(crossings) > 0 {
				run = append(run, crossings[0].X, crossings[0].Y)
			}
			flush()

		case prevInside && !curInside:
			if len(crossings) > 0 {
				exit := crossings[len(crossings)-1]
				run = append(run, exit.X, exit.Y)
			}
			run = append(run, cur.X, cur.Y)

		default:
			// Both inside: nothing survives this segment.
		}
	}
	flush()

	return fragments
}

// classifyErase diffs the pre-erase stroke snapshot against the post-erase
// set. A vanished id whose fragments survive (id prefixed "<oldId>-") is
// one UPDATE; a vanished id with no fragments is one DELETE. This diff is
// the sole authority on split vs delete, since one gesture can remove
// several strokes at once.
func classifyErase(snapshot map[string]board.StrokeLine, after []board.StrokeLine) []history.Record {
	afterByID := make(map[string]bool, len(after))
	for _, s := range after {
		afterByID[s.ID] = true
	}

	var records []history.Record
	for id, prev := range snapshot {
		if afterByID[id] {
			continue
		}

		var fragments []board.StrokeLine
		prefix := id + "-"
		for _, s := range after {
			if strings.HasPrefix(s.ID, prefix) {
				fragments = append(fragments, s)
			}
		}

		if len(fragments) > 0 {
			records = append(records, history.Record{
				Kind:      history.KindUpdate,
				Category:  board.CategoryStroke,
				ID:        id,
				Previous:  prev,
				Fragments: fragments,
			})
		} else {
			records = append(records, history.Record{
				Kind:     history.KindDelete,
				Category: board.CategoryStroke,
				ID:       id,
				Previous: prev,
			})
		}
	}

	return records
}

// eraseShapesAt removes shapes hit by the eraser disc, using the radius as
// the containment buffer. Returns survivors and the removed shapes.
func eraseShapesAt(shapes []board.Shape, center geometry.Point, radius float64) ([]board.Shape, []board.Shape) {
	kept := shapes[:0:0]
	var removed []board.Shape

	for _, s := range shapes {
		if PointInShape(s, center.X, center.Y, radius) {
			removed = append(removed, s)
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}

// eraseTextsAt removes text annotations near the eraser using a
// center-distance heuristic with a fixed buffer around the approximate box.
func eraseTextsAt(texts []board.TextAnnotation, center geometry.Point, radius float64) ([]board.TextAnnotation, []board.TextAnnotation) {
	kept := texts[:0:0]
	var removed []board.TextAnnotation

	for _, t := range texts {
		box := TextBounds(t)
		reach := max(box.Width, box.Height)/2 + textEraseBuffer + radius
		if geometry.Distance(center, box.Center()) <= reach {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}
