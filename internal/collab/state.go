package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
)

// BoardState holds the authoritative board state for one room. Remote
// operations apply last-writer-wins at commit time: an upsert always
// lands, a mutation referencing a vanished object is rejected.
type BoardState struct {
	mu        sync.RWMutex
	store     *board.Store
	serverSeq int64
	dirty     bool
}

// NewBoardState wraps a store seeded with the board's persisted document.
func NewBoardState(doc board.Document) *BoardState {
	store := board.NewStore()
	store.Restore(doc)
	return &BoardState{store: store}
}

// Snapshot returns the current document and sequence number.
func (bs *BoardState) Snapshot() (board.Document, int64) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.store.Snapshot(), bs.serverSeq
}

// Dirty reports and clears the modified-since-last-save flag.
func (bs *BoardState) Dirty() bool {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	d := bs.dirty
	bs.dirty = false
	return d
}

// ApplyOperation applies one remote operation and returns the server
// sequence assigned to it.
func (bs *BoardState) ApplyOperation(op Operation) (int64, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if err := bs.applyLocked(op); err != nil {
		return 0, err
	}

	bs.serverSeq++
	bs.dirty = true
	return bs.serverSeq, nil
}

func (bs *BoardState) applyLocked(op Operation) error {
	switch op.Type {
	case OpShapeUpsert:
		var s board.Shape
		if err := json.Unmarshal(op.Object, &s); err != nil {
			return fmt.Errorf("invalid shape: %w", err)
		}
		bs.store.UpsertShape(s)
		return nil

	case OpShapeDelete:
		if !bs.store.RemoveShape(op.ObjectID) {
			return fmt.Errorf("shape not found: %s", op.ObjectID)
		}
		return nil

	case OpStrokeUpsert:
		var s board.StrokeLine
		if err := json.Unmarshal(op.Object, &s); err != nil {
			return fmt.Errorf("invalid stroke: %w", err)
		}
		bs.store.UpsertStroke(s)
		return nil

	case OpStrokeDelete:
		if !bs.store.RemoveStroke(op.ObjectID) {
			return fmt.Errorf("stroke not found: %s", op.ObjectID)
		}
		return nil

	case OpStrokeSplit:
		var fragments []board.StrokeLine
		if err := json.Unmarshal(op.Fragments, &fragments); err != nil {
			return fmt.Errorf("invalid fragments: %w", err)
		}
		if !bs.store.RemoveStroke(op.ObjectID) {
			return fmt.Errorf("stroke not found: %s", op.ObjectID)
		}
		for _, frag := range fragments {
			bs.store.UpsertStroke(frag)
		}
		return nil

	case OpTextUpsert:
		var t board.TextAnnotation
		if err := json.Unmarshal(op.Object, &t); err != nil {
			return fmt.Errorf("invalid text: %w", err)
		}
		bs.store.UpsertText(t)
		return nil

	case OpTextDelete:
		if !bs.store.RemoveText(op.ObjectID) {
			return fmt.Errorf("text not found: %s", op.ObjectID)
		}
		return nil

	case OpReorder:
		switch board.Category(op.Category) {
		case board.CategoryShape:
			bs.store.ReorderShapes(op.Order)
		case board.CategoryStroke:
			bs.store.ReorderStrokes(op.Order)
		case board.CategoryText:
			bs.store.ReorderTexts(op.Order)
		default:
			return fmt.Errorf("unknown category: %s", op.Category)
		}
		return nil

	case OpClear:
		bs.store.Clear()
		return nil

	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// GetServerTimestamp returns the current server timestamp.
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
