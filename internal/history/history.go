// Package history records discrete board mutations and replays them for
// undo/redo. The interaction engine is fire-and-forget toward the log and
// never reads history back.
package history

import (
	"log/slog"
	"sync"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
)

// Kind classifies a record.
type Kind string

const (
	KindAdd     Kind = "ADD"
	KindUpdate  Kind = "UPDATE"
	KindDelete  Kind = "DELETE"
	KindReorder Kind = "REORDER"
	KindBatch   Kind = "BATCH"
)

// Record is one committed mutation. Previous and Next hold the affected
// object's state before and after; their concrete type follows Category
// (board.Shape, board.StrokeLine, board.TextAnnotation). A stroke split
// is a single UPDATE whose Previous is the original stroke and whose
// Fragments are the surviving sub-strokes. A REORDER's Previous and Next
// are []string id orders for one category.
type Record struct {
	Kind     Kind
	Category board.Category
	ID       string
	Previous any
	Next     any

	// Fragments is set on stroke-split UPDATEs.
	Fragments []board.StrokeLine

	// Children is set on BATCH records.
	Children []Record
}

const maxEntries = 200

// Log is an in-memory undo/redo stack pair bound to one board's store.
type Log struct {
	mu    sync.Mutex
	store *board.Store
	undo  []Record
	redo  []Record
}

// NewLog creates a log that applies inverse records back to store.
func NewLog(store *board.Store) *Log {
	return &Log{store: store}
}

// Record appends a committed mutation. Any pending redo branch is discarded.
func (l *Log) Record(rec Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.undo = append(l.undo, rec)
	if len(l.undo) > maxEntries {
		l.undo = l.undo[len(l.undo)-maxEntries:]
	}
	l.redo = nil
}

// Undo reverts the most recent record, if any.
func (l *Log) Undo() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.undo) == 0 {
		return
	}
	rec := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]

	l.revert(rec)
	l.redo = append(l.redo, rec)
}

// Redo re-applies the most recently undone record, if any.
func (l *Log) Redo() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.redo) == 0 {
		return
	}
	rec := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]

	l.apply(rec)
	l.undo = append(l.undo, rec)
}

// Len returns the number of undoable records.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo)
}

func (l *Log) revert(rec Record) {
	switch rec.Kind {
	case KindAdd:
		l.remove(rec.Category, rec.ID)

	case KindDelete:
		l.upsert(rec.Category, rec.Previous)

	case KindUpdate:
		for _, frag := range rec.Fragments {
			l.store.RemoveStroke(frag.ID)
		}
		l.upsert(rec.Category, rec.Previous)

	case KindReorder:
		if order, ok := rec.Previous.([]string); ok {
			l.reorder(rec.Category, order)
		}

	case KindBatch:
		// Revert children in reverse commit order.
		for i := len(rec.Children) - 1; i >= 0; i-- {
			l.revert(rec.Children[i])
		}
	}
}

func (l *Log) apply(rec Record) {
	switch rec.Kind {
	case KindAdd:
		l.upsert(rec.Category, rec.Next)

	case KindDelete:
		l.remove(rec.Category, rec.ID)

	case KindUpdate:
		if len(rec.Fragments) > 0 {
			l.remove(rec.Category, rec.ID)
			for _, frag := range rec.Fragments {
				l.store.UpsertStroke(frag)
			}
			return
		}
		l.upsert(rec.Category, rec.Next)

	case KindReorder:
		if order, ok := rec.Next.([]string); ok {
			l.reorder(rec.Category, order)
		}

	case KindBatch:
		for _, child := range rec.Children {
			l.apply(child)
		}
	}
}

func (l *Log) reorder(category board.Category, order []string) {
	switch category {
	case board.CategoryShape:
		l.store.ReorderShapes(order)
	case board.CategoryStroke:
		l.store.ReorderStrokes(order)
	case board.CategoryText:
		l.store.ReorderTexts(order)
	}
}

func (l *Log) upsert(category board.Category, obj any) {
	switch v := obj.(type) {
	case board.Shape:
		l.store.UpsertShape(v)
	case board.StrokeLine:
		l.store.UpsertStroke(v)
	case board.TextAnnotation:
		l.store.UpsertText(v)
	default:
		slog.Warn("history: unexpected object type", "category", category)
	}
}

func (l *Log) remove(category board.Category, id string) {
	switch category {
	case board.CategoryShape:
		l.store.RemoveShape(id)
	case board.CategoryStroke:
		l.store.RemoveStroke(id)
	case board.CategoryText:
		l.store.RemoveText(id)
	}
}
