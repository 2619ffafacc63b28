package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/snapshot"
)

// DocumentSource resolves the current document for a board. The server
// wires this to the snapshot store's latest version.
type DocumentSource func(ctx context.Context, boardID string) (board.Document, error)

type Handler struct {
	source DocumentSource
}

func NewHandler(source DocumentSource) *Handler {
	return &Handler{source: source}
}

// ExportPDF streams the board's latest snapshot as a PDF download.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	doc, err := h.source(r.Context(), boardID)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		slog.Error("load board for export", "board", boardID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", boardID+".pdf"))

	if err := WritePDF(doc, w); err != nil {
		slog.Error("render pdf", "board", boardID, "error", err)
	}
}
