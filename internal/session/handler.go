package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/drawdeck/drawdeck/backend-go/internal/snapshot"
)

type Handler struct {
	service *Service
	boards  *snapshot.Store
}

func NewHandler(service *Service, boards *snapshot.Store) *Handler {
	return &Handler{service: service, boards: boards}
}

type createBoardRequest struct {
	Name     string `json:"name"`
	JoinCode string `json:"joinCode"`
}

type joinRequest struct {
	JoinCode    string `json:"joinCode"`
	DisplayName string `json:"displayName"`
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	b, err := h.service.CreateBoard(r.Context(), req.Name, req.JoinCode)
	if err != nil {
		slog.Error("create board failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.ListBoards(r.Context())
	if err != nil {
		slog.Error("list boards failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if boards == nil {
		boards = []snapshot.Board{}
	}
	writeJSON(w, http.StatusOK, boards)
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = "Anonymous"
	}

	result, err := h.service.Join(r.Context(), boardID, req.JoinCode, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCode):
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid join code"})
		case errors.Is(err, snapshot.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "board not found"})
		default:
			slog.Error("join failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
