package discovery

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler serves the drawdeck servers currently visible on the LAN.
type Handler struct {
	browse func() ([]Peer, error)
}

func NewHandler() *Handler {
	return &Handler{browse: Browse}
}

// Peers responds with the advertised servers found by an mDNS lookup.
func (h *Handler) Peers(w http.ResponseWriter, r *http.Request) {
	peers, err := h.browse()
	if err != nil {
		slog.Error("browse lan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "discovery failed"})
		return
	}
	if peers == nil {
		peers = []Peer{}
	}
	writeJSON(w, http.StatusOK, peers)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
