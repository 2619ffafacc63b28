package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/drawdeck/drawdeck/backend-go/internal/board"
	"github.com/drawdeck/drawdeck/backend-go/internal/collab"
	"github.com/drawdeck/drawdeck/backend-go/internal/config"
	"github.com/drawdeck/drawdeck/backend-go/internal/db"
	"github.com/drawdeck/drawdeck/backend-go/internal/discovery"
	"github.com/drawdeck/drawdeck/backend-go/internal/export"
	mw "github.com/drawdeck/drawdeck/backend-go/internal/middleware"
	"github.com/drawdeck/drawdeck/backend-go/internal/session"
	"github.com/drawdeck/drawdeck/backend-go/internal/snapshot"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	snapStore := snapshot.NewStore(pool)
	if err := snapStore.EnsureSchema(ctx); err != nil {
		slog.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	sessionService := session.NewService(snapStore, cfg.JWTSecret)
	sessionHandler := session.NewHandler(sessionService, snapStore)

	// Board loader for the collaboration hub
	boardLoader := func(ctx context.Context, boardID string) (board.Document, error) {
		doc, _, err := snapStore.LoadLatest(ctx, boardID)
		return doc, err
	}

	// Board saver for the collaboration hub
	boardSaver := func(ctx context.Context, boardID string, doc board.Document) error {
		return snapStore.Save(ctx, boardID, doc)
	}

	hub := collab.NewHub(boardLoader, boardSaver, cfg.SnapshotInterval)
	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		hub.Run(hubCtx)
	}()

	exportHandler := export.NewHandler(boardLoader)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Board management and join
	r.HandleFunc("/api/boards", sessionHandler.CreateBoard).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/boards", sessionHandler.ListBoards).Methods("GET")
	r.HandleFunc("/api/boards/{boardId}/join", sessionHandler.Join).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/boards/{boardId}/export.pdf", exportHandler.ExportPDF).Methods("GET")
	r.HandleFunc("/api/discovery/peers", discovery.NewHandler().Peers).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, sessionService, cfg.AllowedOrigins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var advertiser *discovery.Advertiser
	if cfg.MDNSAdvertise {
		advertiser, err = discovery.Advertise(cfg.InstanceName, cfg.Port)
		if err != nil {
			slog.Warn("mdns advertise failed", "error", err)
		} else {
			slog.Info("advertising on lan", "instance", cfg.InstanceName, "port", cfg.Port)
		}
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		if advertiser != nil {
			advertiser.Shutdown()
		}

		// Stop the hub first so every dirty board gets saved.
		stopHub()
		<-hubDone

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, sessions *session.Service, allowedOrigins string) {
	vars := mux.Vars(r)
	boardID := vars["boardId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := sessions.ValidateToken(token, boardID)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(allowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, claims.UserID, claims.DisplayName, boardID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes from the configured origins, which is
// what websocket.AcceptOptions matches against.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
