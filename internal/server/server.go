// Package server exposes the HTTP surface: the player session request
// endpoints, the per-floor websocket upgrade, and the online counter. It is
// a thin router; all game semantics live behind it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mike-warlet/megarealms/internal/room"
	"github.com/mike-warlet/megarealms/internal/session"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP worker.
type Server struct {
	port     uint16
	sessions *session.Manager
	rooms    *room.Manager
	verifier *TokenVerifier
	upgrader websocket.Upgrader
}

// NewServer wires the router to the session and room registries.
func NewServer(port uint16, sessions *session.Manager, rooms *room.Manager, verifier *TokenVerifier) *Server {
	return &Server{
		port:     port,
		sessions: sessions,
		rooms:    rooms,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Game clients connect from arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /player/load", s.requireAuth(s.handleLoad))
	mux.HandleFunc("POST /player/action", s.requireAuth(s.handleAction))
	mux.HandleFunc("GET /player/state", s.requireAuth(s.handleState))
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /api/online", s.handleOnline)
	return withCORS(mux)
}

// Start serves HTTP until the context is canceled, then drains connections.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("http shutdown", "error", err)
			}
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "http server listening", "port", s.port)

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http on port %d: %w", s.port, err)
	}
	return nil
}
