package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mike-warlet/megarealms/internal/game"
	"github.com/mike-warlet/megarealms/internal/session"
	"github.com/mike-warlet/megarealms/internal/store"
)

type loadRequest struct {
	CharID string          `json:"charId"`
	Data   *game.Character `json:"data,omitempty"`
}

type actionRequest struct {
	CharID string          `json:"charId"`
	Action json.RawMessage `json:"action"`
}

type stateResponse struct {
	OK   int             `json:"ok"`
	Data *game.Character `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	charID := r.URL.Query().Get("charId")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
		return
	}

	var req loadRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
			return
		}
	}
	if charID == "" {
		charID = req.CharID
	}
	if charID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "charId required"})
		return
	}

	snap, err := s.sessions.Session(charID).Load(r.Context(), req.Data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{OK: 1, Data: snap})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	charID := r.URL.Query().Get("charId")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
		return
	}
	if charID == "" {
		charID = req.CharID
	}
	if charID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "charId required"})
		return
	}

	act, err := session.DecodeAction(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.sessions.Session(charID).Apply(r.Context(), act)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	charID := r.URL.Query().Get("charId")
	if charID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "charId required"})
		return
	}

	snap, err := s.sessions.Session(charID).State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{OK: 1, Data: snap})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	floor := 0
	if f := r.URL.Query().Get("floor"); f != "" {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			http.Error(w, "invalid floor", http.StatusBadRequest)
			return
		}
		floor = n
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "floor", floor, "error", err)
		return
	}

	s.rooms.Room(floor).Handle(r.Context(), conn)
}

func (s *Server) handleOnline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"online": s.rooms.OnlineCount(),
	})
}

// requireAuth guards the player endpoints with bearer token verification.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.verifier.Authorize(r) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}
		next(w, r)
	}
}

// withCORS answers preflight requests and stamps every response.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError maps failures onto the wire: user errors are client failures,
// missing characters are not found, anything else is internal.
func writeError(w http.ResponseWriter, err error) {
	var userErr *session.UserError
	switch {
	case errors.As(err, &userErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: userErr.Message})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "error", err)
	}
}
