package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"xiangqi/internal/server/session"
	"xiangqi/internal/xiangqi"
)

const maxJSONBodyBytes int64 = 1 << 16

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *session.Manager
}

func NewHandler(games *session.Manager) *Handler {
	return &Handler{games: games}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/click":
		h.handleClick(w, r)
	case "/api/restart":
		h.handleRestart(w, r)
	case "/api/state":
		h.handleState(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	cfg := h.games.Options().Turn
	req := NewGameRequest{Mode: cfg.Mode, AgentColor: cfg.AgentColor}
	// 空 body 表示全部用默认值
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		decodeError(w, err)
		return
	}
	cfg.Mode = req.Mode
	cfg.AgentColor = req.AgentColor

	s := h.games.NewGame(cfg)
	writeJSON(w, viewToResponse(s.ID, s.View()))
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	v := s.Click(xiangqi.Coord{X: req.X, Y: req.Y})
	writeJSON(w, viewToResponse(s.ID, v))
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, viewToResponse(s.ID, s.Restart()))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, viewToResponse(s.ID, s.View()))
}

func (h *Handler) lookup(w http.ResponseWriter, id string) (*session.Session, bool) {
	s, err := h.games.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		decodeError(w, err)
		return false
	}
	return true
}

func decodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "bad json", http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
