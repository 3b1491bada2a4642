// Package agent contains clients for external move-suggestion services.
// Every move they return is untrusted; the turn orchestrator re-validates it.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"xiangqi/internal/xiangqi"
)

var (
	ErrNoMove      = errors.New("agent returned no move")
	ErrBadResponse = errors.New("malformed agent response")
)

const maxResponseBytes = 1 << 16

// MoveRequest is posted to the suggestion service.
type MoveRequest struct {
	GameID   string `json:"game_id,omitempty"`
	Position string `json:"position"` // FEN, side to move included
	Board    string `json:"board"`    // human-readable diagram for text-model agents
	ToMove   string `json:"to_move"`  // "red" / "black"
}

type CoordDTO struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type MoveDTO struct {
	From *CoordDTO `json:"from"`
	To   *CoordDTO `json:"to"`
}

// MoveResponse mirrors the engine's answer; Status other than "ok" means no move.
type MoveResponse struct {
	BestMove  *MoveDTO `json:"best_move"`
	Status    string   `json:"status"`
	Reasoning string   `json:"reasoning,omitempty"`
}

// Remote asks an HTTP JSON service for a move.
type Remote struct {
	URL    string
	GameID string
	Client *http.Client
}

func NewRemote(url string, timeout time.Duration) *Remote {
	return &Remote{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (r *Remote) ProposeMove(ctx context.Context, b xiangqi.Board, toMove xiangqi.Color) (*xiangqi.Move, error) {
	body, err := json.Marshal(MoveRequest{
		GameID:   r.GameID,
		Position: b.Encode(toMove),
		Board:    b.String(),
		ToMove:   toMove.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent returned HTTP %d", resp.StatusCode)
	}

	var out MoveResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return out.move()
}

func (r MoveResponse) move() (*xiangqi.Move, error) {
	if r.Status != "" && r.Status != "ok" {
		return nil, fmt.Errorf("%w (status %q)", ErrNoMove, r.Status)
	}
	if r.BestMove == nil {
		return nil, ErrNoMove
	}
	from, ok := r.BestMove.From.coord()
	if !ok {
		return nil, fmt.Errorf("%w: missing from", ErrBadResponse)
	}
	to, ok := r.BestMove.To.coord()
	if !ok {
		return nil, fmt.Errorf("%w: missing to", ErrBadResponse)
	}
	return &xiangqi.Move{From: from, To: to}, nil
}

func (c *CoordDTO) coord() (xiangqi.Coord, bool) {
	if c == nil || c.X == nil || c.Y == nil {
		return xiangqi.Coord{}, false
	}
	return xiangqi.Coord{X: *c.X, Y: *c.Y}, true
}

// Func adapts a plain function to the agent interface.
type Func func(ctx context.Context, b xiangqi.Board, toMove xiangqi.Color) (*xiangqi.Move, error)

func (f Func) ProposeMove(ctx context.Context, b xiangqi.Board, toMove xiangqi.Color) (*xiangqi.Move, error) {
	return f(ctx, b, toMove)
}
