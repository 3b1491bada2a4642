package httpserver

import (
	"xiangqi/internal/turn"
	"xiangqi/internal/xiangqi"
)

// NewGameRequest 新开一局；mode 为 "local" 或 "agent"
type NewGameRequest struct {
	Mode       turn.Mode     `json:"mode"`
	AgentColor xiangqi.Color `json:"agent_color"`
}

// ClickRequest 在 (x,y) 上选子或走子
type ClickRequest struct {
	GameID string `json:"game_id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// GameRequest 只带 game_id 的请求（state / restart）
type GameRequest struct {
	GameID string `json:"game_id"`
}

type PieceDTO struct {
	X     int               `json:"x"`
	Y     int               `json:"y"`
	Type  xiangqi.PieceType `json:"type"`
	Color xiangqi.Color     `json:"color"`
	ID    string            `json:"id"`
	Label string            `json:"label"`
}

// StateResponse 前端渲染所需的全部状态
type StateResponse struct {
	GameID       string          `json:"game_id"`
	Position     string          `json:"fen"`
	Pieces       []PieceDTO      `json:"pieces"`
	Turn         xiangqi.Color   `json:"turn"`
	Selected     *xiangqi.Coord  `json:"selected"`
	LastMove     *xiangqi.Move   `json:"last_move"`
	Winner       xiangqi.Color   `json:"winner"`
	History      []string        `json:"history"`
	Phase        turn.Phase      `json:"phase"`
	Status       string          `json:"status"`
	Mode         turn.Mode       `json:"mode"`
	AgentColor   xiangqi.Color   `json:"agent_color"`
	LegalTargets []xiangqi.Coord `json:"legal_targets"`
}

func piecesToDTO(b xiangqi.Board) []PieceDTO {
	coords := b.Coords()
	out := make([]PieceDTO, 0, len(coords))
	for _, c := range coords {
		p := b[c]
		out = append(out, PieceDTO{
			X:     c.X,
			Y:     c.Y,
			Type:  p.Type,
			Color: p.Color,
			ID:    p.ID,
			Label: xiangqi.Label(p),
		})
	}
	return out
}

func viewToResponse(id string, v turn.View) StateResponse {
	history := v.History
	if history == nil {
		history = []string{}
	}
	targets := v.Targets
	if targets == nil {
		targets = []xiangqi.Coord{}
	}
	return StateResponse{
		GameID:       id,
		Position:     v.Board.Encode(v.Turn),
		Pieces:       piecesToDTO(v.Board),
		Turn:         v.Turn,
		Selected:     v.Selected,
		LastMove:     v.LastMove,
		Winner:       v.Winner,
		History:      history,
		Phase:        v.Phase,
		Status:       v.Status,
		Mode:         v.Mode,
		AgentColor:   v.AgentColor,
		LegalTargets: targets,
	}
}
