package game

import "xiangqi/internal/xiangqi"

// EventKind 用于音效/播报分类
type EventKind int

const (
	KindMove EventKind = iota
	KindCapture
	KindWin
)

func (k EventKind) String() string {
	switch k {
	case KindCapture:
		return "capture"
	case KindWin:
		return "win"
	}
	return "move"
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event 描述一次已执行的走子
type Event struct {
	Piece    xiangqi.Piece  `json:"piece"`
	Move     xiangqi.Move   `json:"move"`
	Captured *xiangqi.Piece `json:"captured,omitempty"`
	Kind     EventKind      `json:"kind"`
	Winner   xiangqi.Color  `json:"winner"`
	Record   string         `json:"record"`
}

// Notation 中文记谱
func (e Event) Notation() string {
	return xiangqi.Notation(e.Piece, e.Move)
}
