package xiangqi

import "fmt"

type Color int8

const (
	NoColor Color = -1
	Red     Color = 0
	Black   Color = 1
)

// Opponent 对方；NoColor 仍返回 NoColor
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "red":
		*c = Red
	case "black":
		*c = Black
	case "none", "":
		*c = NoColor
	default:
		return fmt.Errorf("unknown color %q", b)
	}
	return nil
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // 帅 / 将
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceHorse              // 马
	PieceChariot            // 车
	PieceCannon             // 炮
	PieceSoldier            // 兵 / 卒
)

var pieceTypeNames = [...]string{
	PieceNone:     "none",
	PieceGeneral:  "general",
	PieceAdvisor:  "advisor",
	PieceElephant: "elephant",
	PieceHorse:    "horse",
	PieceChariot:  "chariot",
	PieceCannon:   "cannon",
	PieceSoldier:  "soldier",
}

func (pt PieceType) String() string {
	if pt < 0 || int(pt) >= len(pieceTypeNames) {
		return "none"
	}
	return pieceTypeNames[pt]
}

func (pt PieceType) MarshalText() ([]byte, error) {
	return []byte(pt.String()), nil
}

func (pt *PieceType) UnmarshalText(b []byte) error {
	for i, name := range pieceTypeNames {
		if name == string(b) {
			*pt = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", b)
}

// Piece 是不可变的值；ID 只用于跨步追踪同一枚棋子（显示连续性），与位置无关。
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	ID    string    `json:"id"`
}

func newPiece(pt PieceType, c Color, at Coord) Piece {
	return Piece{
		Type:  pt,
		Color: c,
		ID:    fmt.Sprintf("%s-%s-%d-%d", c, pt, at.X, at.Y),
	}
}

// Coord 以左上角为原点：X 为列 [0,8]，Y 为行 [0,9]。
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

func (c Coord) InBounds() bool {
	return InBounds(c)
}

type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + " to " + m.To.String()
}
