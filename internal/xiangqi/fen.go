package xiangqi

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Encode 标准象棋 FEN：10 行用“/”隔开（第 0 行在前），空位用数字压缩；空格后 w(红)/b(黑)
func (b Board) Encode(turn Color) string {
	var sb strings.Builder
	for y := 0; y < Ranks; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < Files; x++ {
			pc, ok := b[Coord{X: x, Y: y}]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if turn == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodeFEN 还原棋盘和走子方；棋子 ID 按所在格生成
func DecodeFEN(fen string) (Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, NoColor, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Ranks {
		return nil, NoColor, ErrInvalidFEN
	}
	b := make(Board, 32)
	for y, row := range rows {
		x := 0
		for _, ch := range row {
			if x >= Files {
				return nil, NoColor, ErrInvalidFEN
			}
			if ch >= '1' && ch <= '9' {
				x += int(ch - '0')
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return nil, NoColor, ErrInvalidFEN
			}
			color := Black
			if unicode.IsUpper(ch) {
				color = Red
			}
			at := Coord{X: x, Y: y}
			b[at] = newPiece(pt, color, at)
			x++
		}
		if x != Files {
			return nil, NoColor, ErrInvalidFEN
		}
	}
	var turn Color
	switch parts[1] {
	case "w", "r":
		turn = Red
	case "b":
		turn = Black
	default:
		return nil, NoColor, ErrInvalidFEN
	}
	return b, turn, nil
}
