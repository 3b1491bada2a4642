package xiangqi

import (
	"fmt"
	"strconv"
)

// HistoryRecord 对局记录的一行，例如 "cannon 1,7 to 4,7"
func HistoryRecord(p Piece, m Move) string {
	return fmt.Sprintf("%s %s to %s", p.Type, m.From, m.To)
}

var pieceLabels = map[Color]map[PieceType]string{
	Red: {
		PieceGeneral:  "帅",
		PieceAdvisor:  "仕",
		PieceElephant: "相",
		PieceHorse:    "马",
		PieceChariot:  "车",
		PieceCannon:   "炮",
		PieceSoldier:  "兵",
	},
	Black: {
		PieceGeneral:  "将",
		PieceAdvisor:  "士",
		PieceElephant: "象",
		PieceHorse:    "马",
		PieceChariot:  "车",
		PieceCannon:   "炮",
		PieceSoldier:  "卒",
	},
}

// Label 棋子的汉字
func Label(p Piece) string {
	return pieceLabels[p.Color][p.Type]
}

var chineseNums = [...]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// 红方从右往左数路（九..一，汉字），黑方从左往右数（1..9，数字）
func fileName(c Color, x int) string {
	if c == Red {
		return chineseNums[Files-x]
	}
	return strconv.Itoa(x + 1)
}

func countName(c Color, n int) string {
	if c == Red && n >= 0 && n < len(chineseNums) {
		return chineseNums[n]
	}
	return strconv.Itoa(n)
}

// Notation 中文记谱，例如 "炮二平五"、"马8进7"。
// 直行子（车炮兵将）进退记步数，斜行子（马相士）进退记落点所在路。
func Notation(p Piece, m Move) string {
	dy := m.To.Y - m.From.Y

	var dir, tail string
	if dy == 0 {
		dir = "平"
		tail = fileName(p.Color, m.To.X)
	} else {
		if dy*forward(p.Color) > 0 {
			dir = "进"
		} else {
			dir = "退"
		}
		switch p.Type {
		case PieceChariot, PieceCannon, PieceSoldier, PieceGeneral:
			tail = countName(p.Color, abs(dy))
		default:
			tail = fileName(p.Color, m.To.X)
		}
	}
	return Label(p) + fileName(p.Color, m.From.X) + dir + tail
}
