package xiangqi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	Files = 9
	Ranks = 10

	// 河界在第 4、5 行之间
	riverNorth = 4
	riverSouth = 5
)

var (
	ErrPrecondition = errors.New("precondition violated")
	ErrNoPiece      = fmt.Errorf("%w: no piece on origin square", ErrPrecondition)
)

func InBounds(c Coord) bool {
	return c.X >= 0 && c.X < Files && c.Y >= 0 && c.Y < Ranks
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func forward(c Color) int {
	switch c {
	case Red:
		return -1
	case Black:
		return +1
	}
	return 0
}

// 是否已过河（以当前所在行判断）
func crossedRiver(c Color, y int) bool {
	switch c {
	case Red:
		return y <= riverNorth
	case Black:
		return y >= riverSouth
	}
	return false
}

// 是否在己方九宫
func inPalace(c Color, at Coord) bool {
	if at.X < 3 || at.X > 5 {
		return false
	}
	switch c {
	case Red:
		return at.Y >= 7 && at.Y <= 9
	case Black:
		return at.Y >= 0 && at.Y <= 2
	}
	return false
}

// 相不过河
func onOwnSide(c Color, y int) bool {
	switch c {
	case Red:
		return y >= riverSouth
	case Black:
		return y <= riverNorth
	}
	return false
}

// Board 是坐标到棋子的稀疏映射，是“哪里有什么子”的唯一来源。
// 约定只读：走子通过 WithMove 生成新棋盘。
type Board map[Coord]Piece

func (b Board) At(c Coord) (Piece, bool) {
	p, ok := b[c]
	return p, ok
}

func (b Board) occupied(c Coord) bool {
	_, ok := b[c]
	return ok
}

// WithMove 返回 from 上的子移动到 to 之后的新棋盘（to 上原有的子被吃掉）。
// 不做任何规则检查，调用方必须先用 IsLegal 校验。
func (b Board) WithMove(from, to Coord) (Board, error) {
	pc, ok := b[from]
	if !ok {
		return nil, fmt.Errorf("%w at %s", ErrNoPiece, from)
	}
	nb := b.Clone()
	delete(nb, from)
	nb[to] = pc
	return nb, nil
}

func (b Board) Clone() Board {
	nb := make(Board, len(b))
	for c, p := range b {
		nb[c] = p
	}
	return nb
}

func (b Board) Count(c Color) int {
	n := 0
	for _, p := range b {
		if p.Color == c {
			n++
		}
	}
	return n
}

func (b Board) HasGeneral(c Color) bool {
	for _, p := range b {
		if p.Type == PieceGeneral && p.Color == c {
			return true
		}
	}
	return false
}

// Coords 按行优先顺序返回所有有子的坐标
func (b Board) Coords() []Coord {
	out := make([]Coord, 0, len(b))
	for y := 0; y < Ranks; y++ {
		for x := 0; x < Files; x++ {
			c := Coord{X: x, Y: y}
			if b.occupied(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// String 文本棋盘：红子 R?，黑子 B?，空位 " ."
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5 6 7 8\n")
	for y := 0; y < Ranks; y++ {
		fmt.Fprintf(&sb, "%d ", y)
		for x := 0; x < Files; x++ {
			if p, ok := b[Coord{X: x, Y: y}]; ok {
				prefix := 'B'
				if p.Color == Red {
					prefix = 'R'
				}
				sb.WriteRune(prefix)
				sb.WriteRune(pieceLetter[p.Type])
			} else {
				sb.WriteString(" .")
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// 文本棋盘用的单字母（车用 C，炮用 N）
var pieceLetter = map[PieceType]rune{
	PieceGeneral:  'G',
	PieceAdvisor:  'A',
	PieceElephant: 'E',
	PieceHorse:    'H',
	PieceChariot:  'C',
	PieceCannon:   'N',
	PieceSoldier:  'S',
}

// FEN 字母：大写红，小写黑
var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'n': PieceHorse,
	'r': PieceChariot,
	'c': PieceCannon,
	'p': PieceSoldier,
}

func pieceToChar(p Piece) rune {
	for k, v := range letterToPieceType {
		if v == p.Type {
			if p.Color == Red {
				return unicode.ToUpper(k)
			}
			return k
		}
	}
	return '.'
}

// 初始局面：黑上红下
const initialBoardString = `rnbakabnr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RNBAKABNR`

func parseInitialBoard() Board {
	lines := make([]string, 0, Ranks)
	for _, line := range strings.Split(initialBoardString, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Ranks {
		panic("initialBoardString must have 10 ranks")
	}
	b := make(Board, 32)
	for y, line := range lines {
		if len(line) != Files {
			panic("initialBoardString must have 9 files per rank")
		}
		for x, ch := range line {
			if ch == '.' {
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			color := Black
			if unicode.IsUpper(ch) {
				color = Red
			}
			at := Coord{X: x, Y: y}
			b[at] = newPiece(pt, color, at)
		}
	}
	return b
}

// NewInitialBoard 标准 32 子开局
func NewInitialBoard() Board {
	return parseInitialBoard()
}
