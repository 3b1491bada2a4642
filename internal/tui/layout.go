package tui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"xiangqi/internal/turn"
	"xiangqi/internal/xiangqi"
)

// 棋盘左上角（0,0 交叉点）在屏幕上的位置，每路占 cellW 列，每行占 cellH 行
const (
	originX = 3
	originY = 2
	cellW   = 4
	cellH   = 2

	panelX      = originX + xiangqi.Files*cellW + 2
	historyRows = 12
)

const (
	fgRed   = termbox.ColorRed | termbox.AttrBold
	fgBlack = termbox.ColorWhite | termbox.AttrBold
	fgGrid  = termbox.ColorYellow
	fgText  = termbox.ColorDefault

	bgCursor   = termbox.ColorBlue
	bgSelected = termbox.ColorMagenta
	bgTarget   = termbox.ColorGreen
	bgLast     = termbox.ColorCyan
)

// ScreenOf 交叉点 c 在屏幕上的列、行
func ScreenOf(c xiangqi.Coord) (col, row int) {
	return originX + c.X*cellW, originY + c.Y*cellH
}

// CellAt 把屏幕坐标换算成交叉点；点在交叉点左边一列或右边两列、下方一行都算。
func CellAt(col, row int) (xiangqi.Coord, bool) {
	dx := col - originX + 1
	dy := row - originY
	if dx < 0 || dy < 0 {
		return xiangqi.Coord{}, false
	}
	c := xiangqi.Coord{X: dx / cellW, Y: dy / cellH}
	return c, c.InBounds()
}

type cell struct {
	ch     rune
	fg, bg termbox.Attribute
}

// frame 离屏缓冲，渲染与 termbox 解耦，方便测试
type frame struct {
	w, h  int
	cells []cell
}

func newFrame(w, h int) *frame {
	return &frame{w: w, h: h, cells: make([]cell, w*h)}
}

func (f *frame) set(x, y int, ch rune, fg, bg termbox.Attribute) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.cells[y*f.w+x] = cell{ch: ch, fg: fg, bg: bg}
}

func (f *frame) at(x, y int) cell {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return cell{}
	}
	return f.cells[y*f.w+x]
}

// text 写一串字符，宽字符占两列；返回写完后的列
func (f *frame) text(x, y int, s string, fg, bg termbox.Attribute) int {
	for _, r := range s {
		f.set(x, y, r, fg, bg)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (f *frame) flush() {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			c := f.cells[y*f.w+x]
			if c.ch == 0 {
				continue
			}
			termbox.SetCell(x, y, c.ch, c.fg, c.bg)
		}
	}
}

func frameSize() (w, h int) {
	return panelX + 40, originY + xiangqi.Ranks*cellH + 3
}

// render 画出整个界面：棋盘、光标、可走点、右侧状态与记录
func render(v turn.View, cursor xiangqi.Coord, cue string) *frame {
	w, h := frameSize()
	f := newFrame(w, h)

	f.text(originX, 0, "中国象棋  方向键/鼠标选子走子  r 重开  m 切换模式  q 退出", fgText, termbox.ColorDefault)
	drawGrid(f)

	targets := make(map[xiangqi.Coord]bool, len(v.Targets))
	for _, c := range v.Targets {
		targets[c] = true
	}

	for y := 0; y < xiangqi.Ranks; y++ {
		for x := 0; x < xiangqi.Files; x++ {
			c := xiangqi.Coord{X: x, Y: y}
			col, row := ScreenOf(c)
			bg := squareBackground(v, cursor, targets, c)

			p, ok := v.Board[c]
			if !ok {
				if bg != termbox.ColorDefault {
					mark := '+'
					if targets[c] {
						mark = '·'
					}
					f.set(col, row, mark, fgGrid, bg)
				}
				continue
			}
			fg := fgRed
			if p.Color == xiangqi.Black {
				fg = fgBlack
			}
			f.text(col, row, xiangqi.Label(p), fg, bg)
		}
	}

	drawPanel(f, v, cue)
	return f
}

func squareBackground(v turn.View, cursor xiangqi.Coord, targets map[xiangqi.Coord]bool, c xiangqi.Coord) termbox.Attribute {
	switch {
	case c == cursor:
		return bgCursor
	case v.Selected != nil && *v.Selected == c:
		return bgSelected
	case targets[c]:
		return bgTarget
	case v.LastMove != nil && (v.LastMove.From == c || v.LastMove.To == c):
		return bgLast
	}
	return termbox.ColorDefault
}

func drawGrid(f *frame) {
	for x := 0; x < xiangqi.Files; x++ {
		col, _ := ScreenOf(xiangqi.Coord{X: x})
		f.text(col, originY-1, fmt.Sprint(x), fgGrid, termbox.ColorDefault)
	}
	for y := 0; y < xiangqi.Ranks; y++ {
		_, row := ScreenOf(xiangqi.Coord{Y: y})
		f.text(0, row, fmt.Sprint(y), fgGrid, termbox.ColorDefault)
		for x := 0; x < xiangqi.Files; x++ {
			col, _ := ScreenOf(xiangqi.Coord{X: x, Y: y})
			f.set(col, row, '+', fgGrid, termbox.ColorDefault)
			if x < xiangqi.Files-1 {
				for i := 1; i < cellW; i++ {
					f.set(col+i, row, '─', fgGrid, termbox.ColorDefault)
				}
			}
			if y < xiangqi.Ranks-1 && (y != 4 || x == 0 || x == xiangqi.Files-1) {
				f.set(col, row+1, '│', fgGrid, termbox.ColorDefault)
			}
		}
	}
	_, river := ScreenOf(xiangqi.Coord{Y: 4})
	f.text(originX+cellW+2, river+1, "楚 河", fgGrid, termbox.ColorDefault)
	f.text(originX+5*cellW+2, river+1, "漢 界", fgGrid, termbox.ColorDefault)
}

func drawPanel(f *frame, v turn.View, cue string) {
	row := originY
	f.text(panelX, row, v.Status, fgText|termbox.AttrBold, termbox.ColorDefault)
	row++
	f.text(panelX, row, cue, fgText, termbox.ColorDefault)
	row += 2
	mode := "本地对弈"
	if v.Mode == turn.ModeAgent {
		mode = fmt.Sprintf("对代理（代理执%s）", sideLabel(v.AgentColor))
	}
	f.text(panelX, row, "模式: "+mode, fgText, termbox.ColorDefault)
	row++
	f.text(panelX, row, "轮到: "+sideLabel(v.Turn), fgText, termbox.ColorDefault)
	row += 2

	hist := v.History
	if len(hist) > historyRows {
		hist = hist[len(hist)-historyRows:]
	}
	start := len(v.History) - len(hist)
	for i, line := range hist {
		s := runewidth.Truncate(fmt.Sprintf("%3d. %s", start+i+1, line), 38, "…")
		f.text(panelX, row+i, s, fgText, termbox.ColorDefault)
	}
}

func sideLabel(c xiangqi.Color) string {
	if c == xiangqi.Black {
		return "黑"
	}
	return "红"
}
