package tui

import (
	"context"
	"testing"
	"time"

	"github.com/nsf/termbox-go"

	"xiangqi/internal/agent"
	"xiangqi/internal/turn"
	"xiangqi/internal/xiangqi"
)

func at(x, y int) xiangqi.Coord { return xiangqi.Coord{X: x, Y: y} }

func key(k termbox.Key) termbox.Event { return termbox.Event{Type: termbox.EventKey, Key: k} }
func char(r rune) termbox.Event       { return termbox.Event{Type: termbox.EventKey, Ch: r} }

func TestCellAtRoundTrip(t *testing.T) {
	for y := 0; y < xiangqi.Ranks; y++ {
		for x := 0; x < xiangqi.Files; x++ {
			c := at(x, y)
			col, row := ScreenOf(c)
			for _, d := range [][2]int{{0, 0}, {-1, 0}, {2, 1}} {
				got, ok := CellAt(col+d[0], row+d[1])
				if !ok || got != c {
					t.Fatalf("CellAt(%d,%d) = %v,%v want %v", col+d[0], row+d[1], got, ok, c)
				}
			}
		}
	}
	if _, ok := CellAt(0, 0); ok {
		t.Fatalf("CellAt(0,0) should be off board")
	}
	col, row := ScreenOf(at(8, 9))
	if _, ok := CellAt(col+cellW, row); ok {
		t.Fatalf("right of the last file should be off board")
	}
}

func TestRenderInitialBoard(t *testing.T) {
	v := turn.New(turn.DefaultConfig(), nil).View()
	f := render(v, at(4, 9), "")

	col, row := ScreenOf(at(4, 9))
	if c := f.at(col, row); c.ch != '帅' || c.bg != bgCursor {
		t.Fatalf("red general cell = %q bg=%v", c.ch, c.bg)
	}
	col, row = ScreenOf(at(4, 0))
	if c := f.at(col, row); c.ch != '将' || c.fg != fgBlack {
		t.Fatalf("black general cell = %q fg=%v", c.ch, c.fg)
	}
	col, row = ScreenOf(at(4, 4))
	if c := f.at(col, row); c.ch != '+' {
		t.Fatalf("empty point = %q", c.ch)
	}
}

func TestRenderMarksTargets(t *testing.T) {
	o := turn.New(turn.DefaultConfig(), nil)
	o.SelectOrMove(at(0, 6))
	f := render(o.View(), at(8, 0), "")

	col, row := ScreenOf(at(0, 5))
	if c := f.at(col, row); c.bg != bgTarget {
		t.Fatalf("target bg = %v", c.bg)
	}
	col, row = ScreenOf(at(0, 6))
	if c := f.at(col, row); c.bg != bgSelected {
		t.Fatalf("selected bg = %v", c.bg)
	}
}

func TestKeyboardMovesPieces(t *testing.T) {
	a := New(turn.DefaultConfig(), nil, nil)
	defer a.Close()

	// 光标从 (4,9) 移到 (7,7)
	for _, ev := range []termbox.Event{key(termbox.KeyArrowUp), key(termbox.KeyArrowUp), key(termbox.KeyArrowRight), key(termbox.KeyArrowRight), key(termbox.KeyArrowRight)} {
		a.handle(ev)
	}
	if a.cursor != at(7, 7) {
		t.Fatalf("cursor = %v", a.cursor)
	}
	a.handle(key(termbox.KeyEnter))
	a.cursor = at(4, 7)
	a.handle(key(termbox.KeySpace))

	v := a.View()
	if v.Turn != xiangqi.Black || len(v.History) != 1 || v.History[0] != "cannon 7,7 to 4,7" {
		t.Fatalf("turn=%s history=%v", v.Turn, v.History)
	}
	if a.cue != "[move] 炮二平五" {
		t.Fatalf("cue = %q", a.cue)
	}

	a.handle(char('r'))
	if v := a.View(); len(v.History) != 0 || v.Turn != xiangqi.Red {
		t.Fatalf("restart: turn=%s history=%v", v.Turn, v.History)
	}
	if !a.handle(char('q')) || !a.handle(key(termbox.KeyEsc)) {
		t.Fatalf("q / Esc should quit")
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	a := New(turn.DefaultConfig(), nil, nil)
	defer a.Close()
	a.cursor = at(0, 0)
	a.handle(key(termbox.KeyArrowUp))
	a.handle(key(termbox.KeyArrowLeft))
	if a.cursor != at(0, 0) {
		t.Fatalf("cursor left the board: %v", a.cursor)
	}
}

func TestMouseClickAndAgentReply(t *testing.T) {
	ag := agent.Func(func(_ context.Context, b xiangqi.Board, c xiangqi.Color) (*xiangqi.Move, error) {
		return &xiangqi.Move{From: at(7, 0), To: at(6, 2)}, nil
	})
	cfg := turn.DefaultConfig()
	cfg.Mode = turn.ModeAgent
	cfg.ThinkDelay = 0
	a := New(cfg, ag, nil)
	defer a.Close()

	click := func(c xiangqi.Coord) {
		col, row := ScreenOf(c)
		a.handle(termbox.Event{Type: termbox.EventMouse, Key: termbox.MouseLeft, MouseX: col, MouseY: row})
	}
	click(at(7, 7))
	click(at(4, 7))
	if v := a.View(); v.Phase != turn.AwaitingAgent {
		t.Fatalf("phase = %s", v.Phase)
	}

	select {
	case r := <-a.replies:
		a.deliver(r)
	case <-time.After(2 * time.Second):
		t.Fatalf("no agent reply")
	}
	v := a.View()
	if v.Turn != xiangqi.Red || len(v.History) != 2 || v.Phase != turn.AwaitingInput {
		t.Fatalf("turn=%s history=%v phase=%s", v.Turn, v.History, v.Phase)
	}
}

func TestModeToggleWithoutAgentForfeits(t *testing.T) {
	cfg := turn.DefaultConfig()
	cfg.AgentColor = xiangqi.Red
	cfg.ThinkDelay = 0
	a := New(cfg, nil, nil)
	defer a.Close()

	a.handle(char('m'))
	v := a.View()
	if v.Mode != turn.ModeAgent {
		t.Fatalf("mode = %s", v.Mode)
	}
	if v.Phase != turn.AwaitingInput || v.Turn != xiangqi.Black {
		t.Fatalf("missing agent should hand red's turn over: phase=%s turn=%s", v.Phase, v.Turn)
	}
}

func TestThinkDelayOutsideAgentTimeout(t *testing.T) {
	ag := agent.Func(func(_ context.Context, b xiangqi.Board, c xiangqi.Color) (*xiangqi.Move, error) {
		return &xiangqi.Move{From: at(7, 0), To: at(6, 2)}, nil
	})
	cfg := turn.DefaultConfig()
	cfg.Mode = turn.ModeAgent
	cfg.ThinkDelay = 100 * time.Millisecond
	a := New(cfg, ag, nil)
	a.AgentTimeout = 30 * time.Millisecond
	defer a.Close()

	a.click(at(7, 7))
	a.click(at(4, 7))
	select {
	case r := <-a.replies:
		a.deliver(r)
	case <-time.After(2 * time.Second):
		t.Fatalf("no agent reply")
	}
	if v := a.View(); len(v.History) != 2 {
		t.Fatalf("agent move lost to the think delay: history=%v status=%q", v.History, v.Status)
	}
}
