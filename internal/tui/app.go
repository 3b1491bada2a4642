// Package tui is a termbox front end: one orchestrator driven by the
// keyboard and mouse, with agent replies fed back on the same loop.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nsf/termbox-go"

	"xiangqi/internal/feedback"
	"xiangqi/internal/game"
	"xiangqi/internal/turn"
	"xiangqi/internal/xiangqi"
)

type App struct {
	orch   *turn.Orchestrator
	agent  turn.Agent
	cursor xiangqi.Coord
	cue    string // 最近一步的播报，显示在状态栏

	// AgentTimeout 单次代理请求的上限
	AgentTimeout time.Duration
	Logger       *log.Logger

	replies chan turn.AgentReply
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(cfg turn.Config, a turn.Agent, fb turn.Feedback) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		agent:        a,
		cursor:       xiangqi.Coord{X: 4, Y: 9},
		AgentTimeout: 30 * time.Second,
		Logger:       log.Default(),
		replies:      make(chan turn.AgentReply, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
	fan := feedback.Multi{turn.FeedbackFunc(app.announce)}
	if fb != nil {
		fan = append(fan, fb)
	}
	app.orch = turn.New(cfg, fan)
	return app
}

func (a *App) announce(ev game.Event) {
	a.cue = fmt.Sprintf("[%s] %s", feedback.Cue(ev), ev.Notation())
}

func (a *App) View() turn.View { return a.orch.View() }

// Close 取消所有尚未返回的代理请求
func (a *App) Close() { a.cancel() }

// Run 占用终端直到用户退出或 ctx 结束
func (a *App) Run(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	defer a.cancel()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			select {
			case events <- ev:
			case <-a.ctx.Done():
				return
			}
			if ev.Type == termbox.EventInterrupt {
				return
			}
		}
	}()

	a.dispatch(a.orch.Pending())
	for {
		if err := a.draw(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			termbox.Interrupt()
			return ctx.Err()
		case r := <-a.replies:
			a.deliver(r)
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return ev.Err
			}
			if a.handle(ev) {
				termbox.Interrupt()
				return nil
			}
		}
	}
}

func (a *App) draw() error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	render(a.orch.View(), a.cursor, a.cue).flush()
	return termbox.Flush()
}

// handle 处理一个终端事件；返回 true 表示退出
func (a *App) handle(ev termbox.Event) bool {
	switch ev.Type {
	case termbox.EventMouse:
		if ev.Key != termbox.MouseLeft {
			return false
		}
		if c, ok := CellAt(ev.MouseX, ev.MouseY); ok {
			a.cursor = c
			a.click(c)
		}
	case termbox.EventKey:
		switch ev.Key {
		case termbox.KeyEsc, termbox.KeyCtrlC:
			return true
		case termbox.KeyArrowUp:
			a.moveCursor(0, -1)
		case termbox.KeyArrowDown:
			a.moveCursor(0, 1)
		case termbox.KeyArrowLeft:
			a.moveCursor(-1, 0)
		case termbox.KeyArrowRight:
			a.moveCursor(1, 0)
		case termbox.KeyEnter, termbox.KeySpace:
			a.click(a.cursor)
		}
		switch ev.Ch {
		case 'q':
			return true
		case 'r':
			a.dispatch(a.orch.Restart())
		case 'm':
			cfg := a.orch.Config()
			if cfg.Mode == turn.ModeAgent {
				cfg.Mode = turn.ModeLocal
			} else {
				cfg.Mode = turn.ModeAgent
			}
			a.dispatch(a.orch.Reconfigure(cfg))
		}
	}
	return false
}

func (a *App) moveCursor(dx, dy int) {
	c := xiangqi.Coord{X: a.cursor.X + dx, Y: a.cursor.Y + dy}
	if c.InBounds() {
		a.cursor = c
	}
}

func (a *App) click(c xiangqi.Coord) {
	a.dispatch(a.orch.SelectOrMove(c))
}

func (a *App) deliver(r turn.AgentReply) {
	next, err := a.orch.Deliver(r)
	if errors.Is(err, turn.ErrStaleReply) {
		a.Logger.Printf("discarded stale agent reply (ply %d)", r.Token.Ply)
		return
	}
	a.dispatch(next)
}

// dispatch 在后台询问代理，回复经 replies 回到事件循环
func (a *App) dispatch(req *turn.AgentRequest) {
	if req == nil {
		return
	}
	if a.agent == nil {
		a.deliver(turn.AgentReply{Token: req.Token, Err: errors.New("no agent configured")})
		return
	}
	delay := a.orch.Config().ThinkDelay
	go func(req turn.AgentRequest) {
		reply := turn.AgentReply{Token: req.Token}
		if err := turn.Pause(a.ctx, delay); err != nil {
			reply.Err = err
		} else {
			ctx, cancel := context.WithTimeout(a.ctx, a.AgentTimeout)
			reply = turn.Ask(ctx, a.agent, req)
			cancel()
		}
		select {
		case a.replies <- reply:
		case <-a.ctx.Done():
		}
	}(*req)
}
