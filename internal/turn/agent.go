package turn

import (
	"context"
	"fmt"
	"time"

	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

// Agent 外部走子建议服务。返回 nil 表示给不出着法。
// 返回的着法一律视为不可信输入，由 Orchestrator 重新校验。
type Agent interface {
	ProposeMove(ctx context.Context, b xiangqi.Board, toMove xiangqi.Color) (*xiangqi.Move, error)
}

// Feedback 走子后的音效/播报等旁路反馈，没有返回值，失败不影响对局。
type Feedback interface {
	Notify(ev game.Event)
}

type FeedbackFunc func(ev game.Event)

func (f FeedbackFunc) Notify(ev game.Event) { f(ev) }

// Token 标识一次代理请求；重开局或局面推进后旧的回复会因为 Token 不匹配被丢弃。
type Token struct {
	Generation string
	Ply        int
	Attempt    int
}

type AgentRequest struct {
	Token Token
	Board xiangqi.Board
	Color xiangqi.Color
}

type AgentReply struct {
	Token Token
	Move  *xiangqi.Move
	Err   error
}

// Pause 代理请求前的"思考"停顿，只影响体验；ctx 结束时提前返回 ctx.Err()。
// 驱动方先 Pause，再占并发名额、开始计时。
func Pause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Ask 向代理发出一次请求，阻塞直到返回。代理 panic 会转成错误。
func Ask(ctx context.Context, a Agent, req AgentRequest) (reply AgentReply) {
	reply.Token = req.Token
	defer func() {
		if r := recover(); r != nil {
			reply.Move = nil
			reply.Err = fmt.Errorf("agent panic: %v", r)
		}
	}()
	reply.Move, reply.Err = a.ProposeMove(ctx, req.Board.Clone(), req.Color)
	return reply
}
