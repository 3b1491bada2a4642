package turn

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

var ErrStaleReply = errors.New("stale agent reply")

type Phase int

const (
	AwaitingInput Phase = iota
	AwaitingAgent
	Terminal
)

func (p Phase) String() string {
	switch p {
	case AwaitingAgent:
		return "awaiting_agent"
	case Terminal:
		return "terminal"
	}
	return "awaiting_input"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "awaiting_input":
		*p = AwaitingInput
	case "awaiting_agent":
		*p = AwaitingAgent
	case "terminal":
		*p = Terminal
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// Orchestrator 驱动人对人、人对代理的回合流转。
// 不是并发安全的：所有事件必须由同一个拥有者串行送入。
type Orchestrator struct {
	cfg      Config
	feedback Feedback

	state   *game.State
	phase   Phase
	gen     string
	ply     int
	attempt int
	pending *AgentRequest
	status  string
}

func New(cfg Config, fb Feedback) *Orchestrator {
	o := &Orchestrator{cfg: cfg.normalized(), feedback: fb}
	o.reset(game.NewState())
	return o
}

// NewFrom 从给定局面开局
func NewFrom(cfg Config, fb Feedback, b xiangqi.Board, turn xiangqi.Color) *Orchestrator {
	o := &Orchestrator{cfg: cfg.normalized(), feedback: fb}
	o.reset(game.NewStateFrom(b, turn))
	return o
}

func (o *Orchestrator) reset(s *game.State) {
	o.state = s
	o.gen = uuid.NewString()
	o.ply = 0
	o.attempt = 0
	o.pending = nil
	o.status = fmt.Sprintf("Game started. %s to move.", sideName(s.Turn))
	o.advance()
	if o.phase == AwaitingAgent {
		o.status = "Agent is thinking..."
	}
}

// Restart 重新开局；返回非 nil 表示代理先走，需要驱动方发出请求。
func (o *Orchestrator) Restart() *AgentRequest {
	o.reset(game.NewState())
	return o.Pending()
}

// Reconfigure 切换模式等配置并重新开局
func (o *Orchestrator) Reconfigure(cfg Config) *AgentRequest {
	o.cfg = cfg.normalized()
	return o.Restart()
}

func (o *Orchestrator) Config() Config     { return o.cfg }
func (o *Orchestrator) Phase() Phase       { return o.phase }
func (o *Orchestrator) Status() string     { return o.status }
func (o *Orchestrator) Generation() string { return o.gen }

func (o *Orchestrator) Pending() *AgentRequest {
	if o.pending == nil {
		return nil
	}
	req := *o.pending
	return &req
}

// SelectOrMove 处理点击 (x,y)：选子、换选或走子。
// 等待代理或对局结束时忽略输入。返回非 nil 表示轮到代理，需要驱动方发出请求。
func (o *Orchestrator) SelectOrMove(c xiangqi.Coord) *AgentRequest {
	if o.phase != AwaitingInput || !xiangqi.InBounds(c) {
		return nil
	}
	s := o.state

	if pc, ok := s.Board.At(c); ok && pc.Color == s.Turn {
		s.Select(c)
		return nil
	}
	if s.Selected == nil {
		return nil
	}

	from := *s.Selected
	if !xiangqi.IsLegal(s.Board, from, c, s.Turn) {
		s.ClearSelection()
		return nil
	}
	o.apply(from, c)
	return o.Pending()
}

// Deliver 接收代理的回复。过期回复返回 ErrStaleReply，调用方直接丢弃即可。
// 返回非 nil 请求表示需要再次询问代理（重新询问策略）。
func (o *Orchestrator) Deliver(r AgentReply) (*AgentRequest, error) {
	if o.phase != AwaitingAgent || o.pending == nil || r.Token != o.pending.Token {
		return nil, ErrStaleReply
	}
	req := *o.pending
	o.pending = nil

	switch {
	case r.Err != nil || r.Move == nil:
		if r.Err != nil {
			log.Printf("agent (%s) failed: %v", req.Color, r.Err)
		}
		o.forfeit("Agent failed to generate a move.")

	case !xiangqi.IsLegal(o.state.Board, r.Move.From, r.Move.To, req.Color):
		log.Printf("agent (%s) proposed illegal move %s", req.Color, r.Move)
		if o.cfg.IllegalPolicy == PolicyReprompt && o.attempt < o.cfg.MaxReprompts {
			o.attempt++
			o.status = "Agent attempted an invalid move. Asking again."
			o.pending = o.newRequest()
			break
		}
		o.forfeit("Agent attempted an invalid move. Skipping its turn.")

	default:
		o.apply(r.Move.From, r.Move.To)
	}
	return o.Pending(), nil
}

func (o *Orchestrator) apply(from, to xiangqi.Coord) {
	ev, err := o.state.ExecuteMove(from, to)
	if err != nil {
		// 走子前已经过 IsLegal，这里出错说明调用方有 bug
		log.Printf("execute move %s -> %s: %v", from, to, err)
		o.state.ClearSelection()
		o.status = "Internal error: move was not applied."
		return
	}
	o.ply++
	o.attempt = 0
	o.notify(ev)

	if ev.Winner != xiangqi.NoColor {
		o.status = fmt.Sprintf("%s wins!", strings.ToUpper(ev.Winner.String()))
	} else {
		o.status = fmt.Sprintf("%s's turn", sideName(o.state.Turn))
	}
	o.advance()
	if o.phase == AwaitingAgent {
		o.status = "Agent is thinking..."
	}
}

// forfeit 代理这一手作废，走棋权交回另一方
func (o *Orchestrator) forfeit(msg string) {
	if err := o.state.ForfeitTurn(); err != nil {
		log.Printf("forfeit turn: %v", err)
	}
	o.ply++
	o.attempt = 0
	o.status = msg
	o.advance()
}

func (o *Orchestrator) advance() {
	switch {
	case o.state.HasWinner():
		o.phase = Terminal
		o.pending = nil
	case o.cfg.Mode == ModeAgent && o.state.Turn == o.cfg.AgentColor:
		o.phase = AwaitingAgent
		o.pending = o.newRequest()
	default:
		o.phase = AwaitingInput
		o.pending = nil
	}
}

func (o *Orchestrator) newRequest() *AgentRequest {
	return &AgentRequest{
		Token: Token{Generation: o.gen, Ply: o.ply, Attempt: o.attempt},
		Board: o.state.Board.Clone(),
		Color: o.state.Turn,
	}
}

func (o *Orchestrator) notify(ev game.Event) {
	if o.feedback == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("feedback failed for %s: %v", ev.Record, r)
		}
	}()
	o.feedback.Notify(ev)
}

// View 给展示层的只读视图
type View struct {
	game.View
	Phase      Phase
	Status     string
	Mode       Mode
	AgentColor xiangqi.Color
	Generation string
	// Targets 当前选中棋子的可走落点
	Targets []xiangqi.Coord
}

func (o *Orchestrator) View() View {
	v := View{
		View:       o.state.Snapshot(),
		Phase:      o.phase,
		Status:     o.status,
		Mode:       o.cfg.Mode,
		AgentColor: o.cfg.AgentColor,
		Generation: o.gen,
	}
	if v.Selected != nil && o.phase == AwaitingInput {
		v.Targets = xiangqi.LegalTargets(o.state.Board, *v.Selected, o.state.Turn)
	}
	return v
}

func sideName(c xiangqi.Color) string {
	if c == xiangqi.Black {
		return "Black"
	}
	return "Red"
}
