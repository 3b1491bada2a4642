package game

import (
	"errors"
	"fmt"

	"xiangqi/internal/xiangqi"
)

var ErrTerminal = errors.New("game is over")

// State 是一局棋的权威状态。只有拥有者（回合调度器）可以修改，其它组件拿 Snapshot。
type State struct {
	Board    xiangqi.Board
	Turn     xiangqi.Color
	Selected *xiangqi.Coord
	LastMove *xiangqi.Move
	Winner   xiangqi.Color
	History  []string
}

func NewState() *State {
	return &State{
		Board:  xiangqi.NewInitialBoard(),
		Turn:   xiangqi.Red, // 红先
		Winner: xiangqi.NoColor,
	}
}

// NewStateFrom 从任意局面开始（残局、测试）
func NewStateFrom(b xiangqi.Board, turn xiangqi.Color) *State {
	return &State{
		Board:  b.Clone(),
		Turn:   turn,
		Winner: xiangqi.NoColor,
	}
}

func (s *State) HasWinner() bool {
	return s.Winner != xiangqi.NoColor
}

// ExecuteMove 执行一步棋。调用方必须先用 xiangqi.IsLegal 校验，这里不再重复检查规则。
func (s *State) ExecuteMove(from, to xiangqi.Coord) (Event, error) {
	if s.HasWinner() {
		return Event{}, ErrTerminal
	}
	pc, ok := s.Board.At(from)
	if !ok {
		return Event{}, fmt.Errorf("execute move: %w at %s", xiangqi.ErrNoPiece, from)
	}

	mover := s.Turn
	mv := xiangqi.Move{From: from, To: to}
	ev := Event{Piece: pc, Move: mv, Kind: KindMove, Winner: xiangqi.NoColor}

	if target, ok := s.Board.At(to); ok {
		captured := target
		ev.Captured = &captured
		ev.Kind = KindCapture
		if target.Type == xiangqi.PieceGeneral {
			ev.Kind = KindWin
			ev.Winner = mover
		}
	}

	nb, err := s.Board.WithMove(from, to)
	if err != nil {
		return Event{}, err
	}

	s.Board = nb
	s.Turn = mover.Opponent()
	s.Selected = nil
	s.LastMove = &mv
	s.Winner = ev.Winner
	ev.Record = xiangqi.HistoryRecord(pc, mv)
	s.History = append(s.History, ev.Record)
	return ev, nil
}

// Select 记录界面选中的格子（不是规则概念）
func (s *State) Select(c xiangqi.Coord) {
	s.Selected = &c
}

func (s *State) ClearSelection() {
	s.Selected = nil
}

// ForfeitTurn 不走子直接交出走棋权（外部代理无法给出合法着法时使用）
func (s *State) ForfeitTurn() error {
	if s.HasWinner() {
		return ErrTerminal
	}
	s.Turn = s.Turn.Opponent()
	s.Selected = nil
	return nil
}

// View 是 State 的只读深拷贝
type View struct {
	Board    xiangqi.Board
	Turn     xiangqi.Color
	Selected *xiangqi.Coord
	LastMove *xiangqi.Move
	Winner   xiangqi.Color
	History  []string
}

func (s *State) Snapshot() View {
	v := View{
		Board:   s.Board.Clone(),
		Turn:    s.Turn,
		Winner:  s.Winner,
		History: append([]string(nil), s.History...),
	}
	if s.Selected != nil {
		sel := *s.Selected
		v.Selected = &sel
	}
	if s.LastMove != nil {
		lm := *s.LastMove
		v.LastMove = &lm
	}
	return v
}
