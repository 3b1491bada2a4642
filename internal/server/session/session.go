package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"xiangqi/internal/turn"
	"xiangqi/internal/xiangqi"
)

// Session serializes all events of one game onto its orchestrator.
type Session struct {
	ID        string
	UpdatedAt time.Time // 最近一次操作或代理回复，空闲回收依据

	mu    sync.Mutex
	orch  *turn.Orchestrator
	agent turn.Agent
	m     *Manager
}

func (s *Session) View() turn.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch.View()
}

// Click is the "select-or-move at (x,y)" entry point.
func (s *Session) Click(c xiangqi.Coord) turn.View {
	s.mu.Lock()
	req := s.orch.SelectOrMove(c)
	s.UpdatedAt = time.Now()
	v := s.orch.View()
	s.mu.Unlock()

	s.dispatch(req)
	return v
}

func (s *Session) Restart() turn.View {
	s.mu.Lock()
	req := s.orch.Restart()
	s.UpdatedAt = time.Now()
	v := s.orch.View()
	s.mu.Unlock()

	s.dispatch(req)
	return v
}

func (s *Session) Reconfigure(cfg turn.Config) turn.View {
	s.mu.Lock()
	req := s.orch.Reconfigure(cfg)
	s.UpdatedAt = time.Now()
	v := s.orch.View()
	s.mu.Unlock()

	s.dispatch(req)
	return v
}

func (s *Session) dispatch(req *turn.AgentRequest) {
	if req == nil {
		return
	}
	s.m.wg.Add(1)
	go s.runAgent(*req)
}

func (s *Session) runAgent(req turn.AgentRequest) {
	defer s.m.wg.Done()

	reply := s.askAgent(req)

	s.mu.Lock()
	next, err := s.orch.Deliver(reply)
	s.UpdatedAt = time.Now()
	s.mu.Unlock()

	if errors.Is(err, turn.ErrStaleReply) {
		log.Printf("[%s] discarded stale agent reply (ply %d)", s.ID, req.Token.Ply)
		return
	}
	s.dispatch(next)
}

// askAgent 先停顿，再占用代理名额；超时只覆盖代理调用本身
func (s *Session) askAgent(req turn.AgentRequest) turn.AgentReply {
	if s.agent == nil {
		return turn.AgentReply{Token: req.Token, Err: errors.New("no agent configured")}
	}

	s.mu.Lock()
	delay := s.orch.Config().ThinkDelay
	s.mu.Unlock()
	if err := turn.Pause(s.m.ctx, delay); err != nil {
		return turn.AgentReply{Token: req.Token, Err: err}
	}

	if err := s.m.sem.Acquire(s.m.ctx, 1); err != nil {
		return turn.AgentReply{Token: req.Token, Err: fmt.Errorf("wait for agent slot: %w", err)}
	}
	defer s.m.sem.Release(1)

	ctx, cancel := context.WithTimeout(s.m.ctx, s.m.opts.AgentTimeout)
	defer cancel()
	return turn.Ask(ctx, s.agent, req)
}

func (s *Session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch.Phase() != turn.AwaitingAgent && s.UpdatedAt.Before(t)
}
