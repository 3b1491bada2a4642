package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"xiangqi/internal/turn"
)

var ErrNotFound = errors.New("game not found")

type Options struct {
	Turn                turn.Config
	AgentTimeout        time.Duration
	MaxConcurrentAgents int64
	// IdleTTL 对局超过这么久没有操作就被回收；<= 0 表示不回收
	IdleTTL time.Duration

	// Agent / Feedback build the collaborators of one game; either may be nil.
	Agent    func(gameID string) turn.Agent
	Feedback func(gameID string) turn.Feedback
}

func DefaultOptions() Options {
	return Options{
		Turn:                turn.DefaultConfig(),
		AgentTimeout:        30 * time.Second,
		MaxConcurrentAgents: 4,
		IdleTTL:             2 * time.Hour,
	}
}

// Manager keeps the in-memory games of this process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	opts   Options
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	janitorDone chan struct{}
}

func NewManager(opts Options) *Manager {
	if opts.MaxConcurrentAgents <= 0 {
		opts.MaxConcurrentAgents = 1
	}
	if opts.AgentTimeout <= 0 {
		opts.AgentTimeout = DefaultOptions().AgentTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		sessions: make(map[string]*Session),
		opts:     opts,
		sem:      semaphore.NewWeighted(opts.MaxConcurrentAgents),
		ctx:      ctx,
		cancel:   cancel,
	}
	if opts.IdleTTL > 0 {
		m.janitorDone = make(chan struct{})
		go m.janitor()
	}
	return m
}

func (m *Manager) Options() Options { return m.opts }

// NewGame starts a game with cfg; if the agent moves first its request is dispatched immediately.
func (m *Manager) NewGame(cfg turn.Config) *Session {
	id := uuid.NewString()
	s := &Session{
		ID:        id,
		UpdatedAt: time.Now(),
		m:         m,
	}
	if m.opts.Agent != nil {
		s.agent = m.opts.Agent(id)
	}
	var fb turn.Feedback
	if m.opts.Feedback != nil {
		fb = m.opts.Feedback(id)
	}
	s.orch = turn.New(cfg, fb)
	req := s.orch.Pending()

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	s.dispatch(req)
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Wait blocks until every outstanding agent call has been delivered.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// EvictIdle removes games untouched since before cutoff. Games waiting on
// the agent are kept. Returns the number removed.
func (m *Manager) EvictIdle(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *Manager) janitor() {
	defer close(m.janitorDone)
	every := m.opts.IdleTTL / 4
	if every > time.Minute {
		every = time.Minute
	}
	if every <= 0 {
		every = time.Millisecond
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-t.C:
			if n := m.EvictIdle(now.Add(-m.opts.IdleTTL)); n > 0 {
				log.Printf("evicted %d idle games, %d left", n, m.Len())
			}
		}
	}
}

// Close cancels outstanding agent calls and waits for them to finish.
func (m *Manager) Close() {
	m.cancel()
	if m.janitorDone != nil {
		<-m.janitorDone
	}
	m.wg.Wait()
}
