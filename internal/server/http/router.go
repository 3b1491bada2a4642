package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"xiangqi/internal/server/session"
)

// Server 把 /api/* 与静态页面挂到同一个 mux 上，并负责监听和优雅退出。
type Server struct {
	games  *session.Manager
	webDir string

	mu  sync.Mutex
	srv *http.Server
}

func NewServer(games *session.Manager, webDir string) *Server {
	return &Server{games: games, webDir: webDir}
}

// Routes 返回完整路由：/api/ → Handler，/web/ → 静态文件，/healthz。
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(s.games))
	RegisterStaticRoutes(mux, s.webDir)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe 阻塞直到 Close 被调用或监听失败
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.srv = nil
		s.mu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
