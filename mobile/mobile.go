package mobile

import (
	"log"
	"time"

	"xiangqi/internal/agent"
	"xiangqi/internal/feedback"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/server/session"
	"xiangqi/internal/turn"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// agentURL: move agent endpoint; empty means agent turns are forfeited
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, agentURL string, port string) {
	opts := session.DefaultOptions()
	if agentURL != "" {
		opts.Agent = func(id string) turn.Agent {
			r := agent.NewRemote(agentURL, 30*time.Second)
			r.GameID = id
			return r
		}
	}
	opts.Feedback = func(id string) turn.Feedback {
		return feedback.Log{Prefix: "[" + id[:8] + "] "}
	}

	srv := httpserver.NewServer(session.NewManager(opts), webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := srv.ListenAndServe("127.0.0.1:" + port); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
