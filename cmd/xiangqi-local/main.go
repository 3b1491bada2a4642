package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/agent"
	"xiangqi/internal/feedback"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/server/session"
	"xiangqi/internal/turn"
	"xiangqi/internal/xiangqi"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run 返回进程退出码；所有 defer 在 os.Exit 之前执行完
func run(args []string) int {
	fs := flag.NewFlagSet("xiangqi-local", flag.ContinueOnError)
	addr := fs.String("addr", ":2888", "listen address")
	webDir := fs.String("web", "./web", "directory with index.html / js / svg")
	agentURL := fs.String("agent-url", "", "move agent endpoint (empty: agent turns are forfeited)")
	agentTimeout := fs.Duration("agent-timeout", 30*time.Second, "upper bound for one agent request")
	agentSlots := fs.Int64("agent-concurrency", 4, "max agent requests in flight across all games")
	mode := fs.String("mode", "local", "default mode for new games: local | agent")
	agentColor := fs.String("agent-color", "black", "side played by the agent: red | black")
	policy := fs.String("illegal-policy", "skip", "on an illegal agent move: skip | reprompt")
	reprompts := fs.Int("max-reprompts", 2, "reprompts before skipping (reprompt policy)")
	thinkDelay := fs.Duration("think-delay", 500*time.Millisecond, "pause before each agent request")
	idleTTL := fs.Duration("idle-ttl", 2*time.Hour, "drop games untouched for this long (0 keeps them forever)")
	noBrowser := fs.Bool("no-browser", false, "do not open the default browser")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := turn.DefaultConfig()
	if err := cfg.Mode.UnmarshalText([]byte(*mode)); err != nil {
		log.Println(err)
		return 2
	}
	if err := cfg.AgentColor.UnmarshalText([]byte(*agentColor)); err != nil {
		log.Println(err)
		return 2
	}
	p, err := turn.ParsePolicy(*policy)
	if err != nil {
		log.Println(err)
		return 2
	}
	cfg.IllegalPolicy = p
	cfg.MaxReprompts = *reprompts
	cfg.ThinkDelay = *thinkDelay
	if cfg.AgentColor == xiangqi.NoColor {
		cfg.AgentColor = xiangqi.Black
	}

	opts := session.DefaultOptions()
	opts.Turn = cfg
	opts.AgentTimeout = *agentTimeout
	opts.MaxConcurrentAgents = *agentSlots
	opts.IdleTTL = *idleTTL
	if *agentURL != "" {
		log.Printf("agent endpoint %s", *agentURL)
		opts.Agent = func(id string) turn.Agent {
			r := agent.NewRemote(*agentURL, *agentTimeout)
			r.GameID = id
			return r
		}
	}
	opts.Feedback = func(id string) turn.Feedback {
		return feedback.Log{Prefix: "[" + id[:8] + "] "}
	}

	games := session.NewManager(opts)
	defer games.Close()
	srv := httpserver.NewServer(games, *webDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("serving static from %s", *webDir)
		return srv.ListenAndServe(*addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Close(shutdownCtx)
	})

	if !*noBrowser {
		// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr + "/web/")
		}()
	}

	if err := g.Wait(); err != nil {
		log.Println(err)
		return 1
	}
	return 0
}
