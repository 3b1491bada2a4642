package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xiangqi/internal/agent"
	"xiangqi/internal/feedback"
	"xiangqi/internal/tui"
	"xiangqi/internal/turn"
)

func main() {
	os.Exit(run())
}

func run() int {
	agentURL := flag.String("agent-url", "", "move agent endpoint (empty: agent turns are forfeited)")
	agentTimeout := flag.Duration("agent-timeout", 30*time.Second, "upper bound for one agent request")
	mode := flag.String("mode", "local", "local | agent")
	agentColor := flag.String("agent-color", "black", "side played by the agent: red | black")
	policy := flag.String("illegal-policy", "skip", "on an illegal agent move: skip | reprompt")
	reprompts := flag.Int("max-reprompts", 2, "reprompts before skipping (reprompt policy)")
	thinkDelay := flag.Duration("think-delay", 500*time.Millisecond, "pause before each agent request")
	logPath := flag.String("log", "xiangqi-tui.log", "log file (the terminal belongs to the board); empty discards logs")
	flag.Parse()

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

	// termbox 占用终端，日志只能写文件
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Println(err)
			return 1
		}
		defer f.Close()
		out = f
	}
	log.SetOutput(out)

	var a turn.Agent
	if *agentURL != "" {
		a = agent.NewRemote(*agentURL, *agentTimeout)
	}

	app := tui.New(cfg, a, feedback.Log{})
	app.AgentTimeout = *agentTimeout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
		return 1
	}
	return 0
}
