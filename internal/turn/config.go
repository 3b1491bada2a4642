package turn

import (
	"fmt"
	"time"

	"xiangqi/internal/xiangqi"
)

type Mode int

const (
	ModeLocal Mode = iota // 人对人
	ModeAgent             // 人对外部代理
)

func (m Mode) String() string {
	if m == ModeAgent {
		return "agent"
	}
	return "local"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "local", "pvp", "":
		*m = ModeLocal
	case "agent", "ai":
		*m = ModeAgent
	default:
		return fmt.Errorf("unknown mode %q", b)
	}
	return nil
}

// IllegalAgentPolicy 外部代理给出非法着法时怎么办。这是产品策略，不是象棋规则。
type IllegalAgentPolicy int

const (
	// PolicySkipTurn 跳过代理这一手，把走棋权交回人类
	PolicySkipTurn IllegalAgentPolicy = iota
	// PolicyReprompt 重新询问代理，最多 MaxReprompts 次，之后按 PolicySkipTurn 处理
	PolicyReprompt
)

func (p IllegalAgentPolicy) String() string {
	if p == PolicyReprompt {
		return "reprompt"
	}
	return "skip"
}

func ParsePolicy(s string) (IllegalAgentPolicy, error) {
	switch s {
	case "skip", "":
		return PolicySkipTurn, nil
	case "reprompt":
		return PolicyReprompt, nil
	}
	return PolicySkipTurn, fmt.Errorf("unknown illegal-move policy %q", s)
}

type Config struct {
	Mode          Mode
	AgentColor    xiangqi.Color // 代理执哪一方，仅 ModeAgent 有效
	IllegalPolicy IllegalAgentPolicy
	MaxReprompts  int

	// ThinkDelay 驱动方在发出代理请求前等待的时间，只影响体验
	ThinkDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Mode:          ModeLocal,
		AgentColor:    xiangqi.Black,
		IllegalPolicy: PolicySkipTurn,
		MaxReprompts:  2,
		ThinkDelay:    500 * time.Millisecond,
	}
}

func (c Config) normalized() Config {
	if c.AgentColor != xiangqi.Red && c.AgentColor != xiangqi.Black {
		c.AgentColor = xiangqi.Black
	}
	if c.MaxReprompts < 0 {
		c.MaxReprompts = 0
	}
	return c
}
