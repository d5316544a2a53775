package domain

import (
	"math"
	"time"
)

type AgentStatus string

const (
	StatusWorking AgentStatus = "working"
	StatusOnline  AgentStatus = "online"
	StatusIdle    AgentStatus = "idle"
	// StatusOffline is never derived from telemetry. Presentation uses it for
	// agents without a current snapshot.
	StatusOffline AgentStatus = "offline"
)

func (s AgentStatus) Label() string {
	switch s {
	case StatusWorking:
		return "Working"
	case StatusOnline:
		return "Online"
	case StatusIdle:
		return "Idle"
	case StatusOffline:
		return "Offline"
	default:
		return string(s)
	}
}

type AgentSnapshot struct {
	Agent          AgentID
	SessionKey     string
	Status         AgentStatus
	Model          string
	TotalTokens    int64
	ContextTokens  int64
	ContextPercent float64
	InputTokens    int64
	OutputTokens   int64
	LastMessageAt  time.Time
	LastChannel    string
	CurrentTask    string
	SnapshotAt     time.Time
}

// WithDerivedContext recomputes ContextPercent from the token counts,
// substituting defaultContextTokens when the stored budget is not positive.
func (s AgentSnapshot) WithDerivedContext(defaultContextTokens int64) AgentSnapshot {
	s.TotalTokens = max(s.TotalTokens, 0)
	s.InputTokens = max(s.InputTokens, 0)
	s.OutputTokens = max(s.OutputTokens, 0)
	if s.ContextTokens <= 0 {
		s.ContextTokens = defaultContextTokens
	}
	s.ContextPercent = ContextPercent(s.TotalTokens, s.ContextTokens)
	return s
}

// ContextPercent returns totalTokens/contextTokens as a percentage rounded to
// one decimal. It is 0 whenever contextTokens is not positive.
func ContextPercent(totalTokens, contextTokens int64) float64 {
	if contextTokens <= 0 || totalTokens <= 0 {
		return 0
	}
	return RoundTenth(float64(totalTokens) / float64(contextTokens) * 100)
}

// RoundTenth rounds half away from zero to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
