package application

import (
	"time"

	"github.com/bnema/mission-control/internal/domain"
)

const (
	DefaultEventLimit    = 50
	DefaultTaskLimit     = 30
	DefaultCommLimit     = 30
	DefaultActivityLimit = 50
	MaxActivityLimit     = 100
	MaxListLimit         = 500
)

type IngestConfig struct {
	Normalizer     domain.NormalizerConfig
	AlertThreshold float64
	AlertPolicy    domain.AlertPolicy
}

func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		Normalizer:     domain.DefaultNormalizerConfig(),
		AlertThreshold: domain.DefaultAlertThreshold,
		AlertPolicy:    domain.AlertEveryCycle,
	}
}

// PushSnapshotCommand carries a snapshot derived by an external collector.
type PushSnapshotCommand struct {
	Agent         domain.AgentID
	SessionKey    string
	Status        domain.AgentStatus
	Model         string
	TotalTokens   int64
	ContextTokens int64
	InputTokens   int64
	OutputTokens  int64
	LastMessageAt time.Time
	LastChannel   string
	CurrentTask   string
}

type KillCommand struct {
	Agent  domain.AgentID
	Reason string
}
