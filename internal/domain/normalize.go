package domain

import (
	"strings"
	"time"
)

const (
	DefaultRecencyWindow       = 10 * time.Minute
	DefaultContextTokens int64 = 1_000_000
)

type NormalizerConfig struct {
	RecencyWindow        time.Duration
	DefaultContextTokens int64
}

func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		RecencyWindow:        DefaultRecencyWindow,
		DefaultContextTokens: DefaultContextTokens,
	}
}

// Normalizer turns raw session records into agent snapshots.
type Normalizer struct {
	roster Roster
	cfg    NormalizerConfig
}

func NewNormalizer(roster Roster, cfg NormalizerConfig) Normalizer {
	return Normalizer{roster: roster, cfg: cfg}
}

func (n Normalizer) Config() NormalizerConfig {
	return n.cfg
}

// Normalize derives the snapshot for record at now. The boolean is false when
// the record has no key or its key does not belong to a rostered agent.
func (n Normalizer) Normalize(record SessionRecord, now time.Time) (AgentSnapshot, bool) {
	key := strings.TrimSpace(record.Key)
	if key == "" {
		return AgentSnapshot{}, false
	}

	agent, ok := n.roster.Resolve(key)
	if !ok {
		return AgentSnapshot{}, false
	}

	snapshot := AgentSnapshot{
		Agent:         agent,
		SessionKey:    key,
		Status:        DeriveStatus(record.UpdatedAt, record.AbortedLastRun, now, n.cfg.RecencyWindow),
		Model:         strings.TrimSpace(record.Model),
		TotalTokens:   record.TotalTokens,
		ContextTokens: record.ContextTokens,
		InputTokens:   record.InputTokens,
		OutputTokens:  record.OutputTokens,
		LastChannel:   strings.TrimSpace(record.LastChannel),
		CurrentTask:   strings.TrimSpace(record.CurrentTask),
		SnapshotAt:    now,
	}
	if !record.UpdatedAt.IsZero() {
		snapshot.LastMessageAt = record.UpdatedAt
	}

	return snapshot.WithDerivedContext(n.cfg.DefaultContextTokens), true
}

// DeriveStatus classifies a session by the age of its last activity.
// Sessions older than window (or with no activity time at all) are idle;
// recent sessions are working when the last run explicitly did not abort and
// online otherwise.
func DeriveStatus(updatedAt time.Time, abortedLastRun *bool, now time.Time, window time.Duration) AgentStatus {
	if !isRecent(updatedAt, now, window) {
		return StatusIdle
	}

	if abortedLastRun != nil && !*abortedLastRun {
		return StatusWorking
	}

	return StatusOnline
}

func isRecent(updatedAt, now time.Time, window time.Duration) bool {
	if updatedAt.IsZero() {
		return false
	}

	return now.Sub(updatedAt) <= window
}
