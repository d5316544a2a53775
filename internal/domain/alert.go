package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const DefaultAlertThreshold = 80.0

type AlertPolicy string

const (
	// AlertEveryCycle alerts on every ingestion cycle the threshold holds.
	AlertEveryCycle AlertPolicy = "every_cycle"
	// AlertOnCrossing alerts only when the previous snapshot was below the
	// threshold.
	AlertOnCrossing AlertPolicy = "on_crossing"
)

func ParseAlertPolicy(raw string) (AlertPolicy, error) {
	switch AlertPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", AlertEveryCycle:
		return AlertEveryCycle, nil
	case AlertOnCrossing:
		return AlertOnCrossing, nil
	default:
		return "", fmt.Errorf("unsupported alert policy %q", raw)
	}
}

type AlertEvent struct {
	Agent          AgentID
	ContextPercent float64
	TotalTokens    int64
	ContextTokens  int64
	TriggeredAt    time.Time
}

func (a AlertEvent) Summary() string {
	return fmt.Sprintf("%s reached %.0f%% of context (%d/%d tokens)",
		a.Agent, math.Round(a.ContextPercent), a.TotalTokens, a.ContextTokens)
}

// Event converts the alert into the audit event that records it.
func (a AlertEvent) Event() Event {
	return Event{
		Agent:      a.Agent,
		Type:       EventContextAlert,
		Summary:    a.Summary(),
		TokensUsed: a.TotalTokens,
		CreatedAt:  a.TriggeredAt,
	}
}

type AlertEvaluator struct {
	Threshold float64
	Policy    AlertPolicy
}

func NewAlertEvaluator(threshold float64, policy AlertPolicy) AlertEvaluator {
	if policy == "" {
		policy = AlertEveryCycle
	}
	return AlertEvaluator{Threshold: threshold, Policy: policy}
}

// Evaluate reports whether snapshot crosses the threshold. previous is the
// agent's current snapshot before this cycle and is only consulted by
// AlertOnCrossing.
func (e AlertEvaluator) Evaluate(snapshot AgentSnapshot, previous *AgentSnapshot) (AlertEvent, bool) {
	if !e.Above(snapshot.ContextPercent) {
		return AlertEvent{}, false
	}

	if e.Policy == AlertOnCrossing && previous != nil && e.Above(previous.ContextPercent) {
		return AlertEvent{}, false
	}

	return AlertEvent{
		Agent:          snapshot.Agent,
		ContextPercent: snapshot.ContextPercent,
		TotalTokens:    snapshot.TotalTokens,
		ContextTokens:  snapshot.ContextTokens,
		TriggeredAt:    snapshot.SnapshotAt,
	}, true
}

func (e AlertEvaluator) Above(contextPercent float64) bool {
	return contextPercent >= e.Threshold
}

func (e AlertEvaluator) NeedsPrevious() bool {
	return e.Policy == AlertOnCrossing
}
