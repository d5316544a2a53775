package application

import (
	"time"

	"github.com/bnema/mission-control/internal/domain"
)

type IngestResult struct {
	Accepted []domain.AgentSnapshot
	Alerts   []domain.AlertEvent
	// Dropped counts records without a rostered session key.
	Dropped int
}

type LiveStatus struct {
	Agents    map[domain.AgentID]domain.AgentSnapshot
	Summary   domain.TeamSummary
	FetchedAt time.Time
}

// AgentCard is one roster entry as shown on the board. Snapshot is nil and
// Status is offline when the agent has no current snapshot.
type AgentCard struct {
	Agent    domain.Agent
	Status   domain.AgentStatus
	Snapshot *domain.AgentSnapshot
}

type Overview struct {
	Agents  map[domain.AgentID]domain.AgentSnapshot
	Board   []AgentCard
	Events  []domain.Event
	Tasks   []domain.Task
	Comms   []domain.Comm
	Summary domain.TeamSummary
}
