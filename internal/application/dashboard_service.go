package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
)

// DashboardService answers read queries over the stored snapshots and journal.
type DashboardService struct {
	roster     domain.Roster
	normalizer domain.Normalizer
	snapshots  ports.SnapshotStore
	events     ports.EventStore
	comms      ports.CommStore
	sessions   ports.SessionSource
	clock      ports.Clock
	logger     *slog.Logger
}

func NewDashboardService(
	roster domain.Roster,
	cfg domain.NormalizerConfig,
	snapshots ports.SnapshotStore,
	events ports.EventStore,
	comms ports.CommStore,
	sessions ports.SessionSource,
	clock ports.Clock,
	logger *slog.Logger,
) *DashboardService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &DashboardService{
		roster:     roster,
		normalizer: domain.NewNormalizer(roster, cfg),
		snapshots:  snapshots,
		events:     events,
		comms:      comms,
		sessions:   sessions,
		clock:      clock,
		logger:     logger,
	}
}

// CurrentSnapshots returns the latest snapshot of every rostered agent that
// has one.
func (s *DashboardService) CurrentSnapshots(ctx context.Context) (map[domain.AgentID]domain.AgentSnapshot, error) {
	defaultContext := s.normalizer.Config().DefaultContextTokens
	current := make(map[domain.AgentID]domain.AgentSnapshot, s.roster.Len())

	for _, id := range s.roster.Order() {
		snapshot, err := s.snapshots.Latest(ctx, id)
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load snapshot for %s: %w", id, err)
		}
		current[id] = snapshot.WithDerivedContext(defaultContext)
	}

	return current, nil
}

func (s *DashboardService) Summary(ctx context.Context) (domain.TeamSummary, error) {
	current, err := s.CurrentSnapshots(ctx)
	if err != nil {
		return domain.TeamSummary{}, err
	}

	return domain.Summarize(current, s.roster.Order()), nil
}

// Board lists every rostered agent in roster order with its current snapshot.
func (s *DashboardService) Board(ctx context.Context) ([]AgentCard, error) {
	current, err := s.CurrentSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	return BuildBoard(s.roster, current), nil
}

func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	current, err := s.CurrentSnapshots(ctx)
	if err != nil {
		return Overview{}, err
	}

	events, err := s.events.List(ctx, ports.EventQuery{Limit: DefaultEventLimit})
	if err != nil {
		return Overview{}, fmt.Errorf("list events: %w", err)
	}

	taskEvents, err := s.events.List(ctx, ports.EventQuery{Types: domain.TaskEventTypes, Limit: DefaultTaskLimit})
	if err != nil {
		return Overview{}, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]domain.Task, 0, len(taskEvents))
	for _, event := range taskEvents {
		tasks = append(tasks, domain.TaskFromEvent(event))
	}

	comms, err := s.comms.List(ctx, DefaultCommLimit)
	if err != nil {
		return Overview{}, fmt.Errorf("list comms: %w", err)
	}

	return Overview{
		Agents:  current,
		Board:   BuildBoard(s.roster, current),
		Events:  events,
		Tasks:   tasks,
		Comms:   comms,
		Summary: domain.Summarize(current, s.roster.Order()),
	}, nil
}

// Live fetches sessions from upstream and summarizes them without persisting.
func (s *DashboardService) Live(ctx context.Context) (LiveStatus, error) {
	records, err := fetchSessions(ctx, s.sessions)
	if err != nil {
		return LiveStatus{}, err
	}

	now := s.clock.Now()
	agents := make(map[domain.AgentID]domain.AgentSnapshot, s.roster.Len())
	for _, record := range records {
		snapshot, ok := s.normalizer.Normalize(record, now)
		if !ok {
			continue
		}
		agents[snapshot.Agent] = snapshot
	}

	return LiveStatus{
		Agents:    agents,
		Summary:   domain.Summarize(agents, s.roster.Order()),
		FetchedAt: now,
	}, nil
}

// StoreSnapshots persists snapshots produced by an external collector. Each
// command is validated against the roster before anything is written.
func (s *DashboardService) StoreSnapshots(ctx context.Context, commands []PushSnapshotCommand) (int, error) {
	if len(commands) == 0 {
		return 0, nil
	}

	now := s.clock.Now()
	defaultContext := s.normalizer.Config().DefaultContextTokens
	snapshots := make([]domain.AgentSnapshot, 0, len(commands))
	for _, cmd := range commands {
		snapshot, err := s.snapshotFromCommand(cmd, now)
		if err != nil {
			return 0, err
		}
		snapshots = append(snapshots, snapshot.WithDerivedContext(defaultContext))
	}

	for i, snapshot := range snapshots {
		if err := s.snapshots.Append(ctx, snapshot); err != nil {
			return i, fmt.Errorf("store snapshot for %s: %w", snapshot.Agent, err)
		}
	}

	s.logger.Info("stored pushed snapshots", "count", len(snapshots))
	return len(snapshots), nil
}

func (s *DashboardService) snapshotFromCommand(cmd PushSnapshotCommand, now time.Time) (domain.AgentSnapshot, error) {
	id := domain.AgentID(strings.TrimSpace(string(cmd.Agent)))
	if id == "" {
		return domain.AgentSnapshot{}, fmt.Errorf("%w: %w", domain.ErrInvalidBatch, domain.ErrAgentRequired)
	}
	agent, ok := s.roster.Lookup(id)
	if !ok {
		return domain.AgentSnapshot{}, fmt.Errorf("%w: %w: %s", domain.ErrInvalidBatch, domain.ErrUnknownAgent, id)
	}

	status := cmd.Status
	switch status {
	case domain.StatusWorking, domain.StatusOnline, domain.StatusIdle:
	case "":
		status = domain.StatusIdle
	default:
		return domain.AgentSnapshot{}, fmt.Errorf("%w: unsupported status %q for %s", domain.ErrInvalidBatch, status, id)
	}

	sessionKey := strings.TrimSpace(cmd.SessionKey)
	if sessionKey == "" {
		sessionKey = agent.SessionKey
	}

	return domain.AgentSnapshot{
		Agent:         id,
		SessionKey:    sessionKey,
		Status:        status,
		Model:         strings.TrimSpace(cmd.Model),
		TotalTokens:   cmd.TotalTokens,
		ContextTokens: cmd.ContextTokens,
		InputTokens:   cmd.InputTokens,
		OutputTokens:  cmd.OutputTokens,
		LastMessageAt: cmd.LastMessageAt,
		LastChannel:   strings.TrimSpace(cmd.LastChannel),
		CurrentTask:   strings.TrimSpace(cmd.CurrentTask),
		SnapshotAt:    now,
	}, nil
}

// BuildBoard lists every roster agent in order, marking agents without a
// snapshot as offline.
func BuildBoard(roster domain.Roster, current map[domain.AgentID]domain.AgentSnapshot) []AgentCard {
	cards := make([]AgentCard, 0, roster.Len())
	for _, agent := range roster.Agents() {
		card := AgentCard{Agent: agent, Status: domain.StatusOffline}
		if snapshot, ok := current[agent.ID]; ok {
			snapshot := snapshot
			card.Status = snapshot.Status
			card.Snapshot = &snapshot
		}
		cards = append(cards, card)
	}
	return cards
}
