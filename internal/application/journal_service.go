package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
)

// JournalService records and lists the event, comm and activity feeds.
type JournalService struct {
	events     ports.EventStore
	comms      ports.CommStore
	activities ports.ActivityStore
	clock      ports.Clock
	logger     *slog.Logger
}

func NewJournalService(
	events ports.EventStore,
	comms ports.CommStore,
	activities ports.ActivityStore,
	clock ports.Clock,
	logger *slog.Logger,
) *JournalService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &JournalService{
		events:     events,
		comms:      comms,
		activities: activities,
		clock:      clock,
		logger:     logger,
	}
}

func (s *JournalService) LogEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.Agent = domain.AgentID(strings.TrimSpace(string(event.Agent)))
	event.Type = domain.EventType(strings.TrimSpace(string(event.Type)))
	if err := event.Validate(); err != nil {
		return domain.Event{}, err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.clock.Now()
	}

	stored, err := s.events.Append(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("log event: %w", err)
	}
	return stored, nil
}

func (s *JournalService) ListEvents(ctx context.Context, agent domain.AgentID, limit int) ([]domain.Event, error) {
	events, err := s.events.List(ctx, ports.EventQuery{
		Agent: domain.AgentID(strings.TrimSpace(string(agent))),
		Limit: clampLimit(limit, DefaultEventLimit, MaxListLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListTasks returns the task history derived from task lifecycle events.
func (s *JournalService) ListTasks(ctx context.Context, limit int) ([]domain.Task, error) {
	events, err := s.events.List(ctx, ports.EventQuery{
		Types: domain.TaskEventTypes,
		Limit: clampLimit(limit, DefaultTaskLimit, MaxListLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(events))
	for _, event := range events {
		tasks = append(tasks, domain.TaskFromEvent(event))
	}
	return tasks, nil
}

// RequestKill records a kill request for agent. Nothing is stopped here; the
// agent runtime is expected to watch for the event.
func (s *JournalService) RequestKill(ctx context.Context, cmd KillCommand) (domain.Event, error) {
	agent := domain.AgentID(strings.TrimSpace(string(cmd.Agent)))
	if agent == "" {
		return domain.Event{}, domain.ErrAgentRequired
	}

	stored, err := s.events.Append(ctx, domain.KillRequestEvent(agent, cmd.Reason, s.clock.Now()))
	if err != nil {
		return domain.Event{}, fmt.Errorf("record kill request: %w", err)
	}

	s.logger.Warn("kill requested", "agent", agent, "reason", cmd.Reason)
	return stored, nil
}

func (s *JournalService) LogComms(ctx context.Context, comms []domain.Comm) ([]domain.Comm, error) {
	if len(comms) == 0 {
		return nil, fmt.Errorf("%w: at least one comm is required", domain.ErrInvalidComm)
	}

	now := s.clock.Now()
	prepared := make([]domain.Comm, 0, len(comms))
	for _, comm := range comms {
		comm.From = domain.AgentID(strings.TrimSpace(string(comm.From)))
		comm.To = domain.AgentID(strings.TrimSpace(string(comm.To)))
		if err := comm.Validate(); err != nil {
			return nil, err
		}
		if comm.CreatedAt.IsZero() {
			comm.CreatedAt = now
		}
		prepared = append(prepared, comm)
	}

	stored, err := s.comms.Append(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("log comms: %w", err)
	}
	return stored, nil
}

func (s *JournalService) ListComms(ctx context.Context, limit int) ([]domain.Comm, error) {
	comms, err := s.comms.List(ctx, clampLimit(limit, DefaultCommLimit, MaxListLimit))
	if err != nil {
		return nil, fmt.Errorf("list comms: %w", err)
	}
	return comms, nil
}

func (s *JournalService) LogActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	activity.Agent = domain.AgentID(strings.TrimSpace(string(activity.Agent)))
	activity.Type = domain.ActivityType(strings.TrimSpace(string(activity.Type)))
	activity.Summary = strings.TrimSpace(activity.Summary)
	if err := activity.Validate(); err != nil {
		return domain.Activity{}, err
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = s.clock.Now()
	}

	stored, err := s.activities.Append(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("log activity: %w", err)
	}
	return stored, nil
}

func (s *JournalService) ListActivities(ctx context.Context, query ports.ActivityQuery) ([]domain.Activity, error) {
	query.Agent = domain.AgentID(strings.TrimSpace(string(query.Agent)))
	query.Type = domain.ActivityType(strings.TrimSpace(string(query.Type)))
	query.Limit = clampLimit(query.Limit, DefaultActivityLimit, MaxActivityLimit)
	if query.Offset < 0 {
		query.Offset = 0
	}

	activities, err := s.activities.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
