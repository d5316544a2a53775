package domain

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventContextAlert EventType = "context_alert"
	EventKillRequest  EventType = "kill_request"
	EventTaskStart    EventType = "task_start"
	EventTaskComplete EventType = "task_complete"
	EventTaskError    EventType = "task_error"
	EventSnapshot     EventType = "snapshot"
)

// TaskEventTypes lists the event types that make up the task history.
var TaskEventTypes = []EventType{EventTaskStart, EventTaskComplete, EventTaskError, EventSnapshot}

type Event struct {
	ID         string
	Agent      AgentID
	Type       EventType
	Summary    string
	TokensUsed int64
	Cost       float64
	Metadata   map[string]any
	CreatedAt  time.Time
}

func (e Event) Validate() error {
	if strings.TrimSpace(string(e.Agent)) == "" {
		return fmt.Errorf("%w: agent is required", ErrInvalidEvent)
	}
	if strings.TrimSpace(string(e.Type)) == "" {
		return fmt.Errorf("%w: event type is required", ErrInvalidEvent)
	}
	return nil
}

type TaskStatus string

const (
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskError     TaskStatus = "error"
)

const untitledTask = "Task without description"

type Task struct {
	ID          string
	Agent       AgentID
	Summary     string
	Status      TaskStatus
	StartedAt   time.Time
	CompletedAt time.Time
	TokensUsed  int64
}

func TaskFromEvent(e Event) Task {
	task := Task{
		ID:         e.ID,
		Agent:      e.Agent,
		Summary:    strings.TrimSpace(e.Summary),
		StartedAt:  e.CreatedAt,
		TokensUsed: e.TokensUsed,
	}
	if task.Summary == "" {
		task.Summary = untitledTask
	}
	if task.TokensUsed < 0 {
		task.TokensUsed = 0
	}

	switch e.Type {
	case EventTaskStart:
		task.Status = TaskRunning
	case EventTaskError:
		task.Status = TaskError
	default:
		task.Status = TaskCompleted
	}
	if task.Status != TaskRunning {
		task.CompletedAt = e.CreatedAt
	}

	return task
}

func KillRequestEvent(agent AgentID, reason string, requestedAt time.Time) Event {
	reason = strings.TrimSpace(reason)
	label := reason
	if label == "" {
		label = "no reason given"
	}

	metadata := map[string]any{"requestedAt": requestedAt.UTC().Format(time.RFC3339)}
	if reason != "" {
		metadata["reason"] = reason
	}

	return Event{
		Agent:     agent,
		Type:      EventKillRequest,
		Summary:   fmt.Sprintf("Kill switch triggered: %s", label),
		Metadata:  metadata,
		CreatedAt: requestedAt,
	}
}
