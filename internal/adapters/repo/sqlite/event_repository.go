package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	"github.com/google/uuid"
)

type EventRepository struct {
	db *sql.DB
}

var _ ports.EventStore = (*EventRepository)(nil)

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Append(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	metadata, err := encodeMetadata(event.Metadata)
	if err != nil {
		return domain.Event{}, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO agent_events (id, agent, event_type, summary, tokens_used, cost, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		string(event.Agent),
		string(event.Type),
		event.Summary,
		event.TokensUsed,
		event.Cost,
		metadata,
		toUnixMilli(event.CreatedAt),
	)
	if err != nil {
		return domain.Event{}, fmt.Errorf("insert %s event for %s: %w", event.Type, event.Agent, err)
	}

	return event, nil
}

// List returns events newest first.
func (r *EventRepository) List(ctx context.Context, query ports.EventQuery) ([]domain.Event, error) {
	var (
		where []string
		args  []any
	)
	if query.Agent != "" {
		where = append(where, "agent = ?")
		args = append(args, string(query.Agent))
	}
	if len(query.Types) > 0 {
		placeholders := make([]string, 0, len(query.Types))
		for _, eventType := range query.Types {
			placeholders = append(placeholders, "?")
			args = append(args, string(eventType))
		}
		where = append(where, "event_type IN ("+strings.Join(placeholders, ", ")+")")
	}

	stmt := "SELECT id, agent, event_type, summary, tokens_used, cost, metadata, created_at FROM agent_events"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY created_at DESC, seq DESC"
	if query.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var (
			event     domain.Event
			agent     string
			eventType string
			metadata  string
			createdAt int64
		)
		if err := rows.Scan(&event.ID, &agent, &eventType, &event.Summary, &event.TokensUsed, &event.Cost, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		event.Agent = domain.AgentID(agent)
		event.Type = domain.EventType(eventType)
		event.CreatedAt = fromUnixMilli(createdAt)
		if event.Metadata, err = decodeMetadata(metadata); err != nil {
			return nil, fmt.Errorf("event %s: %w", event.ID, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

func encodeMetadata(metadata map[string]any) (string, error) {
	if len(metadata) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(data), nil
}

func decodeMetadata(raw string) (map[string]any, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var metadata map[string]any
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return metadata, nil
}
