package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	"github.com/google/uuid"
)

type SnapshotRepository struct {
	db *sql.DB
}

var _ ports.SnapshotStore = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Append(ctx context.Context, snapshot domain.AgentSnapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO agent_snapshots
		(id, agent, session_key, status, model, total_tokens, context_tokens, context_percent,
		 input_tokens, output_tokens, last_message_at, last_channel, current_task, snapshot_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		string(snapshot.Agent),
		snapshot.SessionKey,
		string(snapshot.Status),
		snapshot.Model,
		snapshot.TotalTokens,
		snapshot.ContextTokens,
		snapshot.ContextPercent,
		snapshot.InputTokens,
		snapshot.OutputTokens,
		toUnixMilli(snapshot.LastMessageAt),
		snapshot.LastChannel,
		snapshot.CurrentTask,
		toUnixMilli(snapshot.SnapshotAt),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot for %s: %w", snapshot.Agent, err)
	}
	return nil
}

// Latest orders by snapshot time and falls back to insertion order for
// snapshots taken at the same instant.
func (r *SnapshotRepository) Latest(ctx context.Context, agent domain.AgentID) (domain.AgentSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT agent, session_key, status, model, total_tokens, context_tokens, context_percent,
		       input_tokens, output_tokens, last_message_at, last_channel, current_task, snapshot_at
		FROM agent_snapshots
		WHERE agent = ?
		ORDER BY snapshot_at DESC, seq DESC
		LIMIT 1`, string(agent))

	var (
		snapshot      domain.AgentSnapshot
		agentID       string
		status        string
		lastMessageAt int64
		snapshotAt    int64
	)
	err := row.Scan(
		&agentID,
		&snapshot.SessionKey,
		&status,
		&snapshot.Model,
		&snapshot.TotalTokens,
		&snapshot.ContextTokens,
		&snapshot.ContextPercent,
		&snapshot.InputTokens,
		&snapshot.OutputTokens,
		&lastMessageAt,
		&snapshot.LastChannel,
		&snapshot.CurrentTask,
		&snapshotAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AgentSnapshot{}, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return domain.AgentSnapshot{}, fmt.Errorf("query latest snapshot for %s: %w", agent, err)
	}

	snapshot.Agent = domain.AgentID(agentID)
	snapshot.Status = domain.AgentStatus(status)
	snapshot.LastMessageAt = fromUnixMilli(lastMessageAt)
	snapshot.SnapshotAt = fromUnixMilli(snapshotAt)
	return snapshot, nil
}
