package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	"github.com/google/uuid"
)

type ActivityRepository struct {
	db *sql.DB
}

var _ ports.ActivityStore = (*ActivityRepository)(nil)

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}

	metadata, err := encodeMetadata(activity.Metadata)
	if err != nil {
		return domain.Activity{}, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO agent_activities (id, agent, activity_type, summary, detail, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		activity.ID,
		string(activity.Agent),
		string(activity.Type),
		activity.Summary,
		activity.Detail,
		metadata,
		toUnixMilli(activity.CreatedAt),
	)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("insert %s activity for %s: %w", activity.Type, activity.Agent, err)
	}

	return activity, nil
}

func (r *ActivityRepository) List(ctx context.Context, query ports.ActivityQuery) ([]domain.Activity, error) {
	var (
		where []string
		args  []any
	)
	if query.Agent != "" {
		where = append(where, "agent = ?")
		args = append(args, string(query.Agent))
	}
	if query.Type != "" {
		where = append(where, "activity_type = ?")
		args = append(args, string(query.Type))
	}

	stmt := "SELECT id, agent, activity_type, summary, detail, metadata, created_at FROM agent_activities"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY created_at DESC, seq DESC LIMIT ? OFFSET ?"
	limit := query.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, max(query.Offset, 0))

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var (
			activity     domain.Activity
			agent        string
			activityType string
			metadata     string
			createdAt    int64
		)
		if err := rows.Scan(&activity.ID, &agent, &activityType, &activity.Summary, &activity.Detail, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}

		activity.Agent = domain.AgentID(agent)
		activity.Type = domain.ActivityType(activityType)
		activity.CreatedAt = fromUnixMilli(createdAt)
		if activity.Metadata, err = decodeMetadata(metadata); err != nil {
			return nil, fmt.Errorf("activity %s: %w", activity.ID, err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	return activities, nil
}
