package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	"github.com/google/uuid"
)

type CommRepository struct {
	db *sql.DB
}

var _ ports.CommStore = (*CommRepository)(nil)

func NewCommRepository(db *sql.DB) *CommRepository {
	return &CommRepository{db: db}
}

// Append writes all comms in one transaction.
func (r *CommRepository) Append(ctx context.Context, comms []domain.Comm) ([]domain.Comm, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin comm insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO agent_comms (id, from_agent, to_agent, message, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare comm insert: %w", err)
	}
	defer stmt.Close()

	stored := make([]domain.Comm, 0, len(comms))
	for _, comm := range comms {
		if comm.ID == "" {
			comm.ID = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, comm.ID, string(comm.From), string(comm.To), comm.Message, toUnixMilli(comm.CreatedAt)); err != nil {
			return nil, fmt.Errorf("insert comm %s -> %s: %w", comm.From, comm.To, err)
		}
		stored = append(stored, comm)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit comms: %w", err)
	}
	return stored, nil
}

func (r *CommRepository) List(ctx context.Context, limit int) ([]domain.Comm, error) {
	stmt := "SELECT id, from_agent, to_agent, message, created_at FROM agent_comms ORDER BY created_at DESC, seq DESC"
	var args []any
	if limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query comms: %w", err)
	}
	defer rows.Close()

	comms := []domain.Comm{}
	for rows.Next() {
		var (
			comm      domain.Comm
			from, to  string
			createdAt int64
		)
		if err := rows.Scan(&comm.ID, &from, &to, &comm.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan comm: %w", err)
		}
		comm.From = domain.AgentID(from)
		comm.To = domain.AgentID(to)
		comm.CreatedAt = fromUnixMilli(createdAt)
		comms = append(comms, comm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comms: %w", err)
	}

	return comms, nil
}
