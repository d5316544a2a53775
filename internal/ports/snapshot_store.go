package ports

import (
	"context"

	"github.com/bnema/mission-control/internal/domain"
)

// SnapshotStore is an append-only log of agent snapshots.
type SnapshotStore interface {
	Append(ctx context.Context, snapshot domain.AgentSnapshot) error
	// Latest returns the most recent snapshot for agent, or
	// domain.ErrSnapshotNotFound.
	Latest(ctx context.Context, agent domain.AgentID) (domain.AgentSnapshot, error)
}
