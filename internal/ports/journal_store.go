package ports

import (
	"context"

	"github.com/bnema/mission-control/internal/domain"
)

type EventQuery struct {
	Agent domain.AgentID
	Types []domain.EventType
	Limit int
}

type EventStore interface {
	Append(ctx context.Context, event domain.Event) (domain.Event, error)
	List(ctx context.Context, query EventQuery) ([]domain.Event, error)
}

type CommStore interface {
	Append(ctx context.Context, comms []domain.Comm) ([]domain.Comm, error)
	List(ctx context.Context, limit int) ([]domain.Comm, error)
}

type ActivityQuery struct {
	Agent  domain.AgentID
	Type   domain.ActivityType
	Limit  int
	Offset int
}

type ActivityStore interface {
	Append(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	List(ctx context.Context, query ActivityQuery) ([]domain.Activity, error)
}
