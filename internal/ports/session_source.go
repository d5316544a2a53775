package ports

import (
	"context"

	"github.com/bnema/mission-control/internal/domain"
)

type SessionSource interface {
	FetchSessions(ctx context.Context) ([]domain.SessionRecord, error)
}
