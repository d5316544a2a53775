package ports

import (
	"context"

	"github.com/bnema/mission-control/internal/domain"
)

type RosterRepository interface {
	Load(ctx context.Context) (domain.Roster, error)
	Save(ctx context.Context, roster domain.Roster) error
}
