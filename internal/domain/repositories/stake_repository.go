package repositories

import (
	"context"

	"github.com/google/uuid"
	"nick-exchange.backend/internal/domain/entities"
)

// StakeAggregates holds raw staking totals for stats computation
type StakeAggregates struct {
	TotalStaked  float64
	TotalStakers int
	TotalClaimed float64
}

// StakeRepository persists stakes
type StakeRepository interface {
	Create(ctx context.Context, stake *entities.Stake) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Stake, error)
	GetByWallet(ctx context.Context, wallet string) ([]*entities.Stake, error)
	Update(ctx context.Context, stake *entities.Stake) error
	// AddClaimed accumulates settled reward for stats reporting
	AddClaimed(ctx context.Context, id uuid.UUID, reward float64) error
	Aggregates(ctx context.Context) (*StakeAggregates, error)
}
