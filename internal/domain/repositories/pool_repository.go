package repositories

import (
	"context"

	"nick-exchange.backend/internal/domain/entities"
)

// PoolRepository persists the liquidity pool snapshot and swap history.
// Reserve updates go through CompareAndSwap so that concurrent executions
// against a stale snapshot are rejected.
type PoolRepository interface {
	Get(ctx context.Context) (*entities.LiquidityPool, error)
	// Seed creates the pool if none exists yet
	Seed(ctx context.Context, pool *entities.LiquidityPool) error
	// CompareAndSwap writes new reserves iff the stored version still equals
	// fromVersion. Returns ErrAlreadyExists on a version conflict.
	CompareAndSwap(ctx context.Context, pool *entities.LiquidityPool, fromVersion int64) error

	CreateSwap(ctx context.Context, swap *entities.SwapRecord) error
	SwapsByWallet(ctx context.Context, wallet string) ([]*entities.SwapRecord, error)
}
