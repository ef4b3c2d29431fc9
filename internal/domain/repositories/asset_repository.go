package repositories

import (
	"context"

	"github.com/google/uuid"
	"nick-exchange.backend/internal/domain/entities"
)

// AssetRepository persists nickname assets and their append-only sale history
type AssetRepository interface {
	Create(ctx context.Context, asset *entities.NicknameAsset) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.NicknameAsset, error)
	GetByNickname(ctx context.Context, nickname string) (*entities.NicknameAsset, error)
	GetByOwner(ctx context.Context, owner string) ([]*entities.NicknameAsset, error)
	Update(ctx context.Context, asset *entities.NicknameAsset) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// AppendSale records a completed sale against the asset
	AppendSale(ctx context.Context, sale *entities.SaleRecord) error
	// SalesHistory returns the most recent sales, newest first
	SalesHistory(ctx context.Context, limit int) ([]*entities.SaleRecord, error)
	// SaleAggregates returns the total sale count and volume
	SaleAggregates(ctx context.Context) (count int64, volume float64, err error)
}
