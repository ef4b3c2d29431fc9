package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/infrastructure/models"
)

// PoolRepository implements liquidity pool and swap history persistence.
// The single pool row is updated only via CompareAndSwap on its version.
type PoolRepository struct {
	db *gorm.DB
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db *gorm.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

// Get returns the pool snapshot
func (r *PoolRepository) Get(ctx context.Context) (*entities.LiquidityPool, error) {
	db := GetDB(ctx, r.db)
	var m models.LiquidityPool
	if err := db.WithContext(ctx).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Seed creates the pool if none exists yet
func (r *PoolRepository) Seed(ctx context.Context, pool *entities.LiquidityPool) error {
	db := GetDB(ctx, r.db)

	var count int64
	if err := db.WithContext(ctx).Model(&models.LiquidityPool{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if pool.ID == uuid.Nil {
		pool.ID = uuid.New()
	}
	m := models.LiquidityPool{
		ID:         pool.ID,
		ReserveSUI: pool.ReserveSUI,
		ReserveWAL: pool.ReserveWAL,
		FeeRate:    pool.FeeRate,
		Version:    pool.Version,
	}
	return db.WithContext(ctx).Create(&m).Error
}

// CompareAndSwap writes new reserves iff the stored version still equals
// fromVersion, and bumps both the stored and the passed pool's version so a
// caller can chain a follow-up swap from the value it holds. Returns
// ErrAlreadyExists on a version conflict.
func (r *PoolRepository) CompareAndSwap(ctx context.Context, pool *entities.LiquidityPool, fromVersion int64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.LiquidityPool{}).
		Where("id = ? AND version = ?", pool.ID, fromVersion).
		Updates(map[string]interface{}{
			"reserve_sui": pool.ReserveSUI,
			"reserve_wal": pool.ReserveWAL,
			"version":     fromVersion + 1,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyExists
	}
	pool.Version = fromVersion + 1
	return nil
}

// CreateSwap records an executed swap
func (r *PoolRepository) CreateSwap(ctx context.Context, swap *entities.SwapRecord) error {
	db := GetDB(ctx, r.db)
	if swap.ID == uuid.Nil {
		swap.ID = uuid.New()
	}
	m := models.SwapRecord{
		ID:            swap.ID,
		WalletAddress: swap.WalletAddress,
		FromToken:     string(swap.FromToken),
		ToToken:       string(swap.ToToken),
		AmountIn:      swap.AmountIn,
		AmountOut:     swap.AmountOut,
		Fee:           swap.Fee,
		CreatedAt:     swap.CreatedAt,
	}
	return db.WithContext(ctx).Create(&m).Error
}

// SwapsByWallet returns a wallet's swaps, newest first
func (r *PoolRepository) SwapsByWallet(ctx context.Context, wallet string) ([]*entities.SwapRecord, error) {
	db := GetDB(ctx, r.db)
	var ms []models.SwapRecord
	if err := db.WithContext(ctx).
		Where("wallet_address = ?", wallet).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	swaps := make([]*entities.SwapRecord, 0, len(ms))
	for _, m := range ms {
		swaps = append(swaps, &entities.SwapRecord{
			ID:            m.ID,
			WalletAddress: m.WalletAddress,
			FromToken:     entities.Token(m.FromToken),
			ToToken:       entities.Token(m.ToToken),
			AmountIn:      m.AmountIn,
			AmountOut:     m.AmountOut,
			Fee:           m.Fee,
			CreatedAt:     m.CreatedAt,
		})
	}
	return swaps, nil
}

func (r *PoolRepository) toEntity(m *models.LiquidityPool) *entities.LiquidityPool {
	return &entities.LiquidityPool{
		ID:         m.ID,
		ReserveSUI: m.ReserveSUI,
		ReserveWAL: m.ReserveWAL,
		FeeRate:    m.FeeRate,
		Version:    m.Version,
		UpdatedAt:  m.UpdatedAt,
	}
}
