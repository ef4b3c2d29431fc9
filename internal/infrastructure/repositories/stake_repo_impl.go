package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	domainRepos "nick-exchange.backend/internal/domain/repositories"
	"nick-exchange.backend/internal/infrastructure/models"
)

// StakeRepository implements stake persistence
type StakeRepository struct {
	db *gorm.DB
}

// NewStakeRepository creates a new stake repository
func NewStakeRepository(db *gorm.DB) *StakeRepository {
	return &StakeRepository{db: db}
}

// Create creates a new stake
func (r *StakeRepository) Create(ctx context.Context, stake *entities.Stake) error {
	db := GetDB(ctx, r.db)
	if stake.ID == uuid.Nil {
		stake.ID = uuid.New()
	}
	m := models.Stake{
		ID:            stake.ID,
		WalletAddress: stake.WalletAddress,
		Principal:     stake.Principal,
		StartTime:     stake.StartTime,
		UnlockTime:    stake.UnlockTime,
		IsActive:      stake.IsActive,
		ClosedAt:      stake.ClosedAt,
	}
	return db.WithContext(ctx).Create(&m).Error
}

// GetByID gets a stake by ID
func (r *StakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Stake, error) {
	db := GetDB(ctx, r.db)
	var m models.Stake
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByWallet gets all stakes for a wallet, newest first
func (r *StakeRepository) GetByWallet(ctx context.Context, wallet string) ([]*entities.Stake, error) {
	db := GetDB(ctx, r.db)
	var ms []models.Stake
	if err := db.WithContext(ctx).
		Where("wallet_address = ?", wallet).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	stakes := make([]*entities.Stake, 0, len(ms))
	for _, m := range ms {
		model := m
		stakes = append(stakes, r.toEntity(&model))
	}
	return stakes, nil
}

// Update persists the stake's mutable state
func (r *StakeRepository) Update(ctx context.Context, stake *entities.Stake) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Stake{}).
		Where("id = ?", stake.ID).
		Updates(map[string]interface{}{
			"start_time": stake.StartTime,
			"is_active":  stake.IsActive,
			"closed_at":  stake.ClosedAt,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AddClaimed accumulates settled reward for stats reporting
func (r *StakeRepository) AddClaimed(ctx context.Context, id uuid.UUID, reward float64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Stake{}).
		Where("id = ?", id).
		Update("claimed_rewards", gorm.Expr("claimed_rewards + ?", reward))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Aggregates returns raw totals over active stakes plus all settled rewards
func (r *StakeRepository) Aggregates(ctx context.Context) (*domainRepos.StakeAggregates, error) {
	db := GetDB(ctx, r.db)

	var active struct {
		Total   float64
		Stakers int64
	}
	if err := db.WithContext(ctx).Model(&models.Stake{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(principal), 0) AS total, COUNT(DISTINCT wallet_address) AS stakers").
		Scan(&active).Error; err != nil {
		return nil, err
	}

	var claimed float64
	if err := db.WithContext(ctx).Model(&models.Stake{}).
		Select("COALESCE(SUM(claimed_rewards), 0)").
		Scan(&claimed).Error; err != nil {
		return nil, err
	}

	return &domainRepos.StakeAggregates{
		TotalStaked:  active.Total,
		TotalStakers: int(active.Stakers),
		TotalClaimed: claimed,
	}, nil
}

func (r *StakeRepository) toEntity(m *models.Stake) *entities.Stake {
	return &entities.Stake{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		Principal:     m.Principal,
		StartTime:     m.StartTime,
		UnlockTime:    m.UnlockTime,
		IsActive:      m.IsActive,
		ClosedAt:      m.ClosedAt,
	}
}
