package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/infrastructure/models"
)

// OwnershipRepository implements wallet nickname ownership persistence.
// Acquisition order is the auto-increment row ID of owned_nicknames.
type OwnershipRepository struct {
	db *gorm.DB
}

// NewOwnershipRepository creates a new ownership repository
func NewOwnershipRepository(db *gorm.DB) *OwnershipRepository {
	return &OwnershipRepository{db: db}
}

// GetOwned returns the wallet's owned nicknames in acquisition order
func (r *OwnershipRepository) GetOwned(ctx context.Context, wallet string) ([]string, error) {
	db := GetDB(ctx, r.db)
	var rows []models.OwnedNickname
	if err := db.WithContext(ctx).
		Where("wallet_address = ?", wallet).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	owned := make([]string, 0, len(rows))
	for _, row := range rows {
		owned = append(owned, row.Nickname)
	}
	return owned, nil
}

// GetActive returns the wallet's active nickname, or "" when none is set
func (r *OwnershipRepository) GetActive(ctx context.Context, wallet string) (string, error) {
	db := GetDB(ctx, r.db)
	var m models.ActiveNickname
	if err := db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Nickname, nil
}

// Append adds a nickname to the end of the wallet's owned set
func (r *OwnershipRepository) Append(ctx context.Context, wallet, nickname string) error {
	db := GetDB(ctx, r.db)
	m := models.OwnedNickname{
		WalletAddress: wallet,
		Nickname:      nickname,
	}
	return db.WithContext(ctx).Create(&m).Error
}

// Remove deletes a nickname from the wallet's owned set
func (r *OwnershipRepository) Remove(ctx context.Context, wallet, nickname string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("wallet_address = ? AND nickname = ?", wallet, nickname).
		Delete(&models.OwnedNickname{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetActive records the wallet's active nickname, replacing any previous one
func (r *OwnershipRepository) SetActive(ctx context.Context, wallet, nickname string) error {
	db := GetDB(ctx, r.db)
	m := models.ActiveNickname{
		WalletAddress: wallet,
		Nickname:      nickname,
	}
	return db.WithContext(ctx).Save(&m).Error
}

// ClearActive removes the wallet's active nickname. Clearing a wallet that
// has no active nickname is a no-op.
func (r *OwnershipRepository) ClearActive(ctx context.Context, wallet string) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).
		Where("wallet_address = ?", wallet).
		Delete(&models.ActiveNickname{}).Error
}

// AllOwned returns every wallet's owned nicknames in acquisition order
func (r *OwnershipRepository) AllOwned(ctx context.Context) (map[string][]string, error) {
	db := GetDB(ctx, r.db)
	var rows []models.OwnedNickname
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	owned := make(map[string][]string)
	for _, row := range rows {
		owned[row.WalletAddress] = append(owned[row.WalletAddress], row.Nickname)
	}
	return owned, nil
}

// AllActive returns every wallet's active nickname
func (r *OwnershipRepository) AllActive(ctx context.Context) (map[string]string, error) {
	db := GetDB(ctx, r.db)
	var rows []models.ActiveNickname
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	active := make(map[string]string, len(rows))
	for _, row := range rows {
		active[row.WalletAddress] = row.Nickname
	}
	return active, nil
}
