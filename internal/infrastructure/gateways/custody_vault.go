package gateways

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/infrastructure/models"
)

// CustodyVault implements CustodyService on the custody_records table.
// A custody ID can be released or transferred exactly once.
type CustodyVault struct {
	db *gorm.DB
}

// NewCustodyVault creates a new custody vault
func NewCustodyVault(db *gorm.DB) *CustodyVault {
	return &CustodyVault{db: db}
}

// Hold takes exclusive custody of an asset and returns the custody ID
func (v *CustodyVault) Hold(ctx context.Context, assetID uuid.UUID) (uuid.UUID, error) {
	var held int64
	if err := v.db.WithContext(ctx).Model(&models.CustodyRecord{}).
		Where("asset_id = ? AND status = ?", assetID, models.CustodyStatusHeld).
		Count(&held).Error; err != nil {
		return uuid.Nil, err
	}
	if held > 0 {
		return uuid.Nil, fmt.Errorf("asset %s already in custody: %w", assetID, domainerrors.ErrAlreadyExists)
	}

	m := models.CustodyRecord{
		ID:      uuid.New(),
		AssetID: assetID,
		Status:  models.CustodyStatusHeld,
	}
	if err := v.db.WithContext(ctx).Create(&m).Error; err != nil {
		return uuid.Nil, err
	}
	return m.ID, nil
}

// Release returns the asset to its owner, ending the hold
func (v *CustodyVault) Release(ctx context.Context, custodyID uuid.UUID) error {
	return v.close(ctx, custodyID, models.CustodyStatusReleased, nil)
}

// Transfer hands the held asset to the buying wallet, ending the hold
func (v *CustodyVault) Transfer(ctx context.Context, custodyID uuid.UUID, toWallet string) error {
	return v.close(ctx, custodyID, models.CustodyStatusTransferred, &toWallet)
}

func (v *CustodyVault) close(ctx context.Context, custodyID uuid.UUID, status string, heldFor *string) error {
	var m models.CustodyRecord
	err := v.db.WithContext(ctx).Where("id = ?", custodyID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	if m.Status != models.CustodyStatusHeld {
		return fmt.Errorf("custody %s already %s: %w", custodyID, m.Status, domainerrors.ErrAlreadyClosed)
	}

	result := v.db.WithContext(ctx).Model(&models.CustodyRecord{}).
		Where("id = ? AND status = ?", custodyID, models.CustodyStatusHeld).
		Updates(map[string]interface{}{
			"status":     status,
			"held_for":   heldFor,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("custody %s closed concurrently: %w", custodyID, domainerrors.ErrAlreadyClosed)
	}
	return nil
}
