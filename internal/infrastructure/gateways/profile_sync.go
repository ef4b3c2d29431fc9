package gateways

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"nick-exchange.backend/internal/infrastructure/models"
)

// ProfileStore implements ProfileSync on the profiles table
type ProfileStore struct {
	db *gorm.DB
}

// NewProfileStore creates a new profile store
func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// SetDisplayNickname mirrors the wallet's display nickname. An empty
// nickname clears the profile entry.
func (s *ProfileStore) SetDisplayNickname(ctx context.Context, wallet, nickname string) error {
	if nickname == "" {
		return s.db.WithContext(ctx).
			Where("wallet_address = ?", wallet).
			Delete(&models.Profile{}).Error
	}
	m := models.Profile{
		WalletAddress:   wallet,
		DisplayNickname: nickname,
	}
	return s.db.WithContext(ctx).Save(&m).Error
}

// GetDisplayNickname returns the wallet's display nickname, "" when unset
func (s *ProfileStore) GetDisplayNickname(ctx context.Context, wallet string) (string, error) {
	var m models.Profile
	err := s.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.DisplayNickname, nil
}
