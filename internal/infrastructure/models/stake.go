package models

import (
	"time"

	"github.com/google/uuid"
)

// Stake is the persisted time-locked deposit. ClaimedRewards accumulates
// settled rewards for stats; accrual itself is recomputed from StartTime.
type Stake struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress  string    `gorm:"type:varchar(255);not null;index"`
	Principal      float64   `gorm:"not null"`
	StartTime      time.Time `gorm:"not null"`
	UnlockTime     time.Time `gorm:"not null"`
	IsActive       bool      `gorm:"default:true;index"`
	ClaimedRewards float64   `gorm:"default:0"`
	ClosedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
