package models

import (
	"time"

	"github.com/google/uuid"
)

// Custody record statuses
const (
	CustodyStatusHeld        = "HELD"
	CustodyStatusReleased    = "RELEASED"
	CustodyStatusTransferred = "TRANSFERRED"
)

// CustodyRecord tracks exclusive escrow holds on assets
type CustodyRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	HeldFor   *string   `gorm:"type:varchar(255)"` // receiving wallet after transfer
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile mirrors the display nickname shown for a wallet
type Profile struct {
	WalletAddress   string `gorm:"type:varchar(255);primaryKey"`
	DisplayNickname string `gorm:"type:varchar(255)"`
	UpdatedAt       time.Time
}
