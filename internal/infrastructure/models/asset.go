package models

import (
	"time"

	"github.com/google/uuid"
)

// NicknameAsset is the persisted nickname token
type NicknameAsset struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Nickname      string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Owner         string     `gorm:"type:varchar(255);not null;index"`
	ForSale       bool       `gorm:"default:false"`
	Price         *float64   // set iff ForSale
	LastSalePrice *float64
	CustodyID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleRecord is an append-only sale history row
type SaleRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nickname  string    `gorm:"type:varchar(255);not null"`
	Seller    string    `gorm:"type:varchar(255);not null;index"`
	Buyer     string    `gorm:"type:varchar(255);not null;index"`
	Price     float64   `gorm:"not null"`
	Timestamp time.Time `gorm:"not null;index"`
}
