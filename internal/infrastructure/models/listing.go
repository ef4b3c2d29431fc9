package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing is the persisted marketplace listing
type Listing struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nickname  string    `gorm:"type:varchar(255);not null;index"`
	Seller    string    `gorm:"type:varchar(255);not null;index"`
	Price     float64   `gorm:"not null"`
	CustodyID uuid.UUID `gorm:"type:uuid;not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	ClosedAt  *time.Time
}
