package models

import (
	"time"

	"github.com/google/uuid"
)

// LiquidityPool is the persisted pool snapshot. Version implements the
// optimistic compare-and-swap on reserve updates.
type LiquidityPool struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReserveSUI float64   `gorm:"column:reserve_sui;not null"`
	ReserveWAL float64   `gorm:"not null"`
	FeeRate    float64   `gorm:"not null"`
	Version    int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

// SwapRecord is an executed swap kept for per-wallet history
type SwapRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress string    `gorm:"type:varchar(255);not null;index"`
	FromToken     string    `gorm:"type:varchar(10);not null"`
	ToToken       string    `gorm:"type:varchar(10);not null"`
	AmountIn      float64   `gorm:"not null"`
	AmountOut     float64   `gorm:"not null"`
	Fee           float64   `gorm:"not null"`
	CreatedAt     time.Time `gorm:"index"`
}
