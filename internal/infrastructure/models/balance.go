package models

import "time"

// Balance is one wallet's holding of one token
type Balance struct {
	WalletAddress string  `gorm:"type:varchar(255);primaryKey"`
	Token         string  `gorm:"type:varchar(10);primaryKey"`
	Amount        float64 `gorm:"not null;default:0"`
	UpdatedAt     time.Time
}
