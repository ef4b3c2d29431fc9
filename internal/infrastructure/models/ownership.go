package models

import (
	"time"
)

// OwnedNickname is one row of a wallet's owned set. The auto-increment
// primary key preserves acquisition order.
type OwnedNickname struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	WalletAddress string `gorm:"type:varchar(255);not null;index"`
	Nickname      string `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt     time.Time
}

// ActiveNickname records a wallet's single active nickname
type ActiveNickname struct {
	WalletAddress string `gorm:"type:varchar(255);primaryKey"`
	Nickname      string `gorm:"type:varchar(255);not null"`
	UpdatedAt     time.Time
}
