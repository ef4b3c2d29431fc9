package entities

import (
	"time"

	"github.com/google/uuid"
)

// Stake is a time-locked deposit accruing reward at a fixed annual rate.
// AccruedReward is recomputed from elapsed time on every read, never stored
// incrementally.
type Stake struct {
	ID            uuid.UUID  `json:"stakeId"`
	WalletAddress string     `json:"walletAddress"`
	Principal     float64    `json:"amount"`
	StartTime     time.Time  `json:"startTime"`
	UnlockTime    time.Time  `json:"unlockTime"`
	AccruedReward float64    `json:"currentRewards"`
	IsActive      bool       `json:"isActive"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
}

// StakeSettlement is returned on unstake for external settlement
type StakeSettlement struct {
	StakeID   uuid.UUID `json:"stakeId"`
	Principal float64   `json:"principal"`
	Reward    float64   `json:"reward"`
}

// StakingStats aggregates staking activity across all wallets
type StakingStats struct {
	TotalStaked             float64 `json:"totalStaked"`
	TotalStakers            int     `json:"totalStakers"`
	AverageStake            float64 `json:"averageStake"`
	TotalRewardsDistributed float64 `json:"totalRewardsDistributed"`
	CurrentAPY              float64 `json:"currentAPY"`
}

// StakePool describes an available staking pool
type StakePool struct {
	PoolID         string  `json:"poolId"`
	Name           string  `json:"name"`
	APY            float64 `json:"apy"`
	TotalStaked    float64 `json:"totalStaked"`
	LockPeriodDays int     `json:"lockPeriod"`
	MinStake       float64 `json:"minStake"`
}

// OpenStakeInput represents input for opening a stake
type OpenStakeInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
