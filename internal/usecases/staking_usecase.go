package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/domain/gateways"
	"nick-exchange.backend/internal/domain/repositories"
	"nick-exchange.backend/pkg/logger"
)

// StakingUsecase opens and closes time-locked stakes. Reward is a pure
// function of elapsed time and APY, recomputed on every read; nothing
// accrues incrementally.
type StakingUsecase struct {
	stakeRepo repositories.StakeRepository
	balances  gateways.BalanceService
	locks     gateways.KeyLocker
	clock     Clock
}

// NewStakingUsecase creates a new staking usecase
func NewStakingUsecase(
	stakeRepo repositories.StakeRepository,
	balances gateways.BalanceService,
	locks gateways.KeyLocker,
	clock Clock,
) *StakingUsecase {
	return &StakingUsecase{
		stakeRepo: stakeRepo,
		balances:  balances,
		locks:     locks,
		clock:     clock,
	}
}

func stakeKey(id uuid.UUID) string { return "stake:" + id.String() }

// rewardFor computes the linear, non-compounding reward accrued since start
func rewardFor(principal float64, start, now time.Time) float64 {
	days := now.Sub(start).Hours() / 24
	if days <= 0 {
		return 0
	}
	dailyRate := StakingAPY / 100 / 365
	return principal * dailyRate * days
}

// Open creates a stake, debiting the principal from the wallet's balance
func (u *StakingUsecase) Open(ctx context.Context, wallet string, amount float64) (*entities.Stake, error) {
	if amount < MinStakeAmount {
		return nil, fmt.Errorf("minimum stake is %.2f WAL: %w", MinStakeAmount, domainerrors.ErrBelowMinimum)
	}

	balance, err := u.balances.GetBalance(ctx, wallet, entities.TokenWAL)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
	}
	if balance < amount {
		return nil, fmt.Errorf("wallet %s has %.2f WAL, needs %.2f: %w",
			wallet, balance, amount, domainerrors.ErrInsufficientFunds)
	}

	now := u.clock.Now()
	stake := &entities.Stake{
		ID:            uuid.New(),
		WalletAddress: wallet,
		Principal:     amount,
		StartTime:     now,
		UnlockTime:    now.Add(LockPeriodDays * 24 * time.Hour),
		IsActive:      true,
	}

	open := newSaga("stake open")
	open.add("debit principal",
		func(ctx context.Context) error {
			if err := u.balances.Debit(ctx, wallet, entities.TokenWAL, amount); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		func(ctx context.Context) error { return u.balances.Credit(ctx, wallet, entities.TokenWAL, amount) },
	)
	open.add("create stake",
		func(ctx context.Context) error { return u.stakeRepo.Create(ctx, stake) },
		nil,
	)
	if err := open.execute(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "stake opened",
		zap.String("wallet", wallet),
		zap.String("stake_id", stake.ID.String()),
		zap.Float64("amount", amount),
	)
	return stake, nil
}

// Close unstakes at or after the unlock time, crediting principal plus the
// final reward back to the wallet.
func (u *StakingUsecase) Close(ctx context.Context, wallet string, stakeID uuid.UUID) (*entities.StakeSettlement, error) {
	unlock, err := u.locks.Lock(ctx, stakeKey(stakeID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	stake, err := u.getOwnedStake(ctx, wallet, stakeID)
	if err != nil {
		return nil, err
	}
	if !stake.IsActive {
		return nil, fmt.Errorf("stake %s: %w", stakeID, domainerrors.ErrAlreadyClosed)
	}

	now := u.clock.Now()
	if now.Before(stake.UnlockTime) {
		remaining := int(math.Ceil(stake.UnlockTime.Sub(now).Hours() / 24))
		return nil, fmt.Errorf("stake %s locked for %d more days: %w",
			stakeID, remaining, domainerrors.ErrStillLocked)
	}

	reward := rewardFor(stake.Principal, stake.StartTime, now)

	stake.IsActive = false
	stake.ClosedAt = &now
	stake.AccruedReward = reward

	closeSaga := newSaga("stake close")
	closeSaga.add("close stake",
		func(ctx context.Context) error { return u.stakeRepo.Update(ctx, stake) },
		func(ctx context.Context) error {
			stake.IsActive = true
			stake.ClosedAt = nil
			return u.stakeRepo.Update(ctx, stake)
		},
	)
	closeSaga.add("credit settlement",
		func(ctx context.Context) error {
			if err := u.balances.Credit(ctx, wallet, entities.TokenWAL, stake.Principal+reward); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		nil,
	)
	closeSaga.add("record claimed",
		func(ctx context.Context) error { return u.stakeRepo.AddClaimed(ctx, stake.ID, reward) },
		nil,
	)
	if err := closeSaga.execute(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "stake closed",
		zap.String("wallet", wallet),
		zap.String("stake_id", stakeID.String()),
		zap.Float64("principal", stake.Principal),
		zap.Float64("reward", reward),
	)
	return &entities.StakeSettlement{
		StakeID:   stakeID,
		Principal: stake.Principal,
		Reward:    reward,
	}, nil
}

// Claim settles the accrued reward without closing the stake. The start
// time advances to now so the claimed window is never counted twice.
func (u *StakingUsecase) Claim(ctx context.Context, wallet string, stakeID uuid.UUID) (float64, error) {
	unlock, err := u.locks.Lock(ctx, stakeKey(stakeID))
	if err != nil {
		return 0, err
	}
	defer unlock()

	stake, err := u.getOwnedStake(ctx, wallet, stakeID)
	if err != nil {
		return 0, err
	}
	if !stake.IsActive {
		return 0, fmt.Errorf("stake %s: %w", stakeID, domainerrors.ErrAlreadyClosed)
	}

	now := u.clock.Now()
	reward := rewardFor(stake.Principal, stake.StartTime, now)
	if reward < DustRewardThreshold {
		return 0, fmt.Errorf("stake %s accrued %.6f WAL: %w",
			stakeID, reward, domainerrors.ErrNegligibleReward)
	}

	prevStart := stake.StartTime
	stake.StartTime = now
	stake.AccruedReward = 0

	claim := newSaga("stake claim")
	claim.add("reset accrual window",
		func(ctx context.Context) error { return u.stakeRepo.Update(ctx, stake) },
		func(ctx context.Context) error {
			stake.StartTime = prevStart
			return u.stakeRepo.Update(ctx, stake)
		},
	)
	claim.add("credit reward",
		func(ctx context.Context) error {
			if err := u.balances.Credit(ctx, wallet, entities.TokenWAL, reward); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		nil,
	)
	claim.add("record claimed",
		func(ctx context.Context) error { return u.stakeRepo.AddClaimed(ctx, stake.ID, reward) },
		nil,
	)
	if err := claim.execute(ctx); err != nil {
		return 0, err
	}

	logger.Info(ctx, "stake rewards claimed",
		zap.String("wallet", wallet),
		zap.String("stake_id", stakeID.String()),
		zap.Float64("reward", reward),
	)
	return reward, nil
}

// Stakes returns the wallet's stakes with rewards recomputed as of now
func (u *StakingUsecase) Stakes(ctx context.Context, wallet string) ([]*entities.Stake, error) {
	stakes, err := u.stakeRepo.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}
	now := u.clock.Now()
	for _, s := range stakes {
		if s.IsActive {
			s.AccruedReward = rewardFor(s.Principal, s.StartTime, now)
		}
	}
	return stakes, nil
}

// Stats aggregates staking activity
func (u *StakingUsecase) Stats(ctx context.Context) (*entities.StakingStats, error) {
	agg, err := u.stakeRepo.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	stats := &entities.StakingStats{
		TotalStaked:             agg.TotalStaked,
		TotalStakers:            agg.TotalStakers,
		TotalRewardsDistributed: agg.TotalClaimed,
		CurrentAPY:              StakingAPY,
	}
	if agg.TotalStakers > 0 {
		stats.AverageStake = agg.TotalStaked / float64(agg.TotalStakers)
	}
	return stats, nil
}

// PotentialRewards estimates the reward for a principal held a given number
// of days. Pure helper for the UI.
func (u *StakingUsecase) PotentialRewards(amount float64, days float64) float64 {
	dailyRate := StakingAPY / 100 / 365
	return amount * dailyRate * days
}

// Pools lists the staking pools on offer
func (u *StakingUsecase) Pools(ctx context.Context) ([]*entities.StakePool, error) {
	agg, err := u.stakeRepo.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	return []*entities.StakePool{{
		PoolID:         "walrus-main",
		Name:           StakePoolName,
		APY:            StakingAPY,
		TotalStaked:    agg.TotalStaked,
		LockPeriodDays: LockPeriodDays,
		MinStake:       MinStakeAmount,
	}}, nil
}

func (u *StakingUsecase) getOwnedStake(ctx context.Context, wallet string, stakeID uuid.UUID) (*entities.Stake, error) {
	stake, err := u.stakeRepo.GetByID(ctx, stakeID)
	if err != nil {
		return nil, err
	}
	if stake.WalletAddress != wallet {
		return nil, fmt.Errorf("stake %s: %w", stakeID, domainerrors.ErrNotFound)
	}
	return stake, nil
}
