package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/domain/gateways"
	"nick-exchange.backend/internal/domain/repositories"
	"nick-exchange.backend/pkg/logger"
	"nick-exchange.backend/pkg/utils"
)

// RegistryUsecase is the single writer of nickname ownership state. Every
// mutation serializes on the wallet key so concurrent acquires cannot bypass
// the ownership cap.
type RegistryUsecase struct {
	ownershipRepo repositories.OwnershipRepository
	profileSync   gateways.ProfileSync
	allocator     gateways.NicknameAllocator
	locks         gateways.KeyLocker
}

// NewRegistryUsecase creates a new registry usecase
func NewRegistryUsecase(
	ownershipRepo repositories.OwnershipRepository,
	profileSync gateways.ProfileSync,
	allocator gateways.NicknameAllocator,
	locks gateways.KeyLocker,
) *RegistryUsecase {
	return &RegistryUsecase{
		ownershipRepo: ownershipRepo,
		profileSync:   profileSync,
		allocator:     allocator,
		locks:         locks,
	}
}

func walletKey(wallet string) string { return "wallet:" + wallet }

// Acquire appends a nickname to the wallet's owned set. The nickname must
// already be uniquely reserved; the registry does not re-check global
// uniqueness. The wallet's first nickname becomes active automatically.
func (u *RegistryUsecase) Acquire(ctx context.Context, wallet, nickname string) error {
	unlock, err := u.locks.Lock(ctx, walletKey(wallet))
	if err != nil {
		return err
	}
	defer unlock()
	return u.acquireLocked(ctx, wallet, nickname)
}

func (u *RegistryUsecase) acquireLocked(ctx context.Context, wallet, nickname string) error {
	owned, err := u.ownershipRepo.GetOwned(ctx, wallet)
	if err != nil {
		return err
	}
	if len(owned) >= MaxNicknamesPerWallet {
		return fmt.Errorf("wallet %s owns %d nicknames: %w", wallet, len(owned), domainerrors.ErrLimitExceeded)
	}
	for _, n := range owned {
		if n == nickname {
			return fmt.Errorf("wallet %s, nickname %q: %w", wallet, nickname, domainerrors.ErrAlreadyOwned)
		}
	}

	if err := u.ownershipRepo.Append(ctx, wallet, nickname); err != nil {
		return err
	}

	if len(owned) == 0 {
		if err := u.ownershipRepo.SetActive(ctx, wallet, nickname); err != nil {
			return err
		}
		u.mirrorActive(ctx, wallet, nickname)
	}
	return nil
}

// SetActive reassigns the wallet's active nickname. Idempotent when the
// nickname is already active.
func (u *RegistryUsecase) SetActive(ctx context.Context, wallet, nickname string) error {
	unlock, err := u.locks.Lock(ctx, walletKey(wallet))
	if err != nil {
		return err
	}
	defer unlock()

	owned, err := u.ownershipRepo.GetOwned(ctx, wallet)
	if err != nil {
		return err
	}
	if !contains(owned, nickname) {
		return fmt.Errorf("wallet %s, nickname %q: %w", wallet, nickname, domainerrors.ErrNotOwned)
	}

	if err := u.ownershipRepo.SetActive(ctx, wallet, nickname); err != nil {
		return err
	}
	u.mirrorActive(ctx, wallet, nickname)
	return nil
}

// Release removes a nickname from the wallet's owned set. When the released
// nickname was active the first remaining nickname (acquisition order)
// becomes active; when the set empties, the active nickname is cleared and a
// fresh placeholder display nickname is provisioned so the wallet is never
// left without a usable identity.
func (u *RegistryUsecase) Release(ctx context.Context, wallet, nickname string) error {
	unlock, err := u.locks.Lock(ctx, walletKey(wallet))
	if err != nil {
		return err
	}
	defer unlock()
	return u.releaseLocked(ctx, wallet, nickname)
}

func (u *RegistryUsecase) releaseLocked(ctx context.Context, wallet, nickname string) error {
	owned, err := u.ownershipRepo.GetOwned(ctx, wallet)
	if err != nil {
		return err
	}
	if !contains(owned, nickname) {
		return fmt.Errorf("wallet %s, nickname %q: %w", wallet, nickname, domainerrors.ErrNotOwned)
	}

	active, err := u.ownershipRepo.GetActive(ctx, wallet)
	if err != nil {
		return err
	}

	if err := u.ownershipRepo.Remove(ctx, wallet, nickname); err != nil {
		return err
	}

	if active != nickname {
		return nil
	}

	remaining := make([]string, 0, len(owned)-1)
	for _, n := range owned {
		if n != nickname {
			remaining = append(remaining, n)
		}
	}

	if len(remaining) > 0 {
		// Deterministic tie-break: oldest remaining nickname becomes active.
		next := remaining[0]
		if err := u.ownershipRepo.SetActive(ctx, wallet, next); err != nil {
			return err
		}
		u.mirrorActive(ctx, wallet, next)
		return nil
	}

	if err := u.ownershipRepo.ClearActive(ctx, wallet); err != nil {
		return err
	}
	u.provisionPlaceholder(ctx, wallet)
	return nil
}

// provisionPlaceholder reserves a fresh unique nickname and mirrors it as
// the wallet's display identity. The placeholder is not an owned asset, so
// failure here affects display only and is logged rather than propagated.
func (u *RegistryUsecase) provisionPlaceholder(ctx context.Context, wallet string) {
	reserved, err := u.allocator.ReserveUnique(ctx, utils.GenerateNickname())
	if err != nil {
		logger.Warn(ctx, "placeholder nickname reservation failed",
			zap.String("wallet", wallet),
			zap.Error(err),
		)
		return
	}
	u.mirrorActive(ctx, wallet, reserved)
}

// Ownership returns the wallet's ownership snapshot
func (u *RegistryUsecase) Ownership(ctx context.Context, wallet string) (*entities.NicknameOwnership, error) {
	owned, err := u.ownershipRepo.GetOwned(ctx, wallet)
	if err != nil {
		return nil, err
	}
	active, err := u.ownershipRepo.GetActive(ctx, wallet)
	if err != nil {
		return nil, err
	}

	remaining := MaxNicknamesPerWallet - len(owned)
	if remaining < 0 {
		remaining = 0
	}
	return &entities.NicknameOwnership{
		WalletAddress:  wallet,
		OwnedNicknames: owned,
		ActiveNickname: active,
		CanAcquireMore: remaining > 0,
		RemainingSlots: remaining,
	}, nil
}

// Bootstrap provisions an initial nickname for a wallet that owns none.
// No-op when the wallet already owns any nickname.
func (u *RegistryUsecase) Bootstrap(ctx context.Context, wallet string) (*entities.NicknameOwnership, error) {
	unlock, err := u.locks.Lock(ctx, walletKey(wallet))
	if err != nil {
		return nil, err
	}
	defer unlock()

	owned, err := u.ownershipRepo.GetOwned(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		reserved, err := u.allocator.ReserveUnique(ctx, utils.GenerateNickname())
		if err != nil {
			return nil, fmt.Errorf("reserving initial nickname: %w", err)
		}
		if err := u.acquireLocked(ctx, wallet, reserved); err != nil {
			return nil, err
		}
	}
	return u.Ownership(ctx, wallet)
}

// Stats aggregates ownership across all wallets
func (u *RegistryUsecase) Stats(ctx context.Context) (*entities.OwnershipStats, error) {
	allOwned, err := u.ownershipRepo.AllOwned(ctx)
	if err != nil {
		return nil, err
	}

	distribution := make(map[int]int, MaxNicknamesPerWallet+1)
	for i := 0; i <= MaxNicknamesPerWallet; i++ {
		distribution[i] = 0
	}

	total := 0
	for _, owned := range allOwned {
		count := len(owned)
		total += count
		if count > MaxNicknamesPerWallet {
			count = MaxNicknamesPerWallet
		}
		distribution[count]++
	}

	average := 0.0
	if len(allOwned) > 0 {
		average = float64(total) / float64(len(allOwned))
	}
	return &entities.OwnershipStats{
		TotalWallets:              len(allOwned),
		TotalNicknames:            total,
		AverageNicknamesPerWallet: average,
		MaxNicknamesPerWallet:     MaxNicknamesPerWallet,
		Distribution:              distribution,
	}, nil
}

// mirrorActive pushes the active nickname to the identity profile.
// Best-effort: a failed mirror never rolls back an ownership change.
func (u *RegistryUsecase) mirrorActive(ctx context.Context, wallet, nickname string) {
	if err := u.profileSync.SetDisplayNickname(ctx, wallet, nickname); err != nil {
		logger.Warn(ctx, "profile nickname sync failed",
			zap.String("wallet", wallet),
			zap.String("nickname", nickname),
			zap.Error(err),
		)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
