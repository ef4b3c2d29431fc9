// Package gateways declares the external collaborators the core depends on.
// They are injected into usecases so tests can substitute fakes; the core
// never reaches for them through ambient imports.
package gateways

import (
	"context"

	"github.com/google/uuid"
	"nick-exchange.backend/internal/domain/entities"
)

// BalanceService moves token balances. Each call is atomic on its own but is
// not transactionally joined with ownership changes; multi-step flows must
// compensate on partial failure.
type BalanceService interface {
	GetBalance(ctx context.Context, wallet string, token entities.Token) (float64, error)
	Debit(ctx context.Context, wallet string, token entities.Token, amount float64) error
	Credit(ctx context.Context, wallet string, token entities.Token, amount float64) error
}

// CustodyService takes exclusive hold of an asset while it is listed
type CustodyService interface {
	Hold(ctx context.Context, assetID uuid.UUID) (uuid.UUID, error)
	Release(ctx context.Context, custodyID uuid.UUID) error
	Transfer(ctx context.Context, custodyID uuid.UUID, toWallet string) error
}

// ProfileSync mirrors the active nickname to the identity profile.
// Best-effort: failures are logged by callers, never propagated.
type ProfileSync interface {
	SetDisplayNickname(ctx context.Context, wallet, nickname string) error
}

// NicknameAllocator reserves globally-unique nicknames. The registry trusts
// that a returned name is not reserved anywhere else.
type NicknameAllocator interface {
	ReserveUnique(ctx context.Context, candidate string) (string, error)
}

// KeyLocker serializes operations per logical key. Lock acquires every key
// (in sorted order, so callers cannot deadlock each other) and returns the
// release function.
type KeyLocker interface {
	Lock(ctx context.Context, keys ...string) (func(), error)
}
