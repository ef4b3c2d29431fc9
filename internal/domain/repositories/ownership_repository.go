package repositories

import (
	"context"
)

// OwnershipRepository persists per-wallet nickname ownership. Owned sets are
// ordered by acquisition; implementations must preserve insertion order.
type OwnershipRepository interface {
	// GetOwned returns the wallet's owned nicknames in acquisition order
	GetOwned(ctx context.Context, wallet string) ([]string, error)
	// GetActive returns the wallet's active nickname, or "" when none
	GetActive(ctx context.Context, wallet string) (string, error)
	// Append adds a nickname to the end of the wallet's owned set
	Append(ctx context.Context, wallet, nickname string) error
	// Remove deletes a nickname from the wallet's owned set
	Remove(ctx context.Context, wallet, nickname string) error
	// SetActive records the wallet's active nickname
	SetActive(ctx context.Context, wallet, nickname string) error
	// ClearActive removes the wallet's active nickname
	ClearActive(ctx context.Context, wallet string) error
	// AllOwned returns every wallet's owned nicknames in acquisition order
	AllOwned(ctx context.Context) (map[string][]string, error)
	// AllActive returns every wallet's active nickname
	AllActive(ctx context.Context) (map[string]string, error)
}
