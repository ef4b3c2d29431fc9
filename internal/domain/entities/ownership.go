package entities

// NicknameOwnership is a read-only snapshot of a wallet's nickname holdings.
// OwnedNicknames preserves acquisition order; the first entry is the oldest.
type NicknameOwnership struct {
	WalletAddress  string   `json:"walletAddress"`
	OwnedNicknames []string `json:"ownedNicknames"`
	ActiveNickname string   `json:"activeNickname,omitempty"`
	CanAcquireMore bool     `json:"canAcquireMore"`
	RemainingSlots int      `json:"remainingSlots"`
}

// OwnershipStats aggregates nickname ownership across all wallets
type OwnershipStats struct {
	TotalWallets              int         `json:"totalWallets"`
	TotalNicknames            int         `json:"totalNicknames"`
	AverageNicknamesPerWallet float64     `json:"averageNicknamesPerWallet"`
	MaxNicknamesPerWallet     int         `json:"maxNicknamesPerWallet"`
	Distribution              map[int]int `json:"distribution"`
}

// SetActiveNicknameInput represents input for switching the active nickname
type SetActiveNicknameInput struct {
	Nickname string `json:"nickname" binding:"required"`
}
