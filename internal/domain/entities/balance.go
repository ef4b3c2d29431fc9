package entities

// Balance is a wallet's holding of a single token
type Balance struct {
	WalletAddress string  `json:"walletAddress"`
	Token         Token   `json:"token"`
	Amount        float64 `json:"amount"`
}
