package entities

import (
	"time"

	"github.com/google/uuid"
)

// Token identifies a swappable token
type Token string

const (
	TokenSUI Token = "SUI"
	TokenWAL Token = "WAL"
)

// Valid reports whether the token is one the pool trades
func (t Token) Valid() bool {
	return t == TokenSUI || t == TokenWAL
}

// LiquidityPool is a snapshot of the two reserves plus the fee rate. The
// pricer only reads it; reserves are mutated by the swap execution path via
// compare-and-swap on Version.
type LiquidityPool struct {
	ID         uuid.UUID `json:"id"`
	ReserveSUI float64   `json:"suiReserve"`
	ReserveWAL float64   `json:"walReserve"`
	FeeRate    float64   `json:"feeRate"`
	Version    int64     `json:"-"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Reserves returns (reserveIn, reserveOut) for a swap of from into to
func (p *LiquidityPool) Reserves(from Token) (reserveIn, reserveOut float64) {
	if from == TokenSUI {
		return p.ReserveSUI, p.ReserveWAL
	}
	return p.ReserveWAL, p.ReserveSUI
}

// SwapQuote is the pure pricing output for a proposed swap
type SwapQuote struct {
	AmountIn       float64 `json:"amountIn"`
	AmountOut      float64 `json:"amountOut"`
	Fee            float64 `json:"fee"`
	PriceImpact    float64 `json:"priceImpact"`
	ExecutionPrice float64 `json:"executionPrice"`
	SpotPrice      float64 `json:"spotPrice"`
}

// PoolInfo is the pool snapshot exposed to callers
type PoolInfo struct {
	ReserveSUI     float64 `json:"suiReserve"`
	ReserveWAL     float64 `json:"walReserve"`
	TotalLiquidity float64 `json:"totalLiquidity"`
	CurrentPrice   float64 `json:"currentPrice"`
	FeeRate        float64 `json:"feeRate"`
}

// SwapRecord is an executed swap kept for per-wallet history
type SwapRecord struct {
	ID            uuid.UUID `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	FromToken     Token     `json:"fromToken"`
	ToToken       Token     `json:"toToken"`
	AmountIn      float64   `json:"amountIn"`
	AmountOut     float64   `json:"amountOut"`
	Fee           float64   `json:"fee"`
	CreatedAt     time.Time `json:"timestamp"`
}

// ExecuteSwapInput represents input for executing a swap
type ExecuteSwapInput struct {
	FromToken    Token   `json:"fromToken" binding:"required"`
	ToToken      Token   `json:"toToken" binding:"required"`
	AmountIn     float64 `json:"amountIn" binding:"required,gt=0"`
	MinAmountOut float64 `json:"minAmountOut"`
}
