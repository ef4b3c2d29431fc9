package usecases

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/domain/gateways"
	"nick-exchange.backend/internal/domain/repositories"
	"nick-exchange.backend/pkg/logger"
)

// casRetries bounds optimistic-concurrency retries on pool reserve updates
const casRetries = 3

// SwapUsecase prices swaps over the constant-product curve and runs the
// execution path that moves balances and mutates reserves. Quote is pure;
// only Execute touches state.
type SwapUsecase struct {
	poolRepo repositories.PoolRepository
	balances gateways.BalanceService
	clock    Clock
}

// NewSwapUsecase creates a new swap usecase
func NewSwapUsecase(
	poolRepo repositories.PoolRepository,
	balances gateways.BalanceService,
	clock Clock,
) *SwapUsecase {
	return &SwapUsecase{
		poolRepo: poolRepo,
		balances: balances,
		clock:    clock,
	}
}

// Quote prices a swap against the given pool snapshot. Constant-product
// curve with the fee deducted from the input:
//
//	net       = amountIn * (1 - feeRate)
//	amountOut = net * reserveOut / (reserveIn + net)
func (u *SwapUsecase) Quote(from, to entities.Token, amountIn float64, pool *entities.LiquidityPool) (*entities.SwapQuote, error) {
	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("unknown token: %w", domainerrors.ErrInvalidInput)
	}
	if from == to {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, domainerrors.ErrSameAsset)
	}
	if amountIn < MinSwapAmount {
		return nil, fmt.Errorf("minimum swap is %.2f: %w", MinSwapAmount, domainerrors.ErrBelowMinimum)
	}

	reserveIn, reserveOut := pool.Reserves(from)

	net := amountIn * (1 - pool.FeeRate)
	amountOut := net * reserveOut / (reserveIn + net)

	spotPrice := reserveOut / reserveIn
	executionPrice := amountOut / amountIn
	priceImpact := math.Abs(executionPrice-spotPrice) / spotPrice * 100

	return &entities.SwapQuote{
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		Fee:            amountIn * pool.FeeRate,
		PriceImpact:    priceImpact,
		ExecutionPrice: executionPrice,
		SpotPrice:      spotPrice,
	}, nil
}

// QuoteCurrent prices a swap against the live pool snapshot
func (u *SwapUsecase) QuoteCurrent(ctx context.Context, from, to entities.Token, amountIn float64) (*entities.SwapQuote, error) {
	pool, err := u.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return u.Quote(from, to, amountIn, pool)
}

// PoolInfo returns the pool snapshot exposed to callers
func (u *SwapUsecase) PoolInfo(ctx context.Context) (*entities.PoolInfo, error) {
	pool, err := u.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.PoolInfo{
		ReserveSUI:     pool.ReserveSUI,
		ReserveWAL:     pool.ReserveWAL,
		TotalLiquidity: math.Sqrt(pool.ReserveSUI * pool.ReserveWAL),
		CurrentPrice:   pool.ReserveWAL / pool.ReserveSUI,
		FeeRate:        pool.FeeRate,
	}, nil
}

// Execute swaps from -> to for the wallet. The quote is re-taken against
// the live snapshot, the slippage bound enforced, balances moved, and the
// reserves advanced with a compare-and-swap so concurrent executions
// against a stale snapshot retry on a fresh one.
func (u *SwapUsecase) Execute(ctx context.Context, wallet string, input *entities.ExecuteSwapInput) (*entities.SwapRecord, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		record, err := u.tryExecute(ctx, wallet, input)
		if err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				// Stale pool version, re-read and retry.
				continue
			}
			return nil, err
		}
		return record, nil
	}
	return nil, fmt.Errorf("pool contention, retries exhausted: %w", domainerrors.ErrExternalService)
}

func (u *SwapUsecase) tryExecute(ctx context.Context, wallet string, input *entities.ExecuteSwapInput) (*entities.SwapRecord, error) {
	pool, err := u.poolRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := u.Quote(input.FromToken, input.ToToken, input.AmountIn, pool)
	if err != nil {
		return nil, err
	}

	minOut := input.MinAmountOut
	if minOut <= 0 {
		minOut = quote.AmountOut * (1 - DefaultSlippageTolerance)
	}
	if quote.AmountOut < minOut {
		return nil, fmt.Errorf("output %.6f below minimum %.6f: %w",
			quote.AmountOut, minOut, domainerrors.ErrSlippageExceeded)
	}

	balance, err := u.balances.GetBalance(ctx, wallet, input.FromToken)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
	}
	if balance < input.AmountIn {
		return nil, fmt.Errorf("wallet %s has %.4f %s, needs %.4f: %w",
			wallet, balance, input.FromToken, input.AmountIn, domainerrors.ErrInsufficientFunds)
	}

	next := *pool
	if input.FromToken == entities.TokenSUI {
		next.ReserveSUI += input.AmountIn
		next.ReserveWAL -= quote.AmountOut
	} else {
		next.ReserveWAL += input.AmountIn
		next.ReserveSUI -= quote.AmountOut
	}

	record := &entities.SwapRecord{
		ID:            uuid.New(),
		WalletAddress: wallet,
		FromToken:     input.FromToken,
		ToToken:       input.ToToken,
		AmountIn:      input.AmountIn,
		AmountOut:     quote.AmountOut,
		Fee:           quote.Fee,
		CreatedAt:     u.clock.Now(),
	}

	swap := newSaga("swap")
	swap.add("advance reserves",
		// CAS first: on a stale version nothing else has been applied yet
		// and the caller simply retries.
		func(ctx context.Context) error { return u.poolRepo.CompareAndSwap(ctx, &next, pool.Version) },
		func(ctx context.Context) error { return u.poolRepo.CompareAndSwap(ctx, pool, next.Version) },
	)
	swap.add("debit input",
		func(ctx context.Context) error {
			if err := u.balances.Debit(ctx, wallet, input.FromToken, input.AmountIn); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		func(ctx context.Context) error { return u.balances.Credit(ctx, wallet, input.FromToken, input.AmountIn) },
	)
	swap.add("credit output",
		func(ctx context.Context) error {
			if err := u.balances.Credit(ctx, wallet, input.ToToken, quote.AmountOut); err != nil {
				return fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
			}
			return nil
		},
		func(ctx context.Context) error { return u.balances.Debit(ctx, wallet, input.ToToken, quote.AmountOut) },
	)
	swap.add("record swap",
		func(ctx context.Context) error { return u.poolRepo.CreateSwap(ctx, record) },
		nil,
	)
	if err := swap.execute(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "swap executed",
		zap.String("wallet", wallet),
		zap.String("from", string(input.FromToken)),
		zap.String("to", string(input.ToToken)),
		zap.Float64("amount_in", input.AmountIn),
		zap.Float64("amount_out", quote.AmountOut),
	)
	return record, nil
}

// Balances returns the wallet's SUI and WAL holdings
func (u *SwapUsecase) Balances(ctx context.Context, wallet string) (map[entities.Token]float64, error) {
	out := make(map[entities.Token]float64, 2)
	for _, token := range []entities.Token{entities.TokenSUI, entities.TokenWAL} {
		amount, err := u.balances.GetBalance(ctx, wallet, token)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, domainerrors.ErrExternalService)
		}
		out[token] = amount
	}
	return out, nil
}

// SwapHistory returns the wallet's executed swaps, newest first
func (u *SwapUsecase) SwapHistory(ctx context.Context, wallet string) ([]*entities.SwapRecord, error) {
	return u.poolRepo.SwapsByWallet(ctx, wallet)
}
