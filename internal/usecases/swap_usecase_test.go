package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/usecases"
)

const traderWallet = "0xtra0000000000000000000000000000000000001"

type swapFixture struct {
	uc       *usecases.SwapUsecase
	poolRepo *MockPoolRepository
	balances *MockBalanceService
	clock    *fakeClock
}

func newSwapFixture() *swapFixture {
	f := &swapFixture{
		poolRepo: new(MockPoolRepository),
		balances: new(MockBalanceService),
		clock:    &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	f.uc = usecases.NewSwapUsecase(f.poolRepo, f.balances, f.clock)
	return f
}

func seededPool() *entities.LiquidityPool {
	return &entities.LiquidityPool{
		ReserveSUI: usecases.SeedReserveSUI,
		ReserveWAL: usecases.SeedReserveWAL,
		FeeRate:    usecases.SwapFeeRate,
		Version:    7,
	}
}

func TestQuote(t *testing.T) {
	f := newSwapFixture()
	pool := seededPool()

	t.Run("constant product with fee on input", func(t *testing.T) {
		quote, err := f.uc.Quote(entities.TokenSUI, entities.TokenWAL, 1000, pool)
		require.NoError(t, err)

		net := 1000 * (1 - usecases.SwapFeeRate)
		wantOut := net * pool.ReserveWAL / (pool.ReserveSUI + net)
		assert.InDelta(t, wantOut, quote.AmountOut, 1e-9)
		assert.InDelta(t, 1000*usecases.SwapFeeRate, quote.Fee, 1e-9)
		assert.InDelta(t, 0.5, quote.SpotPrice, 1e-9)
		assert.Less(t, quote.ExecutionPrice, quote.SpotPrice, "execution always worse than spot")
	})

	t.Run("output can never exceed the reserve", func(t *testing.T) {
		quote, err := f.uc.Quote(entities.TokenSUI, entities.TokenWAL, 1e12, pool)
		require.NoError(t, err)
		assert.Less(t, quote.AmountOut, pool.ReserveWAL)
	})

	t.Run("output grows strictly with input", func(t *testing.T) {
		amounts := []float64{10, 100, 1_000, 10_000, 100_000}
		prev := 0.0
		for _, amount := range amounts {
			quote, err := f.uc.Quote(entities.TokenSUI, entities.TokenWAL, amount, pool)
			require.NoError(t, err)
			assert.Greater(t, quote.AmountOut, prev, "amountIn %v", amount)
			prev = quote.AmountOut
		}
	})

	t.Run("price impact grows with size", func(t *testing.T) {
		small, err := f.uc.Quote(entities.TokenSUI, entities.TokenWAL, 100, pool)
		require.NoError(t, err)
		large, err := f.uc.Quote(entities.TokenSUI, entities.TokenWAL, 100_000, pool)
		require.NoError(t, err)
		assert.Greater(t, large.PriceImpact, small.PriceImpact)
	})

	t.Run("reverse direction uses mirrored reserves", func(t *testing.T) {
		quote, err := f.uc.Quote(entities.TokenWAL, entities.TokenSUI, 1000, pool)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, quote.SpotPrice, 1e-9)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := f.uc.Quote(entities.Token("DOGE"), entities.TokenWAL, 1000, pool)
		require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

		_, err = f.uc.Quote(entities.TokenSUI, entities.TokenSUI, 1000, pool)
		require.ErrorIs(t, err, domainerrors.ErrSameAsset)

		_, err = f.uc.Quote(entities.TokenSUI, entities.TokenWAL, usecases.MinSwapAmount/2, pool)
		require.ErrorIs(t, err, domainerrors.ErrBelowMinimum)
	})
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	input := &entities.ExecuteSwapInput{
		FromToken: entities.TokenSUI,
		ToToken:   entities.TokenWAL,
		AmountIn:  1000,
	}

	t.Run("moves balances and advances the reserves", func(t *testing.T) {
		f := newSwapFixture()
		pool := seededPool()
		f.poolRepo.On("Get", ctx).Return(pool, nil)
		f.balances.On("GetBalance", ctx, traderWallet, entities.TokenSUI).Return(5000.0, nil)
		f.poolRepo.On("CompareAndSwap", ctx, mock.AnythingOfType("*entities.LiquidityPool"), int64(7)).
			Run(func(args mock.Arguments) {
				next := args.Get(1).(*entities.LiquidityPool)
				assert.InDelta(t, pool.ReserveSUI+1000, next.ReserveSUI, 1e-9)
				assert.Less(t, next.ReserveWAL, pool.ReserveWAL)
			}).Return(nil)
		f.balances.On("Debit", ctx, traderWallet, entities.TokenSUI, 1000.0).Return(nil)
		f.balances.On("Credit", ctx, traderWallet, entities.TokenWAL, mock.AnythingOfType("float64")).Return(nil)
		f.poolRepo.On("CreateSwap", ctx, mock.AnythingOfType("*entities.SwapRecord")).Return(nil)

		record, err := f.uc.Execute(ctx, traderWallet, input)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, record.AmountIn)
		assert.Greater(t, record.AmountOut, 0.0)
		assert.InDelta(t, 1000*usecases.SwapFeeRate, record.Fee, 1e-9)
	})

	t.Run("retries on a stale pool version", func(t *testing.T) {
		f := newSwapFixture()
		f.poolRepo.On("Get", ctx).Return(seededPool(), nil)
		f.balances.On("GetBalance", ctx, traderWallet, entities.TokenSUI).Return(5000.0, nil)
		f.poolRepo.On("CompareAndSwap", ctx, mock.Anything, int64(7)).
			Return(domainerrors.ErrAlreadyExists).Once()
		f.poolRepo.On("CompareAndSwap", ctx, mock.Anything, int64(7)).Return(nil)
		f.balances.On("Debit", ctx, traderWallet, entities.TokenSUI, 1000.0).Return(nil)
		f.balances.On("Credit", ctx, traderWallet, entities.TokenWAL, mock.AnythingOfType("float64")).Return(nil)
		f.poolRepo.On("CreateSwap", ctx, mock.AnythingOfType("*entities.SwapRecord")).Return(nil)

		_, err := f.uc.Execute(ctx, traderWallet, input)
		require.NoError(t, err)
		f.poolRepo.AssertNumberOfCalls(t, "Get", 2)
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		f := newSwapFixture()
		f.poolRepo.On("Get", ctx).Return(seededPool(), nil)
		f.balances.On("GetBalance", ctx, traderWallet, entities.TokenSUI).Return(5000.0, nil)
		f.poolRepo.On("CompareAndSwap", ctx, mock.Anything, int64(7)).Return(domainerrors.ErrAlreadyExists)

		_, err := f.uc.Execute(ctx, traderWallet, input)
		require.ErrorIs(t, err, domainerrors.ErrExternalService)
		f.balances.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("explicit slippage bound is enforced", func(t *testing.T) {
		f := newSwapFixture()
		f.poolRepo.On("Get", ctx).Return(seededPool(), nil)

		bounded := *input
		bounded.MinAmountOut = 600 // curve tops out just under 498 for this size
		_, err := f.uc.Execute(ctx, traderWallet, &bounded)
		require.ErrorIs(t, err, domainerrors.ErrSlippageExceeded)
		f.balances.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("underfunded wallet is rejected before any movement", func(t *testing.T) {
		f := newSwapFixture()
		f.poolRepo.On("Get", ctx).Return(seededPool(), nil)
		f.balances.On("GetBalance", ctx, traderWallet, entities.TokenSUI).Return(10.0, nil)

		_, err := f.uc.Execute(ctx, traderWallet, input)
		require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
		f.poolRepo.AssertNotCalled(t, "CompareAndSwap", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed output credit unwinds the debit and the reserves", func(t *testing.T) {
		f := newSwapFixture()
		f.poolRepo.On("Get", ctx).Return(seededPool(), nil)
		f.balances.On("GetBalance", ctx, traderWallet, entities.TokenSUI).Return(5000.0, nil)
		f.poolRepo.On("CompareAndSwap", ctx, mock.Anything, int64(7)).
			Run(func(args mock.Arguments) {
				// Mirror the repository contract: a successful CAS bumps the
				// version on the passed snapshot.
				args.Get(1).(*entities.LiquidityPool).Version = 8
			}).Return(nil).Once()
		f.balances.On("Debit", ctx, traderWallet, entities.TokenSUI, 1000.0).Return(nil)
		f.balances.On("Credit", ctx, traderWallet, entities.TokenWAL, mock.AnythingOfType("float64")).
			Return(errors.New("ledger down"))
		// Compensation: refund the debit, CAS the reserves back.
		f.balances.On("Credit", ctx, traderWallet, entities.TokenSUI, 1000.0).Return(nil)
		f.poolRepo.On("CompareAndSwap", ctx, mock.Anything, int64(8)).Return(nil).Once()

		_, err := f.uc.Execute(ctx, traderWallet, input)
		require.ErrorIs(t, err, domainerrors.ErrExternalService)
		f.balances.AssertCalled(t, "Credit", ctx, traderWallet, entities.TokenSUI, 1000.0)
		f.poolRepo.AssertNotCalled(t, "CreateSwap", mock.Anything, mock.Anything)
	})
}

func TestPoolInfoSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newSwapFixture()
	f.poolRepo.On("Get", ctx).Return(seededPool(), nil)

	info, err := f.uc.PoolInfo(ctx)
	require.NoError(t, err)
	assert.InDelta(t, usecases.SeedReserveSUI, info.ReserveSUI, 1e-9)
	assert.InDelta(t, 0.5, info.CurrentPrice, 1e-9)
	assert.Equal(t, usecases.SwapFeeRate, info.FeeRate)
}

func TestBalancesSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newSwapFixture()
	f.balances.On("GetBalance", ctx, traderWallet, entities.TokenSUI).Return(12.5, nil)
	f.balances.On("GetBalance", ctx, traderWallet, entities.TokenWAL).Return(0.0, nil)

	balances, err := f.uc.Balances(ctx, traderWallet)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, balances[entities.TokenSUI], 1e-9)
	assert.Zero(t, balances[entities.TokenWAL])
}
