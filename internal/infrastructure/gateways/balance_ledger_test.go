package gateways

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
)

func TestBalanceLedger_CreditCreatesAndAccumulates(t *testing.T) {
	db := newTestDB(t)
	createBalanceTable(t, db)
	ledger := NewBalanceLedger(db)
	ctx := context.Background()

	got, err := ledger.GetBalance(ctx, "0xabc", entities.TokenSUI)
	require.NoError(t, err)
	require.Zero(t, got)

	require.NoError(t, ledger.Credit(ctx, "0xabc", entities.TokenSUI, 100))
	require.NoError(t, ledger.Credit(ctx, "0xabc", entities.TokenSUI, 50))

	got, err = ledger.GetBalance(ctx, "0xabc", entities.TokenSUI)
	require.NoError(t, err)
	require.Equal(t, 150.0, got)

	// tokens are tracked independently
	got, err = ledger.GetBalance(ctx, "0xabc", entities.TokenWAL)
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestBalanceLedger_DebitGuardsOverdraw(t *testing.T) {
	db := newTestDB(t)
	createBalanceTable(t, db)
	ledger := NewBalanceLedger(db)
	ctx := context.Background()

	require.NoError(t, ledger.Credit(ctx, "0xabc", entities.TokenWAL, 100))

	require.NoError(t, ledger.Debit(ctx, "0xabc", entities.TokenWAL, 40))
	got, err := ledger.GetBalance(ctx, "0xabc", entities.TokenWAL)
	require.NoError(t, err)
	require.Equal(t, 60.0, got)

	err = ledger.Debit(ctx, "0xabc", entities.TokenWAL, 60.01)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	// debiting a wallet with no row at all also fails
	err = ledger.Debit(ctx, "0xnone", entities.TokenWAL, 1)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	// exact balance can be drained
	require.NoError(t, ledger.Debit(ctx, "0xabc", entities.TokenWAL, 60))
	got, err = ledger.GetBalance(ctx, "0xabc", entities.TokenWAL)
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestBalanceLedger_RejectsNegativeAmounts(t *testing.T) {
	db := newTestDB(t)
	createBalanceTable(t, db)
	ledger := NewBalanceLedger(db)
	ctx := context.Background()

	require.ErrorIs(t, ledger.Credit(ctx, "0xabc", entities.TokenSUI, -1), domainerrors.ErrInvalidInput)
	require.ErrorIs(t, ledger.Debit(ctx, "0xabc", entities.TokenSUI, -1), domainerrors.ErrInvalidInput)
}
