package gateways

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/infrastructure/models"
)

func TestCustodyVault_HoldIsExclusive(t *testing.T) {
	db := newTestDB(t)
	createCustodyTable(t, db)
	vault := NewCustodyVault(db)
	ctx := context.Background()

	assetID := uuid.New()
	custodyID, err := vault.Hold(ctx, assetID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, custodyID)

	_, err = vault.Hold(ctx, assetID)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// a released asset can be held again
	require.NoError(t, vault.Release(ctx, custodyID))
	_, err = vault.Hold(ctx, assetID)
	require.NoError(t, err)
}

func TestCustodyVault_ReleaseAndTransferCloseOnce(t *testing.T) {
	db := newTestDB(t)
	createCustodyTable(t, db)
	vault := NewCustodyVault(db)
	ctx := context.Background()

	custodyID, err := vault.Hold(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, vault.Transfer(ctx, custodyID, "0xbuyer"))

	var m models.CustodyRecord
	require.NoError(t, db.Where("id = ?", custodyID).First(&m).Error)
	require.Equal(t, models.CustodyStatusTransferred, m.Status)
	require.NotNil(t, m.HeldFor)
	require.Equal(t, "0xbuyer", *m.HeldFor)

	require.ErrorIs(t, vault.Release(ctx, custodyID), domainerrors.ErrAlreadyClosed)
	require.ErrorIs(t, vault.Transfer(ctx, custodyID, "0xother"), domainerrors.ErrAlreadyClosed)

	require.ErrorIs(t, vault.Release(ctx, uuid.New()), domainerrors.ErrNotFound)
}
