package gateways

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"nick-exchange.backend/internal/domain/entities"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/internal/infrastructure/models"
)

// BalanceLedger implements BalanceService on the balances table. Debit is
// guarded by a conditional update so concurrent debits cannot overdraw.
type BalanceLedger struct {
	db *gorm.DB
}

// NewBalanceLedger creates a new balance ledger
func NewBalanceLedger(db *gorm.DB) *BalanceLedger {
	return &BalanceLedger{db: db}
}

// GetBalance returns the wallet's holding of the token, zero when no row exists
func (l *BalanceLedger) GetBalance(ctx context.Context, wallet string, token entities.Token) (float64, error) {
	var m models.Balance
	err := l.db.WithContext(ctx).
		Where("wallet_address = ? AND token = ?", wallet, string(token)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return m.Amount, nil
}

// Debit subtracts amount from the wallet's holding. Returns
// ErrInsufficientFunds when the holding does not cover the amount.
func (l *BalanceLedger) Debit(ctx context.Context, wallet string, token entities.Token, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount must be non-negative: %w", domainerrors.ErrInvalidInput)
	}
	result := l.db.WithContext(ctx).Model(&models.Balance{}).
		Where("wallet_address = ? AND token = ? AND amount >= ?", wallet, string(token), amount).
		Updates(map[string]interface{}{
			"amount":     gorm.Expr("amount - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("debit %s %s from %s: %w", formatAmount(amount), token, wallet, domainerrors.ErrInsufficientFunds)
	}
	return nil
}

// Credit adds amount to the wallet's holding, creating the row when absent
func (l *BalanceLedger) Credit(ctx context.Context, wallet string, token entities.Token, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must be non-negative: %w", domainerrors.ErrInvalidInput)
	}
	result := l.db.WithContext(ctx).Model(&models.Balance{}).
		Where("wallet_address = ? AND token = ?", wallet, string(token)).
		Updates(map[string]interface{}{
			"amount":     gorm.Expr("amount + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	m := models.Balance{
		WalletAddress: wallet,
		Token:         string(token),
		Amount:        amount,
	}
	return l.db.WithContext(ctx).Create(&m).Error
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%g", amount)
}
