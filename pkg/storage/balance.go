package storage

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
	"github.com/shopspring/decimal"
)

// BalanceStore defines the only sanctioned way to change a user's money fields.
type BalanceStore interface {
	// MutateBalance applies the given balance and coin deltas to a user as a
	// single unit. The whole operation is rejected with ErrInsufficientFunds
	// if either resulting value would go negative; nothing is partially
	// applied. The reason is recorded in the audit log.
	MutateBalance(ctx context.Context, userID int64, deltaBalance decimal.Decimal, deltaCoins int64, reason string) (*models.User, error)

	// Purchase debits the coin price of a shop item and appends a mirrored
	// PURCHASE transaction record, atomically.
	Purchase(ctx context.Context, userID int64, itemID string, quantity int, totalCoins int64) (*models.User, error)
}
