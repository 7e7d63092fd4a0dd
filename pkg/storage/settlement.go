package storage

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
)

// SettlementStore defines the privileged interface for settling a wager.
// The stake debit and payout credit are applied as one net delta under a
// single lock acquisition, so coins are never observable in an inconsistent
// intermediate state. It should only be exposed to the game managers.
type SettlementStore interface {
	// SettleWager debits the stake and credits the payout as one unit,
	// recording the outcome and an audit entry. It fails with
	// ErrInsufficientFunds (no mutation) when the user's coins are below
	// the stake. Returns the recorded outcome including the new coin balance.
	SettleWager(ctx context.Context, wager *models.Wager) (*models.GameOutcome, error)
}
