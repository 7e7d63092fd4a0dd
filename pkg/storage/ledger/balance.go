package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/sakib/coinledger/pkg/metrics"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// MutateBalance applies the balance and coin deltas as one unit. If either
// resulting value would go negative the whole operation is rejected with
// ErrInsufficientFunds and nothing is applied.
func (s *Store) MutateBalance(ctx context.Context, userID int64, deltaBalance decimal.Decimal, deltaCoins int64, reason string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	newBalance := u.Balance.Add(deltaBalance)
	newCoins := u.Coins + deltaCoins
	if newBalance.IsNegative() || newCoins < 0 {
		metrics.BalanceMutationFailures.Inc()
		return nil, storage.ErrInsufficientFunds
	}

	prev := *u
	prevLogs := s.logs

	u.Balance = newBalance
	u.Coins = newCoins
	if deltaCoins > 0 {
		u.TotalEarned += deltaCoins
	} else if deltaCoins < 0 {
		u.TotalSpent += -deltaCoins
	}
	u.LastActive = time.Now().UTC()

	s.appendLogLocked("balance", reason, userID, map[string]string{
		"delta_balance": deltaBalance.String(),
		"delta_coins":   strconv.FormatInt(deltaCoins, 10),
	})

	if err := s.saveLocked(collUsers, collLogs); err != nil {
		*u = prev
		s.logs = prevLogs
		return nil, err
	}

	out := *u
	return &out, nil
}

// Purchase debits the coin price of a shop item and mirrors the event into
// the transaction log, atomically.
func (s *Store) Purchase(ctx context.Context, userID int64, itemID string, quantity int, totalCoins int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if u.Coins < totalCoins {
		metrics.BalanceMutationFailures.Inc()
		return nil, storage.ErrInsufficientFunds
	}

	prev := *u
	prevTx := s.transactions
	prevLogs := s.logs

	u.Coins -= totalCoins
	u.TotalSpent += totalCoins
	u.LastActive = time.Now().UTC()

	s.appendTransactionLocked(models.Transaction{
		UserId:    userID,
		Type:      models.TxPurchase,
		Coins:     -totalCoins,
		Status:    models.COMPLETED,
		Reference: itemID,
	})
	s.appendLogLocked("shop", "item purchased", userID, map[string]string{
		"item":     itemID,
		"quantity": strconv.Itoa(quantity),
		"coins":    strconv.FormatInt(totalCoins, 10),
	})

	if err := s.saveLocked(collUsers, collTransactions, collLogs); err != nil {
		*u = prev
		s.transactions = prevTx
		s.logs = prevLogs
		return nil, err
	}

	out := *u
	return &out, nil
}
