package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sakib/coinledger/pkg/metrics"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
)

// SettleWager performs the paired stake debit and payout credit as a single
// net delta under one lock acquisition, so coins are never observable in an
// inconsistent intermediate state. A win, loss or draw is just the sign of
// net = payout - stake.
func (s *Store) SettleWager(ctx context.Context, wager *models.Wager) (*models.GameOutcome, error) {
	if wager.Stake < 0 {
		return nil, fmt.Errorf("%w: negative stake %d", storage.ErrLimitExceeded, wager.Stake)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[wager.UserId]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if u.Coins < wager.Stake {
		return nil, storage.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	net := wager.Payout - wager.Stake

	prevUser := *u
	prevHistory := s.history
	prevTx := s.transactions
	prevLogs := s.logs

	u.Coins += net
	if net > 0 {
		u.TotalEarned += net
	} else if net < 0 {
		u.TotalSpent += -net
	}
	u.LastActive = now

	outcome := models.GameOutcome{
		Id:         newID(),
		UserId:     wager.UserId,
		Game:       wager.Game,
		Stake:      wager.Stake,
		Payout:     wager.Payout,
		Net:        net,
		Result:     wager.Result,
		Detail:     wager.Detail,
		CoinsAfter: u.Coins,
		Timestamp:  now,
	}
	s.history = append(s.history, outcome)

	s.appendTransactionLocked(models.Transaction{
		UserId:    wager.UserId,
		Type:      models.TxWager,
		Coins:     net,
		Status:    models.COMPLETED,
		Reference: outcome.Id,
	})
	s.appendLogLocked("wager", wager.Game+" settled", wager.UserId, map[string]string{
		"result": string(wager.Result),
		"stake":  strconv.FormatInt(wager.Stake, 10),
		"payout": strconv.FormatInt(wager.Payout, 10),
	})

	if err := s.saveLocked(collUsers, collGameHistory, collTransactions, collLogs); err != nil {
		*u = prevUser
		s.history = prevHistory
		s.transactions = prevTx
		s.logs = prevLogs
		return nil, err
	}

	metrics.WagersTotal.WithLabelValues(wager.Game, string(wager.Result)).Inc()
	out := outcome
	return &out, nil
}
