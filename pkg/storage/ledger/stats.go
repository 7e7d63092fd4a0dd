package ledger

import (
	"context"
	"time"

	"github.com/sakib/coinledger/pkg/models"
	"github.com/shopspring/decimal"
)

// Stats computes derived ledger totals under the lock, so the numbers are a
// consistent point-in-time view.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	weekAgo := now.AddDate(0, 0, -7)

	st := &models.Stats{
		TotalUsers:       len(s.users),
		TotalBalance:     decimal.Zero,
		DepositsToday:    decimal.Zero,
		WithdrawalsToday: decimal.Zero,
		WagersSettled:    len(s.history),
	}

	for _, u := range s.users {
		st.TotalCoins += u.Coins
		st.TotalBalance = st.TotalBalance.Add(u.Balance)
		if u.LastActive.After(weekAgo) {
			st.ActiveUsers7d++
		}
		if sameUTCDay(u.CreatedAt, now) {
			st.NewUsersToday++
		}
	}

	for _, p := range s.payments {
		switch p.Status {
		case models.PENDING:
			st.PendingPayments++
		case models.COMPLETED:
			st.CompletedPayments++
		case models.REJECTED:
			st.RejectedPayments++
		}
		if p.Status == models.COMPLETED && sameUTCDay(p.RequestedAt, now) {
			switch p.Type {
			case models.DEPOSIT:
				st.DepositsToday = st.DepositsToday.Add(p.Amount)
			case models.WITHDRAW:
				st.WithdrawalsToday = st.WithdrawalsToday.Add(p.Amount)
			}
		}
	}

	return st, nil
}
