package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/sakib/coinledger/pkg/metrics"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// GetPayment retrieves a payment by id.
func (s *Store) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *p
	return &out, nil
}

// ListPaymentsByUser retrieves all payments for a user, newest first.
func (s *Store) ListPaymentsByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Payment
	for _, p := range s.payments {
		if p.UserId == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

// AddPayment completes the draft with server-side details, sets the status to
// PENDING and appends the mirrored transaction record. For a WITHDRAW it also
// enforces the daily cap and reserves the requested amount from the user's
// balance; the reservation, the record and the write-through are one atomic
// unit under the lock.
func (s *Store) AddPayment(ctx context.Context, draft *models.Payment) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[draft.UserId]
	if !ok {
		return nil, storage.ErrNotFound
	}

	now := time.Now().UTC()
	if draft.Type == models.WITHDRAW {
		if s.eco.MaxWithdrawDaily.IsPositive() {
			today := s.withdrawnTodayLocked(draft.UserId, now)
			if today.Add(draft.Amount).GreaterThan(s.eco.MaxWithdrawDaily) {
				return nil, storage.ErrLimitExceeded
			}
		}
		if u.Balance.LessThan(draft.Amount) {
			return nil, storage.ErrInsufficientFunds
		}
	}

	p := *draft
	p.Id = newID()
	p.Reference = newReference(now)
	p.Status = models.PENDING
	p.RequestedAt = now

	prevUser := *u
	prevTx := s.transactions
	prevLogs := s.logs

	if p.Type == models.WITHDRAW {
		// Optimistic reservation: the requested amount leaves the balance now
		// and is refunded in full only if the payment is later rejected.
		u.Balance = u.Balance.Sub(p.Amount)
	}
	u.LastActive = now

	s.payments[p.Id] = &p
	s.appendTransactionLocked(models.Transaction{
		UserId:    p.UserId,
		Type:      txTypeFor(p.Type),
		Amount:    p.Amount,
		Status:    models.PENDING,
		Reference: p.Id,
	})
	s.appendLogLocked("payment", string(p.Type)+" requested", p.UserId, map[string]string{
		"payment_id": p.Id,
		"reference":  p.Reference,
		"amount":     p.Amount.String(),
		"method":     p.Method,
	})

	if err := s.saveLocked(collUsers, collPayments, collTransactions, collLogs); err != nil {
		*u = prevUser
		delete(s.payments, p.Id)
		s.transactions = prevTx
		s.logs = prevLogs
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(string(p.Type), string(models.PENDING)).Inc()
	out := p
	return &out, nil
}

// ConfirmPayment moves a PENDING payment to COMPLETED. The status check makes
// confirmation idempotent-safe: a second call fails with ErrInvalidTransition
// and produces no balance change.
func (s *Store) ConfirmPayment(ctx context.Context, paymentID, confirmer string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if p.Status != models.PENDING {
		return nil, storage.ErrInvalidTransition
	}
	u, ok := s.users[p.UserId]
	if !ok {
		return nil, storage.ErrNotFound
	}

	now := time.Now().UTC()
	prevPayment := *p
	prevUser := *u
	prevTx := s.transactions
	prevLogs := s.logs

	bonus := decimal.Zero
	if p.Type == models.DEPOSIT {
		// The net amount is credited only now, never at request time.
		u.Balance = u.Balance.Add(p.NetAmount)
		if !s.hasCompletedDepositLocked(p.UserId) {
			bonus = decimal.Min(
				p.Amount.Mul(s.eco.FirstDepositBonusPercent).Div(decimal.NewFromInt(100)),
				s.eco.FirstDepositBonusCap,
			).RoundDown(2)
			u.Balance = u.Balance.Add(bonus)
		}
	}
	// For a WITHDRAW no balance change occurs: funds were reserved at request time.

	p.Status = models.COMPLETED
	p.ConfirmedAt = &now
	p.ConfirmedBy = confirmer
	u.LastActive = now

	s.appendTransactionLocked(models.Transaction{
		UserId:    p.UserId,
		Type:      txTypeFor(p.Type),
		Amount:    p.Amount,
		Status:    models.COMPLETED,
		Reference: p.Id,
	})
	logData := map[string]string{
		"payment_id": p.Id,
		"confirmer":  confirmer,
		"amount":     p.Amount.String(),
	}
	if bonus.IsPositive() {
		logData["first_deposit_bonus"] = bonus.String()
	}
	s.appendLogLocked("payment", string(p.Type)+" confirmed", p.UserId, logData)

	if err := s.saveLocked(collUsers, collPayments, collTransactions, collLogs); err != nil {
		*p = prevPayment
		*u = prevUser
		s.transactions = prevTx
		s.logs = prevLogs
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(string(p.Type), string(models.COMPLETED)).Inc()
	out := *p
	return &out, nil
}

// RejectPayment moves a PENDING payment to REJECTED, refunding the reserved
// amount in full for a WITHDRAW. A payment is immutable once it leaves
// PENDING, so the same guards as ConfirmPayment apply.
func (s *Store) RejectPayment(ctx context.Context, paymentID, confirmer, reason string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if p.Status != models.PENDING {
		return nil, storage.ErrInvalidTransition
	}
	u, ok := s.users[p.UserId]
	if !ok {
		return nil, storage.ErrNotFound
	}

	now := time.Now().UTC()
	prevPayment := *p
	prevUser := *u
	prevTx := s.transactions
	prevLogs := s.logs

	if p.Type == models.WITHDRAW {
		u.Balance = u.Balance.Add(p.Amount)
	}
	// For a DEPOSIT no balance change occurs: none was ever applied.

	p.Status = models.REJECTED
	p.RejectedAt = &now
	p.RejectedBy = confirmer
	p.RejectReason = reason
	u.LastActive = now

	s.appendTransactionLocked(models.Transaction{
		UserId:    p.UserId,
		Type:      txTypeFor(p.Type),
		Amount:    p.Amount,
		Status:    models.REJECTED,
		Reference: p.Id,
	})
	s.appendLogLocked("payment", string(p.Type)+" rejected", p.UserId, map[string]string{
		"payment_id": p.Id,
		"confirmer":  confirmer,
		"reason":     reason,
	})

	if err := s.saveLocked(collUsers, collPayments, collTransactions, collLogs); err != nil {
		*p = prevPayment
		*u = prevUser
		s.transactions = prevTx
		s.logs = prevLogs
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(string(p.Type), string(models.REJECTED)).Inc()
	out := *p
	return &out, nil
}

// withdrawnTodayLocked sums the user's PENDING and COMPLETED withdrawals
// requested on the same UTC day as now.
func (s *Store) withdrawnTodayLocked(userID int64, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.payments {
		if p.UserId != userID || p.Type != models.WITHDRAW {
			continue
		}
		if p.Status == models.REJECTED {
			continue
		}
		if sameUTCDay(p.RequestedAt, now) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// hasCompletedDepositLocked reports whether the user already has a COMPLETED
// deposit, which disqualifies them from the first-deposit bonus.
func (s *Store) hasCompletedDepositLocked(userID int64) bool {
	for _, p := range s.payments {
		if p.UserId == userID && p.Type == models.DEPOSIT && p.Status == models.COMPLETED {
			return true
		}
	}
	return false
}

func txTypeFor(pt models.PaymentType) models.TransactionType {
	if pt == models.WITHDRAW {
		return models.TxWithdraw
	}
	return models.TxDeposit
}
