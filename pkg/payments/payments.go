// Package payments implements the deposit/withdraw request lifecycle on top
// of the ledger store. Every public operation returns a structured Result and
// never lets an error escape across the boundary.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// Manager drives the PENDING -> COMPLETED | REJECTED payment state machine.
// All state transitions happen inside the store; the manager validates
// amounts against the method catalog and shapes the results.
type Manager struct {
	store  storage.PaymentStore
	eco    *config.Economy
	logger *slog.Logger
}

// New creates a payment workflow manager.
func New(store storage.PaymentStore, eco *config.Economy, logger *slog.Logger) *Manager {
	return &Manager{store: store, eco: eco, logger: logger}
}

// Result is the structured outcome every workflow operation returns.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payment *models.Payment `json:"payment,omitempty"`
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// Method describes one payment method from the catalog, keyed for the API.
type Method struct {
	Key string `json:"key"`
	config.PaymentMethod
}

// Methods lists the supported payment methods, ordered by key.
func (m *Manager) Methods() []Method {
	out := make([]Method, 0, len(m.eco.Methods))
	for key, method := range m.eco.Methods {
		if !method.Supported {
			continue
		}
		out = append(out, Method{Key: key, PaymentMethod: method})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// RequestDeposit validates the amount against the method's limits, computes
// fee and net amount, and records a PENDING deposit. The user's balance is
// not touched; the credit happens only at confirmation. Small deposits on
// allow-listed methods are confirmed immediately through the same Confirm
// path with a system confirmer.
func (m *Manager) RequestDeposit(ctx context.Context, userID int64, amount decimal.Decimal, method string) Result {
	pm, ok := m.eco.Methods[method]
	if !ok || !pm.Supported {
		return failure(fmt.Sprintf("payment method %q is not supported", method))
	}
	if amount.LessThan(pm.MinAmount) {
		return failure(fmt.Sprintf("minimum deposit via %s is %s", pm.Name, pm.MinAmount))
	}
	if amount.GreaterThan(pm.MaxAmount) {
		return failure(fmt.Sprintf("maximum deposit via %s is %s", pm.Name, pm.MaxAmount))
	}

	fee := amount.Mul(pm.FeePercent).Div(decimal.NewFromInt(100)).Round(2)
	draft := &models.Payment{
		UserId:    userID,
		Type:      models.DEPOSIT,
		Amount:    amount,
		Fee:       fee,
		NetAmount: amount.Sub(fee),
		Method:    method,
	}

	p, err := m.store.AddPayment(ctx, draft)
	if err != nil {
		return failure(m.describe(err))
	}

	if m.autoConfirmable(amount, method) {
		confirmed, err := m.store.ConfirmPayment(ctx, p.Id, "system")
		if err == nil {
			return Result{
				Success: true,
				Message: fmt.Sprintf("deposit %s confirmed automatically, %s credited", confirmed.Reference, confirmed.NetAmount),
				Payment: confirmed,
			}
		}
		// Fall back to the manual flow; the payment is still PENDING.
		m.logger.Warn("auto-confirmation failed, leaving payment pending",
			"payment_id", p.Id, "error", err)
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("deposit %s created: send %s to %s %s (processing %s)",
			p.Reference, amount, pm.Name, pm.Number, pm.ProcessingTime),
		Payment: p,
	}
}

// RequestWithdraw validates the amount and destination, then asks the store
// to reserve the funds and record the PENDING withdrawal as one atomic unit.
// If the reservation fails, no payment record exists.
func (m *Manager) RequestWithdraw(ctx context.Context, userID int64, amount decimal.Decimal, method, destination string) Result {
	pm, ok := m.eco.Methods[method]
	if !ok || !pm.Supported {
		return failure(fmt.Sprintf("payment method %q is not supported", method))
	}
	if amount.LessThan(pm.MinAmount) {
		return failure(fmt.Sprintf("minimum withdrawal via %s is %s", pm.Name, pm.MinAmount))
	}
	if amount.GreaterThan(pm.MaxAmount) {
		return failure(fmt.Sprintf("maximum withdrawal via %s is %s", pm.Name, pm.MaxAmount))
	}
	if destination == "" {
		return failure("a destination account number is required")
	}

	fee := amount.Mul(pm.FeePercent).Div(decimal.NewFromInt(100)).Round(2)
	draft := &models.Payment{
		UserId:      userID,
		Type:        models.WITHDRAW,
		Amount:      amount,
		Fee:         fee,
		NetAmount:   amount.Sub(fee),
		Method:      method,
		Destination: destination,
	}

	p, err := m.store.AddPayment(ctx, draft)
	if err != nil {
		return failure(m.describe(err))
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("withdrawal %s requested: %s reserved, payout of %s to %s pending review",
			p.Reference, p.Amount, p.NetAmount, destination),
		Payment: p,
	}
}

// Confirm moves a PENDING payment to COMPLETED. Calling it twice on the same
// id fails the status check, preventing double-credit.
func (m *Manager) Confirm(ctx context.Context, paymentID, confirmer string) Result {
	p, err := m.store.ConfirmPayment(ctx, paymentID, confirmer)
	if err != nil {
		return failure(m.describe(err))
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("payment %s confirmed by %s", p.Reference, confirmer),
		Payment: p,
	}
}

// Reject moves a PENDING payment to REJECTED, refunding a withdrawal's
// reserved amount in full.
func (m *Manager) Reject(ctx context.Context, paymentID, confirmer, reason string) Result {
	p, err := m.store.RejectPayment(ctx, paymentID, confirmer, reason)
	if err != nil {
		return failure(m.describe(err))
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("payment %s rejected: %s", p.Reference, reason),
		Payment: p,
	}
}

// History lists a user's payments, newest first.
func (m *Manager) History(ctx context.Context, userID int64) ([]models.Payment, error) {
	return m.store.ListPaymentsByUser(ctx, userID)
}

func (m *Manager) autoConfirmable(amount decimal.Decimal, method string) bool {
	if amount.GreaterThan(m.eco.AutoConfirmMax) {
		return false
	}
	for _, allowed := range m.eco.AutoConfirmMethods {
		if allowed == method {
			return true
		}
	}
	return false
}

// describe maps the storage error taxonomy to human-readable messages.
func (m *Manager) describe(err error) string {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return "payment or user not found"
	case errors.Is(err, storage.ErrInvalidTransition):
		return "payment has already been processed"
	case errors.Is(err, storage.ErrInsufficientFunds):
		return "insufficient balance"
	case errors.Is(err, storage.ErrLimitExceeded):
		return "daily withdrawal limit exceeded"
	case errors.Is(err, storage.ErrPersistenceFailure):
		return "could not save the operation, please retry"
	default:
		m.logger.Error("unexpected payment workflow error", "error", err)
		return "internal error"
	}
}
