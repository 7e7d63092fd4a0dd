package storage

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
)

// PaymentReader defines the interface for reading payment records.
type PaymentReader interface {
	// GetPayment retrieves a payment by its id.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// ListPaymentsByUser retrieves all payments for a specific user, newest first.
	ListPaymentsByUser(ctx context.Context, userID int64) ([]models.Payment, error)
}

// PaymentManager defines the interface for moving payments through the
// PENDING -> COMPLETED | REJECTED state machine.
type PaymentManager interface {
	// AddPayment assigns id, reference and timestamps to the draft, sets the
	// status to PENDING and appends a mirrored PENDING transaction record.
	// For a WITHDRAW it additionally enforces the daily withdrawal cap and
	// reserves the requested amount from the user's balance; the reservation
	// and the record creation are one atomic unit, so a failed reservation
	// leaves no orphan PENDING withdrawal.
	AddPayment(ctx context.Context, draft *models.Payment) (*models.Payment, error)

	// ConfirmPayment moves a PENDING payment to COMPLETED. For a DEPOSIT it
	// credits the net amount plus any first-deposit bonus; for a WITHDRAW no
	// balance change occurs since funds were reserved at request time.
	ConfirmPayment(ctx context.Context, paymentID, confirmer string) (*models.Payment, error)

	// RejectPayment moves a PENDING payment to REJECTED. For a WITHDRAW the
	// reserved amount is refunded in full; for a DEPOSIT no balance change
	// occurs since none was ever applied.
	RejectPayment(ctx context.Context, paymentID, confirmer, reason string) (*models.Payment, error)
}

// PaymentStore combines the reader and manager interfaces.
type PaymentStore interface {
	PaymentReader
	PaymentManager
}
