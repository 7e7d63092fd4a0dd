// Package api holds the request and response types of the HTTP boundary.
// The chat, admin and game front-ends consume these shapes; internal domain
// models never cross the wire directly.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewUser is the request body for creating an account.
type NewUser struct {
	Id        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// UpdateUser carries the merge-patch fields for an account.
type UpdateUser struct {
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
}

// User is the API representation of a ledger account.
type User struct {
	Id          int64           `json:"id"`
	Username    string          `json:"username,omitempty"`
	FirstName   string          `json:"first_name,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	Coins       int64           `json:"coins"`
	TotalEarned int64           `json:"total_earned"`
	TotalSpent  int64           `json:"total_spent"`
	DailyStreak int             `json:"daily_streak"`
	LastActive  time.Time       `json:"last_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Payment is the API representation of a deposit or withdrawal request.
type Payment struct {
	Id           string          `json:"id"`
	Reference    string          `json:"reference"`
	UserId       int64           `json:"user_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	Method       string          `json:"method"`
	Destination  string          `json:"destination,omitempty"`
	Status       string          `json:"status"`
	RequestedAt  time.Time       `json:"requested_at"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	ConfirmedBy  string          `json:"confirmed_by,omitempty"`
	RejectedAt   *time.Time      `json:"rejected_at,omitempty"`
	RejectedBy   string          `json:"rejected_by,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`
}

// DepositRequest is the request body for a deposit.
type DepositRequest struct {
	UserId int64           `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

// WithdrawRequest is the request body for a withdrawal.
type WithdrawRequest struct {
	UserId      int64           `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Destination string          `json:"destination"`
}

// ConfirmRequest is the request body for confirming a payment.
type ConfirmRequest struct {
	Confirmer string `json:"confirmer"`
}

// RejectRequest is the request body for rejecting a payment.
type RejectRequest struct {
	Confirmer string `json:"confirmer"`
	Reason    string `json:"reason"`
}

// WagerRequest is the request body for any game play. Call is used by the
// coin flip, Guess by the number guess; the other games ignore them.
type WagerRequest struct {
	UserId int64  `json:"user_id"`
	Bet    int64  `json:"bet"`
	Call   string `json:"call,omitempty"`
	Guess  int    `json:"guess,omitempty"`
}

// PurchaseRequest is the request body for a shop purchase.
type PurchaseRequest struct {
	UserId   int64  `json:"user_id"`
	ItemId   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// GameOutcome is the API representation of a settled wager.
type GameOutcome struct {
	Id         string    `json:"id"`
	UserId     int64     `json:"user_id"`
	Game       string    `json:"game"`
	Stake      int64     `json:"stake"`
	Payout     int64     `json:"payout"`
	Net        int64     `json:"net"`
	Result     string    `json:"result"`
	Detail     string    `json:"detail,omitempty"`
	CoinsAfter int64     `json:"coins_after"`
	Timestamp  time.Time `json:"timestamp"`
}

// Transaction is the API representation of an audit transaction record.
type Transaction struct {
	Id        string          `json:"id"`
	UserId    int64           `json:"user_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Coins     int64           `json:"coins"`
	Status    string          `json:"status"`
	Reference string          `json:"reference,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// AuditEntry is the API representation of an audit log entry.
type AuditEntry struct {
	Id        string            `json:"id"`
	Kind      string            `json:"kind"`
	Message   string            `json:"message"`
	UserId    int64             `json:"user_id,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// PaymentResult is the envelope returned by every payment operation.
type PaymentResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Payment *Payment `json:"payment,omitempty"`
}

// WagerResult is the envelope returned by every game play.
type WagerResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Outcome *GameOutcome `json:"outcome,omitempty"`
}

// PurchaseResult is the envelope returned by a shop purchase.
type PurchaseResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

// DailyBonusResult is the envelope returned by a daily bonus claim.
type DailyBonusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Coins   int64  `json:"coins,omitempty"`
	User    *User  `json:"user,omitempty"`
}
