package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType distinguishes real-money deposits from withdrawals.
type PaymentType string

const (
	DEPOSIT  PaymentType = "DEPOSIT"
	WITHDRAW PaymentType = "WITHDRAW"
)

// PaymentStatus defines the possible states of a payment request.
// PENDING is the only non-terminal state; a payment is immutable once
// it reaches COMPLETED or REJECTED.
type PaymentStatus string

const (
	PENDING   PaymentStatus = "PENDING"
	COMPLETED PaymentStatus = "COMPLETED"
	REJECTED  PaymentStatus = "REJECTED"
)

// TransactionType classifies entries in the append-only transaction log.
type TransactionType string

const (
	TxDeposit  TransactionType = "DEPOSIT"
	TxWithdraw TransactionType = "WITHDRAW"
	TxWager    TransactionType = "WAGER"
	TxPurchase TransactionType = "PURCHASE"
	TxBonus    TransactionType = "BONUS"
)

// WagerResult classifies the outcome of a single game play.
type WagerResult string

const (
	WIN     WagerResult = "WIN"
	LOSE    WagerResult = "LOSE"
	DRAW    WagerResult = "DRAW"
	JACKPOT WagerResult = "JACKPOT"
)

// User is the internal domain model for a ledger account.
// Balance holds real currency (BDT) and is moved only by deposit/withdraw
// confirmation; Coins hold in-game currency moved by bonuses, purchases,
// and wager settlement. The two are never converted into each other.
type User struct {
	Id          int64           `json:"id"`
	Username    string          `json:"username"`
	FirstName   string          `json:"first_name"`
	Balance     decimal.Decimal `json:"balance"`
	Coins       int64           `json:"coins"`
	TotalEarned int64           `json:"total_earned"`
	TotalSpent  int64           `json:"total_spent"`
	DailyStreak int             `json:"daily_streak"`
	LastDaily   time.Time       `json:"last_daily"`
	LastActive  time.Time       `json:"last_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// UserUpdate carries the fields UpdateUser may merge into an existing
// user record. Nil means "leave unchanged".
type UserUpdate struct {
	Username  *string
	FirstName *string
}

// Payment is a deposit or withdrawal request moving through the
// PENDING -> COMPLETED | REJECTED state machine.
type Payment struct {
	Id           string          `json:"id"`
	Reference    string          `json:"reference"`
	UserId       int64           `json:"user_id"`
	Type         PaymentType     `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	Method       string          `json:"method"`
	Destination  string          `json:"destination,omitempty"`
	ExternalRef  string          `json:"external_ref,omitempty"`
	Status       PaymentStatus   `json:"status"`
	RequestedAt  time.Time       `json:"requested_at"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	ConfirmedBy  string          `json:"confirmed_by,omitempty"`
	RejectedAt   *time.Time      `json:"rejected_at,omitempty"`
	RejectedBy   string          `json:"rejected_by,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`
}

// Transaction is a single entry in the append-only audit log that
// mirrors every financial event. Entries are never mutated after
// creation; a status change on a payment appends a new entry.
type Transaction struct {
	Id        string          `json:"id"`
	UserId    int64           `json:"user_id"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Coins     int64           `json:"coins"`
	Status    PaymentStatus   `json:"status"`
	Reference string          `json:"reference"`
	Timestamp time.Time       `json:"timestamp"`
}

// Wager describes a single game play handed to settlement. Stake and
// Payout are coin amounts; Payout has already had the game's house
// edge applied by the caller.
type Wager struct {
	UserId int64
	Game   string
	Stake  int64
	Payout int64
	Result WagerResult
	Detail string
}

// GameOutcome records a settled wager. Immutable after creation.
type GameOutcome struct {
	Id         string      `json:"id"`
	UserId     int64       `json:"user_id"`
	Game       string      `json:"game"`
	Stake      int64       `json:"stake"`
	Payout     int64       `json:"payout"`
	Net        int64       `json:"net"`
	Result     WagerResult `json:"result"`
	Detail     string      `json:"detail,omitempty"`
	CoinsAfter int64       `json:"coins_after"`
	Timestamp  time.Time   `json:"timestamp"`
}

// AuditEntry is a free-form audit trail record, independent of the
// financial invariants. Retention is bounded; the oldest entries are
// pruned once the configured cap is exceeded.
type AuditEntry struct {
	Id        string            `json:"id"`
	Kind      string            `json:"kind"`
	Message   string            `json:"message"`
	UserId    int64             `json:"user_id,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Collections is the full exported state of the ledger, used by the
// backup/restore boundary.
type Collections struct {
	Users        map[int64]User     `json:"users"`
	Payments     map[string]Payment `json:"payments"`
	Transactions []Transaction      `json:"transactions"`
	GameHistory  []GameOutcome      `json:"game_history"`
	Logs         []AuditEntry       `json:"logs"`
}

// Stats holds derived ledger totals computed under the store lock.
type Stats struct {
	TotalUsers        int             `json:"total_users"`
	ActiveUsers7d     int             `json:"active_users_7d"`
	TotalCoins        int64           `json:"total_coins"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	PendingPayments   int             `json:"pending_payments"`
	CompletedPayments int             `json:"completed_payments"`
	RejectedPayments  int             `json:"rejected_payments"`
	DepositsToday     decimal.Decimal `json:"deposits_today"`
	WithdrawalsToday  decimal.Decimal `json:"withdrawals_today"`
	NewUsersToday     int             `json:"new_users_today"`
	WagersSettled     int             `json:"wagers_settled"`
}
