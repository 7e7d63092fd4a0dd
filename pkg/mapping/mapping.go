package mapping

import (
	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/models"
)

// ToApiUser converts a domain User model to an API User model.
func ToApiUser(u *models.User) *api.User {
	return &api.User{
		Id:          u.Id,
		Username:    u.Username,
		FirstName:   u.FirstName,
		Balance:     u.Balance,
		Coins:       u.Coins,
		TotalEarned: u.TotalEarned,
		TotalSpent:  u.TotalSpent,
		DailyStreak: u.DailyStreak,
		LastActive:  u.LastActive,
		CreatedAt:   u.CreatedAt,
	}
}

// ToDomainNewUser converts an API NewUser model to a domain User model.
// Only the identity fields are carried; the store seeds the balances.
func ToDomainNewUser(newUser *api.NewUser) *models.User {
	return &models.User{
		Id:        newUser.Id,
		Username:  newUser.Username,
		FirstName: newUser.FirstName,
	}
}

// ToDomainUserUpdate converts an API UpdateUser model to a domain UserUpdate.
func ToDomainUserUpdate(update *api.UpdateUser) models.UserUpdate {
	return models.UserUpdate{
		Username:  update.Username,
		FirstName: update.FirstName,
	}
}

// ToApiPayment converts a domain Payment model to an API Payment model.
func ToApiPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		Id:           p.Id,
		Reference:    p.Reference,
		UserId:       p.UserId,
		Type:         string(p.Type),
		Amount:       p.Amount,
		Fee:          p.Fee,
		NetAmount:    p.NetAmount,
		Method:       p.Method,
		Destination:  p.Destination,
		Status:       string(p.Status),
		RequestedAt:  p.RequestedAt,
		ConfirmedAt:  p.ConfirmedAt,
		ConfirmedBy:  p.ConfirmedBy,
		RejectedAt:   p.RejectedAt,
		RejectedBy:   p.RejectedBy,
		RejectReason: p.RejectReason,
	}
}

// ToApiGameOutcome converts a domain GameOutcome model to an API model.
func ToApiGameOutcome(o *models.GameOutcome) *api.GameOutcome {
	return &api.GameOutcome{
		Id:         o.Id,
		UserId:     o.UserId,
		Game:       o.Game,
		Stake:      o.Stake,
		Payout:     o.Payout,
		Net:        o.Net,
		Result:     string(o.Result),
		Detail:     o.Detail,
		CoinsAfter: o.CoinsAfter,
		Timestamp:  o.Timestamp,
	}
}

// ToApiTransaction converts a domain Transaction model to an API model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:        tx.Id,
		UserId:    tx.UserId,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Coins:     tx.Coins,
		Status:    string(tx.Status),
		Reference: tx.Reference,
		Timestamp: tx.Timestamp,
	}
}

// ToApiAuditEntry converts a domain AuditEntry model to an API model.
func ToApiAuditEntry(e *models.AuditEntry) *api.AuditEntry {
	return &api.AuditEntry{
		Id:        e.Id,
		Kind:      e.Kind,
		Message:   e.Message,
		UserId:    e.UserId,
		Data:      e.Data,
		Timestamp: e.Timestamp,
	}
}
