// Package mocks provides hand-maintained testify mocks for the storage
// interfaces.
package mocks

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Storage is a mock implementation of the storage.Storage interface.
type Storage struct {
	mock.Mock
}

func (m *Storage) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *Storage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) ClaimDailyBonus(ctx context.Context, userID int64) (*models.User, int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *Storage) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *Storage) ListPaymentsByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *Storage) AddPayment(ctx context.Context, draft *models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *Storage) ConfirmPayment(ctx context.Context, paymentID, confirmer string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID, confirmer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *Storage) RejectPayment(ctx context.Context, paymentID, confirmer, reason string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID, confirmer, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *Storage) MutateBalance(ctx context.Context, userID int64, deltaBalance decimal.Decimal, deltaCoins int64, reason string) (*models.User, error) {
	args := m.Called(ctx, userID, deltaBalance, deltaCoins, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) Purchase(ctx context.Context, userID int64, itemID string, quantity int, totalCoins int64) (*models.User, error) {
	args := m.Called(ctx, userID, itemID, quantity, totalCoins)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) SettleWager(ctx context.Context, wager *models.Wager) (*models.GameOutcome, error) {
	args := m.Called(ctx, wager)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameOutcome), args.Error(1)
}

func (m *Storage) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *Storage) ListLogs(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEntry), args.Error(1)
}

func (m *Storage) AppendLog(ctx context.Context, kind, message string, userID int64, data map[string]string) error {
	args := m.Called(ctx, kind, message, userID, data)
	return args.Error(0)
}

func (m *Storage) Stats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func (m *Storage) ExportAll(ctx context.Context) (*models.Collections, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collections), args.Error(1)
}

func (m *Storage) ImportAll(ctx context.Context, collections *models.Collections) error {
	args := m.Called(ctx, collections)
	return args.Error(0)
}
