package ledger

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
)

// GetUser retrieves a user by id. The returned record is a copy; callers
// never hold a reference into the store's own state.
func (s *Store) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *u
	return &out, nil
}

// ListUsers retrieves all user accounts ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

// CreateUser creates a new account seeded with the welcome bonus.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Id]; ok {
		return nil, storage.ErrAlreadyExists
	}

	now := time.Now().UTC()
	u := &models.User{
		Id:          user.Id,
		Username:    user.Username,
		FirstName:   user.FirstName,
		Balance:     s.eco.WelcomeBalance,
		Coins:       s.eco.WelcomeCoins,
		TotalEarned: s.eco.WelcomeCoins,
		CreatedAt:   now,
		LastActive:  now,
	}

	prevLogs := s.logs
	s.users[u.Id] = u
	s.appendLogLocked("user", "account created with welcome bonus", u.Id, map[string]string{
		"coins":   strconv.FormatInt(s.eco.WelcomeCoins, 10),
		"balance": s.eco.WelcomeBalance.String(),
	})

	if err := s.saveLocked(collUsers, collLogs); err != nil {
		delete(s.users, u.Id)
		s.logs = prevLogs
		return nil, err
	}

	out := *u
	return &out, nil
}

// UpdateUser merges the given fields into an existing user and stamps
// last_active.
func (s *Store) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	prev := *u
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	u.LastActive = time.Now().UTC()

	if err := s.saveLocked(collUsers); err != nil {
		*u = prev
		return nil, err
	}

	out := *u
	return &out, nil
}

// ClaimDailyBonus credits the daily coin bonus at most once per UTC day.
// A claim on the day after the previous one extends the streak; a skipped
// day resets it.
func (s *Store) ClaimDailyBonus(ctx context.Context, userID int64) (*models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, 0, storage.ErrNotFound
	}

	now := time.Now().UTC()
	if sameUTCDay(u.LastDaily, now) {
		return nil, 0, storage.ErrLimitExceeded
	}

	prev := *u
	prevTx := s.transactions
	prevLogs := s.logs

	streak := 1
	if sameUTCDay(u.LastDaily, now.AddDate(0, 0, -1)) {
		streak = u.DailyStreak + 1
	}
	bonus := s.eco.DailyBonusCoins

	u.Coins += bonus
	u.TotalEarned += bonus
	u.DailyStreak = streak
	u.LastDaily = now
	u.LastActive = now

	s.appendTransactionLocked(models.Transaction{
		UserId: userID,
		Type:   models.TxBonus,
		Coins:  bonus,
		Status: models.COMPLETED,
	})
	s.appendLogLocked("bonus", "daily bonus claimed", userID, map[string]string{
		"coins":  strconv.FormatInt(bonus, 10),
		"streak": strconv.Itoa(streak),
	})

	if err := s.saveLocked(collUsers, collTransactions, collLogs); err != nil {
		*u = prev
		s.transactions = prevTx
		s.logs = prevLogs
		return nil, 0, err
	}

	out := *u
	return &out, bonus, nil
}
