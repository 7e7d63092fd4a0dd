package storage

import (
	"context"

	"github.com/sakib/coinledger/pkg/models"
)

// UserReader defines the interface for reading user accounts.
type UserReader interface {
	// GetUser retrieves a user by their id.
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// ListUsers retrieves all user accounts.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UserManager defines the interface for creating and updating user accounts.
type UserManager interface {
	// CreateUser creates a new user account seeded with the welcome bonus.
	// It fails with ErrAlreadyExists if the id is already present.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)

	// UpdateUser merges the given fields into an existing user and stamps last_active.
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (*models.User, error)

	// ClaimDailyBonus credits the daily coin bonus at most once per UTC day,
	// maintaining the user's claim streak. Returns the updated user and the
	// number of coins credited.
	ClaimDailyBonus(ctx context.Context, userID int64) (*models.User, int64, error)
}

// UserStore combines the reader and manager interfaces.
type UserStore interface {
	UserReader
	UserManager
}
