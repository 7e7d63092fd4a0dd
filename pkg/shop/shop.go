// Package shop sells catalog items for coins. Purchases debit coins through
// the store's atomic purchase operation; the shop itself holds no state.
package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
)

// Manager validates purchases against the configured catalog.
type Manager struct {
	store  storage.BalanceStore
	eco    *config.Economy
	logger *slog.Logger
}

// New creates a shop manager.
func New(store storage.BalanceStore, eco *config.Economy, logger *slog.Logger) *Manager {
	return &Manager{store: store, eco: eco, logger: logger}
}

// Result is the structured outcome of a purchase.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

// Items returns the purchasable catalog.
func (m *Manager) Items() []config.ShopItem {
	return m.eco.Shop
}

// Buy debits the item price times quantity from the user's coins.
func (m *Manager) Buy(ctx context.Context, userID int64, itemID string, quantity int) Result {
	if quantity < 1 {
		return Result{Message: "quantity must be at least 1"}
	}

	var item *config.ShopItem
	for i := range m.eco.Shop {
		if m.eco.Shop[i].Id == itemID {
			item = &m.eco.Shop[i]
			break
		}
	}
	if item == nil {
		return Result{Message: fmt.Sprintf("unknown item %q", itemID)}
	}

	total := item.PriceCoins * int64(quantity)
	user, err := m.store.Purchase(ctx, userID, itemID, quantity, total)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return Result{Message: "user not found"}
		case errors.Is(err, storage.ErrInsufficientFunds):
			return Result{Message: fmt.Sprintf("not enough coins: %s costs %d", item.Name, total)}
		case errors.Is(err, storage.ErrPersistenceFailure):
			return Result{Message: "could not save the purchase, please retry"}
		default:
			m.logger.Error("unexpected purchase error", "item", itemID, "error", err)
			return Result{Message: "internal error"}
		}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("bought %d x %s for %d coins", quantity, item.Name, total),
		User:    user,
	}
}
