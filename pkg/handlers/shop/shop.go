package shop

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/mapping"
	"github.com/sakib/coinledger/pkg/shop"
)

// ShopHandler holds the dependencies for shop handlers.
type ShopHandler struct {
	Shop *shop.Manager
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(s *shop.Manager) *ShopHandler {
	return &ShopHandler{Shop: s}
}

// ListItems handles retrieving the purchasable catalog.
func (h *ShopHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.Shop.Items()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Buy handles purchasing a catalog item for coins.
func (h *ShopHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req api.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result := h.Shop.Buy(r.Context(), req.UserId, req.ItemId, req.Quantity)

	body := api.PurchaseResult{Success: result.Success, Message: result.Message}
	if result.User != nil {
		body.User = mapping.ToApiUser(result.User)
	}

	status := http.StatusCreated
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
