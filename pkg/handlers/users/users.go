package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/mapping"
	"github.com/sakib/coinledger/pkg/storage"
)

// UsersHandler holds the dependencies for user-account handlers.
type UsersHandler struct {
	Store storage.UserStore
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(store storage.UserStore) *UsersHandler {
	return &UsersHandler{Store: store}
}

// CreateUser handles the logic for creating a new account.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var newUser api.NewUser
	if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	domainUser := mapping.ToDomainNewUser(&newUser)

	createdUser, err := h.Store.CreateUser(r.Context(), domainUser)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			http.Error(w, "Account for this user already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiUser := mapping.ToApiUser(createdUser)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiUser); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetUserById handles the logic for retrieving an account.
func (h *UsersHandler) GetUserById(w http.ResponseWriter, r *http.Request, userID int64) {
	domainUser, err := h.Store.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve user: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiUser := mapping.ToApiUser(domainUser)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiUser); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// UpdateUser handles the logic for merging profile fields into an account.
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request, userID int64) {
	var update api.UpdateUser
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	updatedUser, err := h.Store.UpdateUser(r.Context(), userID, mapping.ToDomainUserUpdate(&update))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to update user: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiUser := mapping.ToApiUser(updatedUser)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiUser); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ClaimDaily handles the once-per-day bonus claim.
func (h *UsersHandler) ClaimDaily(w http.ResponseWriter, r *http.Request, userID int64) {
	result := api.DailyBonusResult{}

	user, coins, err := h.Store.ClaimDailyBonus(r.Context(), userID)
	switch {
	case err == nil:
		result.Success = true
		result.Message = fmt.Sprintf("daily bonus of %d coins claimed", coins)
		result.Coins = coins
		result.User = mapping.ToApiUser(user)
	case errors.Is(err, storage.ErrLimitExceeded):
		result.Message = "daily bonus already claimed today"
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
		return
	default:
		http.Error(w, fmt.Sprintf("Failed to claim daily bonus: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
