package wagers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/games"
	"github.com/sakib/coinledger/pkg/mapping"
)

// WagersHandler holds the dependencies for game-play handlers.
type WagersHandler struct {
	Games *games.Manager
}

// NewWagersHandler creates a new WagersHandler.
func NewWagersHandler(g *games.Manager) *WagersHandler {
	return &WagersHandler{Games: g}
}

// Play handles a single game play for the named game.
func (h *WagersHandler) Play(w http.ResponseWriter, r *http.Request, game string) {
	var req api.WagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	var result games.Result
	switch game {
	case "dice":
		result = h.Games.PlayDice(r.Context(), req.UserId, req.Bet)
	case "slots":
		result = h.Games.PlaySlots(r.Context(), req.UserId, req.Bet)
	case "coinflip":
		result = h.Games.PlayCoinFlip(r.Context(), req.UserId, req.Bet, req.Call)
	case "guess":
		result = h.Games.PlayGuess(r.Context(), req.UserId, req.Bet, req.Guess)
	default:
		http.Error(w, fmt.Sprintf("Unknown game %q", game), http.StatusNotFound)
		return
	}

	body := api.WagerResult{Success: result.Success, Message: result.Message}
	if result.Outcome != nil {
		body.Outcome = mapping.ToApiGameOutcome(result.Outcome)
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
