// Package games implements the chance games that wager coins. Each game
// computes its own payout from the configured table (house edge applied
// here, at payout computation) and hands the paired debit/credit to the
// store's settlement operation.
package games

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
)

var slotSymbols = []string{"cherry", "lemon", "orange", "melon", "star", "bell", "diamond", "seven"}

// Manager runs the games against the settlement store.
type Manager struct {
	store  storage.SettlementStore
	eco    *config.Economy
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Manager seeded from crypto/rand.
func New(store storage.SettlementStore, eco *config.Economy, logger *slog.Logger) *Manager {
	return NewSeeded(store, eco, logger, randomSeed())
}

// NewSeeded creates a Manager with a deterministic seed, used by tests.
func NewSeeded(store storage.SettlementStore, eco *config.Economy, logger *slog.Logger, seed int64) *Manager {
	return &Manager{
		store:  store,
		eco:    eco,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func randomSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand is documented never to fail on supported platforms.
		panic(fmt.Sprintf("read random seed: %v", err))
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Result is the structured outcome every play returns.
type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Outcome *models.GameOutcome `json:"outcome,omitempty"`
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// PlayDice rolls against the house: a higher roll wins, a tie pushes the
// stake back.
func (m *Manager) PlayDice(ctx context.Context, userID, bet int64) Result {
	tbl, ok := m.eco.Games["dice"]
	if !ok {
		return failure("dice is not available")
	}
	if msg := validateBet(tbl, bet); msg != "" {
		return failure(msg)
	}

	player, house := m.roll(6), m.roll(6)

	var result models.WagerResult
	var payout int64
	switch {
	case player > house:
		result, payout = models.WIN, winAmount(bet, tbl.Multiplier, tbl.HouseEdge)
	case player == house:
		result, payout = models.DRAW, bet
	default:
		result, payout = models.LOSE, 0
	}

	detail := fmt.Sprintf("player %d vs house %d", player, house)
	return m.settle(ctx, &models.Wager{
		UserId: userID, Game: "dice", Stake: bet, Payout: payout, Result: result, Detail: detail,
	})
}

// PlaySlots spins three reels of eight symbols: a triple hits the jackpot,
// a pair pays the regular multiplier.
func (m *Manager) PlaySlots(ctx context.Context, userID, bet int64) Result {
	tbl, ok := m.eco.Games["slots"]
	if !ok {
		return failure("slots is not available")
	}
	if msg := validateBet(tbl, bet); msg != "" {
		return failure(msg)
	}

	a, b, c := m.spin(), m.spin(), m.spin()

	var result models.WagerResult
	var payout int64
	switch {
	case a == b && b == c:
		result, payout = models.JACKPOT, winAmount(bet, tbl.Jackpot, tbl.HouseEdge)
	case a == b || b == c || a == c:
		result, payout = models.WIN, winAmount(bet, tbl.Multiplier, tbl.HouseEdge)
	default:
		result, payout = models.LOSE, 0
	}

	detail := fmt.Sprintf("%s | %s | %s", a, b, c)
	return m.settle(ctx, &models.Wager{
		UserId: userID, Game: "slots", Stake: bet, Payout: payout, Result: result, Detail: detail,
	})
}

// PlayCoinFlip pays out on a correct heads/tails call.
func (m *Manager) PlayCoinFlip(ctx context.Context, userID, bet int64, call string) Result {
	tbl, ok := m.eco.Games["coinflip"]
	if !ok {
		return failure("coin flip is not available")
	}
	if call != "heads" && call != "tails" {
		return failure(`call must be "heads" or "tails"`)
	}
	if msg := validateBet(tbl, bet); msg != "" {
		return failure(msg)
	}

	flip := "heads"
	if m.roll(2) == 2 {
		flip = "tails"
	}

	result, payout := models.LOSE, int64(0)
	if call == flip {
		result, payout = models.WIN, winAmount(bet, tbl.Multiplier, tbl.HouseEdge)
	}

	detail := fmt.Sprintf("called %s, landed %s", call, flip)
	return m.settle(ctx, &models.Wager{
		UserId: userID, Game: "coinflip", Stake: bet, Payout: payout, Result: result, Detail: detail,
	})
}

// PlayGuess draws a number from 1 to 100 and pays out when the guess lands
// in the same band of ten.
func (m *Manager) PlayGuess(ctx context.Context, userID, bet int64, guess int) Result {
	tbl, ok := m.eco.Games["guess"]
	if !ok {
		return failure("number guess is not available")
	}
	if guess < 1 || guess > 100 {
		return failure("guess must be between 1 and 100")
	}
	if msg := validateBet(tbl, bet); msg != "" {
		return failure(msg)
	}

	drawn := int(m.roll(100))

	result, payout := models.LOSE, int64(0)
	if (guess-1)/10 == (drawn-1)/10 {
		result, payout = models.WIN, winAmount(bet, tbl.Multiplier, tbl.HouseEdge)
	}

	detail := fmt.Sprintf("guessed %d, drawn %d", guess, drawn)
	return m.settle(ctx, &models.Wager{
		UserId: userID, Game: "guess", Stake: bet, Payout: payout, Result: result, Detail: detail,
	})
}

func (m *Manager) settle(ctx context.Context, wager *models.Wager) Result {
	outcome, err := m.store.SettleWager(ctx, wager)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return failure("user not found")
		case errors.Is(err, storage.ErrInsufficientFunds):
			return failure("not enough coins for this bet")
		case errors.Is(err, storage.ErrPersistenceFailure):
			return failure("could not save the play, please retry")
		default:
			m.logger.Error("unexpected settlement error", "game", wager.Game, "error", err)
			return failure("internal error")
		}
	}

	var message string
	switch outcome.Result {
	case models.JACKPOT:
		message = fmt.Sprintf("JACKPOT! %s: won %d coins (%s)", wager.Game, outcome.Net, outcome.Detail)
	case models.WIN:
		message = fmt.Sprintf("%s: won %d coins (%s)", wager.Game, outcome.Net, outcome.Detail)
	case models.DRAW:
		message = fmt.Sprintf("%s: push, stake returned (%s)", wager.Game, outcome.Detail)
	default:
		message = fmt.Sprintf("%s: lost %d coins (%s)", wager.Game, -outcome.Net, outcome.Detail)
	}
	return Result{Success: true, Message: message, Outcome: outcome}
}

// roll returns a uniform integer in [1, n].
func (m *Manager) roll(n int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Int63n(n) + 1
}

func (m *Manager) spin() string {
	return slotSymbols[m.roll(int64(len(slotSymbols)))-1]
}

// winAmount applies the multiplier and the house edge to a winning stake,
// rounded down to whole coins.
func winAmount(bet int64, multiplier, edge float64) int64 {
	return int64(math.Floor(float64(bet) * multiplier * (1 - edge)))
}

func validateBet(tbl config.GameTable, bet int64) string {
	if bet < tbl.MinBet {
		return fmt.Sprintf("minimum bet is %d coins", tbl.MinBet)
	}
	if bet > tbl.MaxBet {
		return fmt.Sprintf("maximum bet is %d coins", tbl.MaxBet)
	}
	return ""
}
