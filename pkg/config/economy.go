package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// PaymentMethod describes one mobile-money provider and its limits.
type PaymentMethod struct {
	Name           string          `toml:"name"`
	Number         string          `toml:"number"`
	MinAmount      decimal.Decimal `toml:"min_amount"`
	MaxAmount      decimal.Decimal `toml:"max_amount"`
	FeePercent     decimal.Decimal `toml:"fee_percent"`
	ProcessingTime string          `toml:"processing_time"`
	Supported      bool            `toml:"supported"`
}

// GameTable holds the betting limits and payout parameters for one game.
type GameTable struct {
	MinBet     int64   `toml:"min_bet"`
	MaxBet     int64   `toml:"max_bet"`
	Multiplier float64 `toml:"multiplier"`
	Jackpot    float64 `toml:"jackpot"`
	HouseEdge  float64 `toml:"house_edge"`
}

// ShopItem is one purchasable catalog entry priced in coins.
type ShopItem struct {
	Id          string `toml:"id"`
	Name        string `toml:"name"`
	PriceCoins  int64  `toml:"price_coins"`
	Description string `toml:"description"`
}

// Duration wraps time.Duration so TOML files can spell intervals as "6h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// Backup holds the periodic backup runner settings.
type Backup struct {
	Interval   Duration `toml:"interval"`
	MaxBackups int      `toml:"max_backups"`
}

// Economy is the full set of tunable economy parameters. A TOML file may
// override any of them; compiled-in defaults apply when the file is absent.
type Economy struct {
	WelcomeBalance   decimal.Decimal `toml:"welcome_balance"`
	WelcomeCoins     int64           `toml:"welcome_coins"`
	DailyBonusCoins  int64           `toml:"daily_bonus_coins"`
	MaxWithdrawDaily decimal.Decimal `toml:"max_withdraw_daily"`

	// First-deposit bonus: percent of the deposit amount, capped.
	FirstDepositBonusPercent decimal.Decimal `toml:"first_deposit_bonus_percent"`
	FirstDepositBonusCap     decimal.Decimal `toml:"first_deposit_bonus_cap"`

	// Deposits at or below this amount on an allow-listed method are
	// confirmed immediately with a system confirmer.
	AutoConfirmMax     decimal.Decimal `toml:"auto_confirm_max"`
	AutoConfirmMethods []string        `toml:"auto_confirm_methods"`

	AuditLogCap int `toml:"audit_log_cap"`

	Methods map[string]PaymentMethod `toml:"methods"`
	Games   map[string]GameTable     `toml:"games"`
	Shop    []ShopItem               `toml:"shop"`
	Backup  Backup                   `toml:"backup"`
}

// DefaultEconomy returns the compiled-in economy parameters.
func DefaultEconomy() *Economy {
	return &Economy{
		WelcomeBalance:           decimal.Zero,
		WelcomeCoins:             500,
		DailyBonusCoins:          100,
		MaxWithdrawDaily:         decimal.NewFromInt(10000),
		FirstDepositBonusPercent: decimal.NewFromInt(10),
		FirstDepositBonusCap:     decimal.NewFromInt(500),
		AutoConfirmMax:           decimal.NewFromInt(500),
		AutoConfirmMethods:       []string{"nagod", "bikash"},
		AuditLogCap:              1000,
		Methods: map[string]PaymentMethod{
			"nagod": {
				Name:           "Nagod",
				Number:         "01700000001",
				MinAmount:      decimal.NewFromInt(10),
				MaxAmount:      decimal.NewFromInt(50000),
				FeePercent:     decimal.Zero,
				ProcessingTime: "5-30 minutes",
				Supported:      true,
			},
			"bikash": {
				Name:           "bKash",
				Number:         "01700000002",
				MinAmount:      decimal.NewFromInt(10),
				MaxAmount:      decimal.NewFromInt(50000),
				FeePercent:     decimal.NewFromFloat(1.5),
				ProcessingTime: "5-30 minutes",
				Supported:      true,
			},
			"rocket": {
				Name:           "Rocket",
				Number:         "01700000003",
				MinAmount:      decimal.NewFromInt(10),
				MaxAmount:      decimal.NewFromInt(50000),
				FeePercent:     decimal.NewFromFloat(1.0),
				ProcessingTime: "10-60 minutes",
				Supported:      true,
			},
			"upay": {
				Name:           "Upay",
				Number:         "01700000004",
				MinAmount:      decimal.NewFromInt(10),
				MaxAmount:      decimal.NewFromInt(50000),
				FeePercent:     decimal.NewFromFloat(0.5),
				ProcessingTime: "10-60 minutes",
				Supported:      false,
			},
		},
		Games: map[string]GameTable{
			"dice":     {MinBet: 10, MaxBet: 10000, Multiplier: 2.0, HouseEdge: 0.05},
			"slots":    {MinBet: 20, MaxBet: 5000, Multiplier: 2.0, Jackpot: 10.0, HouseEdge: 0.10},
			"coinflip": {MinBet: 5, MaxBet: 2000, Multiplier: 1.95, HouseEdge: 0.025},
			"guess":    {MinBet: 10, MaxBet: 1000, Multiplier: 5.0, HouseEdge: 0.20},
		},
		Shop: []ShopItem{
			{Id: "spin_ticket", Name: "Lucky Spin Ticket", PriceCoins: 250, Description: "One extra spin on the daily wheel"},
			{Id: "name_color", Name: "Name Color", PriceCoins: 1000, Description: "Colored display name for 30 days"},
			{Id: "profile_badge", Name: "Profile Badge", PriceCoins: 2500, Description: "Permanent collector badge"},
		},
		Backup: Backup{Interval: Duration{6 * time.Hour}, MaxBackups: 10},
	}
}

// LoadEconomy reads economy parameters from the given TOML file, applied on
// top of the defaults. A missing file is not an error; the defaults are
// returned unchanged.
func LoadEconomy(path string) (*Economy, error) {
	eco := DefaultEconomy()
	if path == "" {
		return eco, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return eco, nil
	}
	if _, err := toml.DecodeFile(path, eco); err != nil {
		return nil, fmt.Errorf("decode economy file %s: %w", path, err)
	}
	return eco, nil
}
