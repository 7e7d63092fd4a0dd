package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sakib/coinledger/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEconomy(t *testing.T) {
	eco := config.DefaultEconomy()

	assert.Equal(t, int64(500), eco.WelcomeCoins)
	assert.Equal(t, int64(100), eco.DailyBonusCoins)
	assert.True(t, eco.MaxWithdrawDaily.Equal(decimal.NewFromInt(10000)))
	assert.NotEmpty(t, eco.Methods)
	assert.NotEmpty(t, eco.Games)
	assert.NotEmpty(t, eco.Shop)
	assert.Equal(t, 6*time.Hour, eco.Backup.Interval.Duration)

	for key, method := range eco.Methods {
		assert.NotEmpty(t, method.Name, "method %s has no display name", key)
		assert.True(t, method.MinAmount.LessThan(method.MaxAmount), "method %s limits inverted", key)
	}
	for key, tbl := range eco.Games {
		assert.Less(t, tbl.MinBet, tbl.MaxBet, "game %s limits inverted", key)
		assert.Greater(t, tbl.Multiplier, 1.0, "game %s pays below stake", key)
	}
}

func TestLoadEconomy(t *testing.T) {
	t.Run("Missing File Returns Defaults", func(t *testing.T) {
		eco, err := config.LoadEconomy(filepath.Join(t.TempDir(), "absent.toml"))

		require.NoError(t, err)
		assert.Equal(t, int64(500), eco.WelcomeCoins)
	})

	t.Run("Empty Path Returns Defaults", func(t *testing.T) {
		eco, err := config.LoadEconomy("")

		require.NoError(t, err)
		assert.Equal(t, int64(100), eco.DailyBonusCoins)
	})

	t.Run("File Overrides On Top Of Defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "economy.toml")
		content := `
welcome_coins = 1000
daily_bonus_coins = 250

[backup]
interval = "30m"
max_backups = 3
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		eco, err := config.LoadEconomy(path)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), eco.WelcomeCoins)
		assert.Equal(t, int64(250), eco.DailyBonusCoins)
		assert.Equal(t, 30*time.Minute, eco.Backup.Interval.Duration)
		assert.Equal(t, 3, eco.Backup.MaxBackups)
		// Untouched sections keep their defaults.
		assert.True(t, eco.MaxWithdrawDaily.Equal(decimal.NewFromInt(10000)))
		assert.NotEmpty(t, eco.Methods)
	})

	t.Run("Malformed File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "economy.toml")
		require.NoError(t, os.WriteFile(path, []byte("welcome_coins = [broken"), 0o644))

		_, err := config.LoadEconomy(path)

		assert.Error(t, err)
	})
}
