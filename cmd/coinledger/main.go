package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sakib/coinledger/pkg/config"
	"github.com/sakib/coinledger/pkg/persist"
	"github.com/sakib/coinledger/pkg/storage/ledger"
)

var rootCmd = &cobra.Command{
	Use:          "coinledger",
	Short:        "Virtual-currency ledger service for the chat bot economy",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the environment, the economy parameters and the persisted
// ledger. Every subcommand starts from here.
func setup(json bool) (*config.Config, *config.Economy, *ledger.Store, *slog.Logger, error) {
	// Load environment variables from .env file; absent is fine.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	var handler slog.Handler
	if json && cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)

	eco, err := config.LoadEconomy(cfg.EconomyFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load economy parameters: %w", err)
	}

	snaps, err := persist.New(cfg.DataDir, logger)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open data directory: %w", err)
	}

	store := ledger.New(snaps, eco, logger)
	return cfg, eco, store, logger, nil
}
