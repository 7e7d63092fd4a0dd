package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakib/coinledger/pkg/backup"
	"github.com/sakib/coinledger/pkg/games"
	"github.com/sakib/coinledger/pkg/handlers"
	"github.com/sakib/coinledger/pkg/payments"
	"github.com/sakib/coinledger/pkg/shop"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, eco, store, logger, err := setup(true)
	if err != nil {
		return err
	}

	paymentManager := payments.New(store, eco, logger)
	gameManager := games.New(store, eco, logger)
	shopManager := shop.New(store, eco, logger)

	backupManager, err := backup.New(store, cfg.BackupDir, eco.Backup.MaxBackups, logger)
	if err != nil {
		return fmt.Errorf("open backup directory: %w", err)
	}

	router := handlers.NewRouter(handlers.Dependencies{
		Store:          store,
		Payments:       paymentManager,
		Games:          gameManager,
		Shop:           shopManager,
		Logger:         logger,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if eco.Backup.Interval.Duration > 0 {
		go backupManager.Run(ctx, eco.Backup.Interval.Duration)
	}

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.HTTPPort, "data_dir", cfg.DataDir)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
