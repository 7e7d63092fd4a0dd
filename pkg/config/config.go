package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings loaded from the environment.
type Config struct {
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	BackupDir      string `env:"BACKUP_DIR" envDefault:"./backups"`
	EconomyFile    string `env:"ECONOMY_FILE" envDefault:"economy.toml"`
	LogJSON        bool   `env:"LOG_JSON" envDefault:"true"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
