package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is populated from the environment, with an optional .env file for
// local development.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	RedisURL string `env:"REDIS_URL"`

	// Snapshot sources, in fallback priority order after the remote copy.
	SnapshotURL         string `env:"SNAPSHOT_URL" envDefault:"https://orngfire.github.io/youtube-leaderboard/leaderboard.json"`
	SnapshotLocalPath   string `env:"SNAPSHOT_LOCAL_PATH" envDefault:"leaderboard.json"`
	SnapshotFixturePath string `env:"SNAPSHOT_FIXTURE_PATH" envDefault:"leaderboard_test.json"`

	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
	AutoRefresh  bool          `env:"AUTO_REFRESH" envDefault:"true"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
