// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"time"
	_ "time/tzdata" // TIME_ZONE resolves without system zoneinfo

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"mood-wallet/pkg/db"
)

// maxRecentLedgerLimit mirrors the wallet endpoint's 30-entry cap.
const maxRecentLedgerLimit = 30

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// TimeZone is the single authoritative zone for calendar days: daily
	// achievement resets, default diary dates and wallet timestamps.
	TimeZone string `env:"TIME_ZONE" envDefault:"Asia/Taipei"`

	JWTSecret         string `env:"JWT_SECRET,required,notEmpty"`
	MigrateOnStart    bool   `env:"MIGRATE_ON_START" envDefault:"true"`
	RecentLedgerLimit int    `env:"RECENT_LEDGER_LIMIT" envDefault:"30"`

	// Per-user throttling of /api requests. RATE_LIMIT_RPS=0 disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	DB db.Config

	// Location is TimeZone resolved by Validate.
	Location *time.Location `env:"-"`
}

// LoadConfig loads configuration from a local .env file (if present) and the
// process environment. It returns an error if a required variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and resolves the configured time zone.
func (c *AppConfig) Validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %q", c.ServerPort)
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		return fmt.Errorf("invalid DB_PORT: %d", c.DB.Port)
	}
	if c.RecentLedgerLimit < 1 || c.RecentLedgerLimit > maxRecentLedgerLimit {
		return fmt.Errorf("invalid RECENT_LEDGER_LIMIT: %d (must be 1..%d)", c.RecentLedgerLimit, maxRecentLedgerLimit)
	}
	if c.RateLimitRPS < 0 || (c.RateLimitRPS > 0 && c.RateLimitBurst < 1) {
		return fmt.Errorf("invalid rate limit: %v requests/s with burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	c.Location = loc
	return nil
}
