// pkg/db/postgres.go
package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds database connection configuration.
type Config struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"user"`
	Password string `env:"DB_PASSWORD" envDefault:"password"`
	DBName   string `env:"DB_NAME" envDefault:"moodwallet"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// ConnectRetries is how many times a failed initial connection is retried
	// with exponential backoff. Zero means a single attempt.
	ConnectRetries uint64 `env:"DB_CONNECT_RETRIES" envDefault:"5"`
}

// DSN returns the lib/pq connection string for cfg.
func (cfg Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// NewPostgresDB initializes and returns a new PostgreSQL database connection.
// It uses sqlx for enhanced database operations.
func NewPostgresDB(cfg Config) (*sqlx.DB, error) {
	db, err := connectWithRetry(cfg, backoff.NewExponentialBackOff())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// connectWithRetry connects and pings, retrying on b.
func connectWithRetry(cfg Config, b backoff.BackOff) (*sqlx.DB, error) {
	var db *sqlx.DB
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		conn, err := sqlx.Connect("postgres", cfg.DSN())
		if err != nil {
			slog.Warn("PostgreSQL connection failed, retrying", "attempt", attempt, "host", cfg.Host, "error", err)
			return err
		}
		db = conn
		return nil
	}, backoff.WithMaxRetries(b, cfg.ConnectRetries))
	if err != nil {
		return nil, err
	}
	return db, nil
}
