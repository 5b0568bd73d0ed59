// internal/repository/progress_repo.go
package repository

import (
	"context"
	"time"

	"mood-wallet/internal/domain"

	"github.com/shopspring/decimal"
)

// ProgressRepository stores per-user achievement progress counters.
type ProgressRepository interface {
	// IncrementProgress adds amount to the (user, key) counter, creating it at zero first.
	IncrementProgress(ctx context.Context, q DBExecutor, userID int64, key domain.ProgressKey, amount decimal.Decimal, now time.Time) error
	// GetProgress returns the counter value, or zero if it was never incremented.
	GetProgress(ctx context.Context, q DBExecutor, userID int64, key domain.ProgressKey) (decimal.Decimal, error)
}
