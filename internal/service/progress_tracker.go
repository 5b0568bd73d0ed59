// internal/service/progress_tracker.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/repository"
	"mood-wallet/internal/util"
)

// ProgressTracker accumulates achievement progress counters.
type ProgressTracker interface {
	// Increment adds amount to the user's counter for key. There is no
	// deduplication: callers invoke it once per logical event.
	Increment(ctx context.Context, userID int64, key domain.ProgressKey, amount decimal.Decimal) error
}

type progressTracker struct {
	dbExecutor   repository.DBExecutor
	progressRepo repository.ProgressRepository
	clock        Clock
}

// NewProgressTracker creates a new ProgressTracker.
func NewProgressTracker(dbExecutor repository.DBExecutor, progressRepo repository.ProgressRepository, clock Clock) ProgressTracker {
	return &progressTracker{
		dbExecutor:   dbExecutor,
		progressRepo: progressRepo,
		clock:        clock,
	}
}

func (t *progressTracker) Increment(ctx context.Context, userID int64, key domain.ProgressKey, amount decimal.Decimal) error {
	if !key.Valid() {
		return fmt.Errorf("%w: unknown progress key %q", util.ErrInvalidInput, key)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: progress amount must be positive", util.ErrInvalidInput)
	}
	if err := t.progressRepo.IncrementProgress(ctx, t.dbExecutor, userID, key, amount, t.clock.Now()); err != nil {
		return fmt.Errorf("increment progress: %w", err)
	}
	return nil
}
