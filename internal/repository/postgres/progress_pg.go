// internal/repository/postgres/progress_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/repository"
)

// ProgressRepository implements repository.ProgressRepository for PostgreSQL.
type ProgressRepository struct{}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository() repository.ProgressRepository {
	return &ProgressRepository{}
}

// IncrementProgress upserts the counter in a single statement, so concurrent
// increments for the same key never lose an update.
func (r *ProgressRepository) IncrementProgress(ctx context.Context, q repository.DBExecutor, userID int64, key domain.ProgressKey, amount decimal.Decimal, now time.Time) error {
	query := `INSERT INTO achievement_progress (user_id, progress_key, progress, updated_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (user_id, progress_key)
              DO UPDATE SET progress = achievement_progress.progress + EXCLUDED.progress,
                            updated_at = EXCLUDED.updated_at`
	if _, err := q.ExecContext(ctx, query, userID, string(key), amount, now.UTC()); err != nil {
		return fmt.Errorf("failed to increment progress %s for user %d: %w", key, userID, classify(err))
	}
	return nil
}

// GetProgress returns the counter value or zero.
func (r *ProgressRepository) GetProgress(ctx context.Context, q repository.DBExecutor, userID int64, key domain.ProgressKey) (decimal.Decimal, error) {
	var progress decimal.Decimal
	query := `SELECT progress FROM achievement_progress WHERE user_id = $1 AND progress_key = $2`
	if err := q.GetContext(ctx, &progress, query, userID, string(key)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get progress %s for user %d: %w", key, userID, classify(err))
	}
	return progress, nil
}
