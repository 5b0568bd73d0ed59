// internal/repository/postgres/ledger_pg.go
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
	"mood-wallet/internal/util"
)

const expLogColumns = `id, user_id, delta, reason, achievement_id, claim_window, running_total, created_at`

// ledgerLockNamespace is the first key of the two-key advisory lock space,
// kept apart from single-key locks such as golang-migrate's.
const ledgerLockNamespace int32 = 0x4d57

// LedgerRepository implements repository.LedgerRepository for PostgreSQL.
type LedgerRepository struct{}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository() repository.LedgerRepository {
	return &LedgerRepository{}
}

// LockUserLedger takes a transaction-scoped advisory lock on (namespace,
// hashint8(user id)). It is released automatically on commit or rollback.
// Two users sharing a hash only serialize against each other.
func (r *LedgerRepository) LockUserLedger(ctx context.Context, q repository.DBExecutor, userID int64) error {
	if _, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, hashint8($2))`, ledgerLockNamespace, userID); err != nil {
		return fmt.Errorf("failed to lock ledger for user %d: %w", userID, classify(err))
	}
	return nil
}

// AppendEntry inserts a ledger entry.
func (r *LedgerRepository) AppendEntry(ctx context.Context, q repository.DBExecutor, entry *domain.ExpLog) error {
	query := `INSERT INTO exp_logs (user_id, delta, reason, achievement_id, claim_window, running_total, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		entry.UserID,
		entry.Delta,
		entry.Reason,
		entry.AchievementID,
		entry.ClaimWindow,
		entry.RunningTotal,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry for user %d: %w", entry.UserID, classify(err))
	}
	return nil
}

// GetLatestEntry returns the last appended entry. Append order (id) is the
// store-enforced serial order, so it is used instead of created_at.
func (r *LedgerRepository) GetLatestEntry(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.ExpLog, error) {
	var entry domain.ExpLog
	query := `SELECT ` + expLogColumns + ` FROM exp_logs WHERE user_id = $1 ORDER BY id DESC LIMIT 1`
	if err := q.GetContext(ctx, &entry, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest ledger entry for user %d: %w", userID, classify(err))
	}
	return &entry, nil
}

// ListRecentEntries returns the newest entries first.
func (r *LedgerRepository) ListRecentEntries(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.ExpLog, error) {
	entries := []domain.ExpLog{}
	query := `
		SELECT ` + expLogColumns + `
		FROM exp_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	if err := q.SelectContext(ctx, &entries, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for user %d: %w", userID, classify(err))
	}
	return entries, nil
}

// HasClaim reports whether any entry exists for the achievement.
func (r *LedgerRepository) HasClaim(ctx context.Context, q repository.DBExecutor, userID int64, achievementID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM exp_logs WHERE user_id = $1 AND achievement_id = $2)`
	if err := q.GetContext(ctx, &exists, query, userID, achievementID); err != nil {
		return false, fmt.Errorf("failed to check claim %q for user %d: %w", achievementID, userID, classify(err))
	}
	return exists, nil
}

// HasClaimBetween reports whether an entry for the achievement was created in [from, to).
func (r *LedgerRepository) HasClaimBetween(ctx context.Context, q repository.DBExecutor, userID int64, achievementID string, from, to time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM exp_logs
			WHERE user_id = $1 AND achievement_id = $2 AND created_at >= $3 AND created_at < $4
		)`
	if err := q.GetContext(ctx, &exists, query, userID, achievementID, from.UTC(), to.UTC()); err != nil {
		return false, fmt.Errorf("failed to check claim %q for user %d: %w", achievementID, userID, classify(err))
	}
	return exists, nil
}

// SumDeltas returns the ledger sum for a user, zero when empty.
func (r *LedgerRepository) SumDeltas(ctx context.Context, q repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(delta), 0) FROM exp_logs WHERE user_id = $1`
	if err := q.GetContext(ctx, &sum, query, userID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger for user %d: %w", userID, classify(err))
	}
	return sum, nil
}

// ListLedgerUserIDs returns the distinct owners of ledger entries.
func (r *LedgerRepository) ListLedgerUserIDs(ctx context.Context, q repository.DBExecutor) ([]int64, error) {
	ids := []int64{}
	if err := q.SelectContext(ctx, &ids, `SELECT DISTINCT user_id FROM exp_logs ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("failed to list ledger users: %w", classify(err))
	}
	return ids, nil
}
