// internal/repository/ledger_repo.go
package repository

import (
	"context"
	"time"

	"mood-wallet/internal/domain"

	"github.com/shopspring/decimal"
)

// LedgerRepository is the append-only wallet ledger (exp_logs).
type LedgerRepository interface {
	// LockUserLedger serializes ledger appends for userID until the enclosing
	// transaction ends. q must be a transaction.
	LockUserLedger(ctx context.Context, q DBExecutor, userID int64) error
	// AppendEntry inserts entry and sets its ID. A repeated (user, achievement,
	// claim window) returns util.ErrDuplicateEntry.
	AppendEntry(ctx context.Context, q DBExecutor, entry *domain.ExpLog) error
	// GetLatestEntry returns the most recent entry for userID, or util.ErrNotFound.
	GetLatestEntry(ctx context.Context, q DBExecutor, userID int64) (*domain.ExpLog, error)
	// ListRecentEntries returns up to limit entries, newest first, ties broken by id.
	ListRecentEntries(ctx context.Context, q DBExecutor, userID int64, limit int) ([]domain.ExpLog, error)
	// HasClaim reports whether userID has any entry for achievementID.
	HasClaim(ctx context.Context, q DBExecutor, userID int64, achievementID string) (bool, error)
	// HasClaimBetween reports whether userID has an entry for achievementID created in [from, to).
	HasClaimBetween(ctx context.Context, q DBExecutor, userID int64, achievementID string, from, to time.Time) (bool, error)
	// SumDeltas returns the sum of every delta appended for userID.
	SumDeltas(ctx context.Context, q DBExecutor, userID int64) (decimal.Decimal, error)
	// ListLedgerUserIDs returns every user that has at least one entry.
	ListLedgerUserIDs(ctx context.Context, q DBExecutor) ([]int64, error)
}
