// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/metrics"
	"mood-wallet/internal/repository"
	"mood-wallet/internal/util"
	"mood-wallet/pkg/db"

	"github.com/shopspring/decimal"
)

// MaxRecentLimit caps how many ledger entries a single read returns.
const MaxRecentLimit = 30

// DefaultRecentLimit is used when Recent is called without a positive limit.
const DefaultRecentLimit = MaxRecentLimit

// Statement is a user's balance and recent entries read under one ledger lock,
// so no claim can land between the two reads.
type Statement struct {
	Balance decimal.Decimal
	Recent  []domain.ExpLog
}

// WalletService defines the interface for reading and auditing the wallet ledger.
type WalletService interface {
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	Recent(ctx context.Context, userID int64, limit int) ([]domain.ExpLog, error)
	// Statement reads the balance and recent entries under the user's ledger lock.
	Statement(ctx context.Context, userID int64, limit int) (*Statement, error)
	Audit(ctx context.Context, userID int64) error
	// AuditAll audits every user with ledger entries and returns the ids that failed.
	AuditAll(ctx context.Context) (checked int, failed []int64, err error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner  db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor  repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	ledgerRepo  repository.LedgerRepository
	recentLimit int
	logger      *slog.Logger
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewWalletService creates a new instance of WalletService. A recentLimit
// outside 1..MaxRecentLimit falls back to DefaultRecentLimit.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	ledgerRepo repository.LedgerRepository,
	recentLimit int,
	logger *slog.Logger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	if recentLimit <= 0 || recentLimit > MaxRecentLimit {
		recentLimit = DefaultRecentLimit
	}
	return &walletService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		ledgerRepo:  ledgerRepo,
		recentLimit: recentLimit,
		logger:      logger,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// Balance returns the running total of the user's latest ledger entry, or zero.
func (s *walletService) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	balance, err := latestRunningTotal(ctx, s.ledgerRepo, s.dbExecutor, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance: user %d: %w", userID, err)
	}
	return balance, nil
}

// Recent returns up to limit entries, newest first. limit is capped at MaxRecentLimit.
func (s *walletService) Recent(ctx context.Context, userID int64, limit int) ([]domain.ExpLog, error) {
	entries, err := s.ledgerRepo.ListRecentEntries(ctx, s.dbExecutor, userID, s.clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("get recent entries: user %d: %w", userID, err)
	}
	return entries, nil
}

func (s *walletService) Statement(ctx context.Context, userID int64, limit int) (*Statement, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("statement: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("statement: transaction controller does not implement DBExecutor")
	}

	if err := s.ledgerRepo.LockUserLedger(ctx, txExecutor, userID); err != nil {
		return nil, fmt.Errorf("statement: failed to lock ledger for user %d: %w", userID, err)
	}

	balance, err := latestRunningTotal(ctx, s.ledgerRepo, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("statement: failed to read balance for user %d: %w", userID, err)
	}
	entries, err := s.ledgerRepo.ListRecentEntries(ctx, txExecutor, userID, s.clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("statement: failed to list entries for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("statement: failed to commit transaction: %w", err)
	}
	return &Statement{Balance: balance, Recent: entries}, nil
}

func (s *walletService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.recentLimit
	}
	return min(limit, MaxRecentLimit)
}

// Audit checks that the user's latest running total equals the sum of their
// deltas. The ledger lock is held so an in-flight claim cannot skew the reads.
func (s *walletService) Audit(ctx context.Context, userID int64) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("audit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("audit: transaction controller does not implement DBExecutor")
	}

	if err := s.ledgerRepo.LockUserLedger(ctx, txExecutor, userID); err != nil {
		return fmt.Errorf("audit: failed to lock ledger for user %d: %w", userID, err)
	}

	sum, err := s.ledgerRepo.SumDeltas(ctx, txExecutor, userID)
	if err != nil {
		return fmt.Errorf("audit: failed to sum deltas for user %d: %w", userID, err)
	}
	total, err := latestRunningTotal(ctx, s.ledgerRepo, txExecutor, userID)
	if err != nil {
		return fmt.Errorf("audit: failed to read balance for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("audit: failed to commit transaction: %w", err)
	}

	if !sum.Equal(total) {
		metrics.RecordLedgerViolation()
		s.logger.Error("Ledger integrity violation",
			"user_id", userID,
			"running_total", total.String(),
			"sum_of_deltas", sum.String(),
		)
		return fmt.Errorf("%w: user %d running total %s, sum of deltas %s", util.ErrLedgerIntegrity, userID, total, sum)
	}
	return nil
}

func (s *walletService) AuditAll(ctx context.Context) (int, []int64, error) {
	userIDs, err := s.ledgerRepo.ListLedgerUserIDs(ctx, s.dbExecutor)
	if err != nil {
		return 0, nil, fmt.Errorf("audit all: failed to list users: %w", err)
	}

	var failed []int64
	for _, userID := range userIDs {
		if err := s.Audit(ctx, userID); err != nil {
			if !util.IsError(err, util.ErrLedgerIntegrity) {
				return 0, failed, err
			}
			failed = append(failed, userID)
		}
	}
	return len(userIDs), failed, nil
}
