// internal/service/achievement_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/metrics"
	"mood-wallet/internal/repository"
	"mood-wallet/internal/util"
	"mood-wallet/pkg/db"

	"github.com/shopspring/decimal"
)

// ClaimResult describes a successful claim.
type ClaimResult struct {
	AchievementID string
	Amount        decimal.Decimal          // Reward credited
	Balance       decimal.Decimal          // Running total after the claim
	Status        domain.AchievementStatus // Status recomputed after the claim
	Entry         *domain.ExpLog
}

// AchievementService lists achievements and processes reward claims.
type AchievementService interface {
	List(ctx context.Context, userID int64) ([]domain.AchievementView, error)
	Claim(ctx context.Context, userID int64, achievementID string) (*ClaimResult, error)
}

// achievementService implements the AchievementService interface.
type achievementService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	achievementRepo repository.AchievementRepository
	ledgerRepo      repository.LedgerRepository
	evaluator       *Evaluator
	clock           Clock
	loc             *time.Location
	logger          *slog.Logger
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewAchievementService creates a new instance of AchievementService.
func NewAchievementService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	achievementRepo repository.AchievementRepository,
	ledgerRepo repository.LedgerRepository,
	evaluator *Evaluator,
	clock Clock,
	loc *time.Location,
	logger *slog.Logger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AchievementService {
	return &achievementService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		achievementRepo: achievementRepo,
		ledgerRepo:      ledgerRepo,
		evaluator:       evaluator,
		clock:           clock,
		loc:             loc,
		logger:          logger,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// List returns every achievement with the user's current status.
func (s *achievementService) List(ctx context.Context, userID int64) ([]domain.AchievementView, error) {
	achievements, err := s.achievementRepo.ListAchievements(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	now := s.clock.Now()
	views := make([]domain.AchievementView, 0, len(achievements))
	for i := range achievements {
		status, err := s.evaluator.StatusAt(ctx, s.dbExecutor, userID, &achievements[i], now)
		if err != nil {
			return nil, fmt.Errorf("list achievements: %w", err)
		}
		views = append(views, domain.AchievementView{Achievement: achievements[i], Status: status})
	}
	return views, nil
}

// Claim credits the reward of achievementID to the user's wallet.
//
// The whole claim runs in one transaction holding the user's ledger lock, so
// concurrent claims for the same user are serialized and the status checked
// is the status the append is based on.
func (s *achievementService) Claim(ctx context.Context, userID int64, achievementID string) (result *ClaimResult, err error) {
	defer func() { metrics.RecordClaim(claimOutcome(err)) }()

	if achievementID == "" {
		return nil, fmt.Errorf("%w: achievement id is required", util.ErrInvalidInput)
	}

	achievement, err := s.achievementRepo.GetAchievementByID(ctx, s.dbExecutor, achievementID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrAchievementNotFound
		}
		return nil, fmt.Errorf("claim: failed to get achievement %q: %w", achievementID, err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("claim: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("claim: transaction controller does not implement DBExecutor")
	}

	if err := s.ledgerRepo.LockUserLedger(ctx, txExecutor, userID); err != nil {
		return nil, fmt.Errorf("claim: failed to lock ledger for user %d: %w", userID, err)
	}

	now := s.clock.Now()
	before, err := s.evaluator.StatusAt(ctx, txExecutor, userID, achievement, now)
	if err != nil {
		return nil, fmt.Errorf("claim: %w", err)
	}
	switch {
	case achievement.IsDaily && before.ClaimedToday:
		return nil, util.ErrAlreadyClaimedToday
	case !achievement.IsDaily && before.Unlocked:
		return nil, util.ErrAlreadyClaimed
	case !before.Claimable:
		return nil, util.ErrRequirementNotMet
	}

	previous, err := latestRunningTotal(ctx, s.ledgerRepo, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("claim: failed to read balance for user %d: %w", userID, err)
	}

	entry := domain.NewClaimEntry(userID, achievement, previous, now, s.loc)
	if err := s.ledgerRepo.AppendEntry(ctx, txExecutor, entry); err != nil {
		if util.IsError(err, util.ErrDuplicateEntry) {
			if achievement.IsDaily {
				return nil, util.ErrAlreadyClaimedToday
			}
			return nil, util.ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("claim: failed to append ledger entry: %w", err)
	}

	after, err := s.evaluator.StatusAt(ctx, txExecutor, userID, achievement, now)
	if err != nil {
		return nil, fmt.Errorf("claim: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("claim: failed to commit transaction: %w", err)
	}

	s.logger.Info("Achievement claimed",
		"user_id", userID,
		"achievement_id", achievement.ID,
		"amount", achievement.Reward.String(),
		"balance", entry.RunningTotal.String(),
	)

	return &ClaimResult{
		AchievementID: achievement.ID,
		Amount:        achievement.Reward,
		Balance:       entry.RunningTotal,
		Status:        after,
		Entry:         entry,
	}, nil
}

func claimOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case util.IsError(err, util.ErrNotFound):
		return metrics.OutcomeNotFound
	case util.IsError(err, util.ErrConflict):
		return metrics.OutcomeConflict
	case util.IsError(err, util.ErrInvalidState):
		return metrics.OutcomeRequirementNotMet
	case util.IsError(err, util.ErrTransientStore):
		return metrics.OutcomeTransient
	default:
		return metrics.OutcomeError
	}
}
