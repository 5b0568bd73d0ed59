// internal/service/eligibility.go
package service

import (
	"context"
	"fmt"
	"time"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/repository"
)

// Evaluator derives a user's claim status for an achievement from progress
// and ledger history. It only reads.
type Evaluator struct {
	progressRepo repository.ProgressRepository
	ledgerRepo   repository.LedgerRepository
	clock        Clock
	loc          *time.Location
}

// NewEvaluator creates an Evaluator whose calendar days are taken in loc.
func NewEvaluator(progressRepo repository.ProgressRepository, ledgerRepo repository.LedgerRepository, clock Clock, loc *time.Location) *Evaluator {
	return &Evaluator{
		progressRepo: progressRepo,
		ledgerRepo:   ledgerRepo,
		clock:        clock,
		loc:          loc,
	}
}

// Status evaluates a at the current time.
func (e *Evaluator) Status(ctx context.Context, q repository.DBExecutor, userID int64, a *domain.Achievement) (domain.AchievementStatus, error) {
	return e.StatusAt(ctx, q, userID, a, e.clock.Now())
}

// StatusAt evaluates a as of now.
//
// Unlocked means the user has claimed a at least once; ClaimedToday means a
// claim exists within now's calendar day. Daily achievements are claimable
// when the threshold is met and not yet claimed today, one-time achievements
// when the threshold is met and never claimed.
func (e *Evaluator) StatusAt(ctx context.Context, q repository.DBExecutor, userID int64, a *domain.Achievement, now time.Time) (domain.AchievementStatus, error) {
	var status domain.AchievementStatus

	progress, err := e.progressRepo.GetProgress(ctx, q, userID, a.ProgressKey)
	if err != nil {
		return status, fmt.Errorf("status %q: %w", a.ID, err)
	}

	status.Unlocked, err = e.ledgerRepo.HasClaim(ctx, q, userID, a.ID)
	if err != nil {
		return status, fmt.Errorf("status %q: %w", a.ID, err)
	}

	if status.Unlocked {
		from, to := dayBounds(now, e.loc)
		status.ClaimedToday, err = e.ledgerRepo.HasClaimBetween(ctx, q, userID, a.ID, from, to)
		if err != nil {
			return status, fmt.Errorf("status %q: %w", a.ID, err)
		}
	}

	met := a.ThresholdMet(progress)
	if a.IsDaily {
		status.Claimable = met && !status.ClaimedToday
	} else {
		status.Claimable = met && !status.Unlocked
	}
	return status, nil
}
