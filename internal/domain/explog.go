// internal/domain/explog.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimWindowOnce is the claim window used by one-time achievements, so the
// (user, achievement, window) uniqueness holds for the lifetime of the ledger.
const ClaimWindowOnce = "once"

// ClaimWindowDayLayout formats the claim window of daily achievements.
const ClaimWindowDayLayout = "2006-01-02"

// ExpLog is a single append-only wallet ledger entry.
type ExpLog struct {
	ID            int64           `db:"id" json:"id"` // BIGSERIAL, stable tie-break for ordering
	UserID        int64           `db:"user_id" json:"user_id"`
	Delta         decimal.Decimal `db:"delta" json:"delta"` // NUMERIC(20, 4) in DB
	Reason        string          `db:"reason" json:"reason"`
	AchievementID *string         `db:"achievement_id" json:"achievement_id"` // Nil for non-achievement entries
	ClaimWindow   *string         `db:"claim_window" json:"claim_window"`     // "once" or local YYYY-MM-DD
	RunningTotal  decimal.Decimal `db:"running_total" json:"running_total"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// ClaimWindowFor returns the uniqueness window an achievement claim at t falls in.
func ClaimWindowFor(a *Achievement, t time.Time, loc *time.Location) string {
	if !a.IsDaily {
		return ClaimWindowOnce
	}
	return t.In(loc).Format(ClaimWindowDayLayout)
}

// NewClaimEntry builds the ledger entry for claiming a, on top of the
// previous running total.
func NewClaimEntry(userID int64, a *Achievement, previous decimal.Decimal, now time.Time, loc *time.Location) *ExpLog {
	achievementID := a.ID
	window := ClaimWindowFor(a, now, loc)
	return &ExpLog{
		UserID:        userID,
		Delta:         a.Reward,
		Reason:        a.Title,
		AchievementID: &achievementID,
		ClaimWindow:   &window,
		RunningTotal:  previous.Add(a.Reward),
		CreatedAt:     now.UTC(),
	}
}
