// internal/domain/achievement.go
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProgressKey names a per-user progress counter. The set is closed: every
// achievement binds to exactly one of these keys.
type ProgressKey string

const (
	ProgressKeyFirstDiary ProgressKey = "first_diary"
	ProgressKeyThirdDiary ProgressKey = "third_diary"
	ProgressKeyDailyPhoto ProgressKey = "daily_photo"
)

var progressKeys = map[ProgressKey]struct{}{
	ProgressKeyFirstDiary: {},
	ProgressKeyThirdDiary: {},
	ProgressKeyDailyPhoto: {},
}

// ParseProgressKey converts a raw string into a known ProgressKey.
func ParseProgressKey(s string) (ProgressKey, error) {
	k := ProgressKey(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown progress key %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the known progress keys.
func (k ProgressKey) Valid() bool {
	_, ok := progressKeys[k]
	return ok
}

// DiaryProgressKeys are the counters bumped when a new diary entry is created.
var DiaryProgressKeys = []ProgressKey{ProgressKeyFirstDiary, ProgressKeyThirdDiary}

// PhotoProgressKeys are the counters bumped when a photo is recorded.
var PhotoProgressKeys = []ProgressKey{ProgressKeyDailyPhoto}

// Achievement is immutable reference data describing a claimable reward.
type Achievement struct {
	ID            string          `db:"id" json:"id"`
	Title         string          `db:"title" json:"title"`
	Description   string          `db:"description" json:"description"`
	Reward        decimal.Decimal `db:"reward" json:"reward"`                 // NUMERIC(20, 4) in DB
	IsDaily       bool            `db:"is_daily" json:"is_daily"`             // Claimable once per calendar day when true
	ProgressKey   ProgressKey     `db:"progress_key" json:"progress_key"`     // Counter the threshold is checked against
	RequiredCount decimal.Decimal `db:"required_count" json:"required_count"` // Minimum progress needed to claim
}

// ThresholdMet reports whether progress satisfies the achievement's requirement.
func (a *Achievement) ThresholdMet(progress decimal.Decimal) bool {
	return progress.GreaterThanOrEqual(a.RequiredCount)
}

// AchievementStatus is the derived, per-user view of an achievement.
type AchievementStatus struct {
	Claimable    bool `json:"claimable"`
	ClaimedToday bool `json:"claimed_today"`
	Unlocked     bool `json:"unlocked"`
}

// AchievementView pairs an achievement with a user's current status.
type AchievementView struct {
	Achievement
	Status AchievementStatus
}
