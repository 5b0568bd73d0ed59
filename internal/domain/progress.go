// internal/domain/progress.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AchievementProgress is the accumulated counter for one user and key.
type AchievementProgress struct {
	UserID    int64           `db:"user_id" json:"user_id"`
	Key       ProgressKey     `db:"progress_key" json:"progress_key"`
	Progress  decimal.Decimal `db:"progress" json:"progress"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
