// internal/repository/achievement_repo.go
package repository

import (
	"context"

	"mood-wallet/internal/domain"
)

// AchievementRepository reads the achievement reference data.
type AchievementRepository interface {
	// ListAchievements returns every achievement ordered by is_daily, then id.
	ListAchievements(ctx context.Context, q DBExecutor) ([]domain.Achievement, error)
	// GetAchievementByID returns util.ErrNotFound when id is unknown.
	GetAchievementByID(ctx context.Context, q DBExecutor, id string) (*domain.Achievement, error)
}
