// internal/repository/postgres/achievement_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/repository"
	"mood-wallet/internal/util"
)

const achievementColumns = `id, title, description, reward, is_daily, progress_key, required_count`

// AchievementRepository implements repository.AchievementRepository for PostgreSQL.
type AchievementRepository struct{}

// NewAchievementRepository creates a new AchievementRepository.
func NewAchievementRepository() repository.AchievementRepository {
	return &AchievementRepository{}
}

// ListAchievements returns all achievements, one-time before daily, then by id.
func (r *AchievementRepository) ListAchievements(ctx context.Context, q repository.DBExecutor) ([]domain.Achievement, error) {
	achievements := []domain.Achievement{}
	query := `SELECT ` + achievementColumns + ` FROM achievements ORDER BY is_daily ASC, id ASC`
	if err := q.SelectContext(ctx, &achievements, query); err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", classify(err))
	}
	for i := range achievements {
		if err := checkProgressKey(&achievements[i]); err != nil {
			return nil, err
		}
	}
	return achievements, nil
}

// GetAchievementByID retrieves one achievement.
func (r *AchievementRepository) GetAchievementByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Achievement, error) {
	var achievement domain.Achievement
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE id = $1`
	if err := q.GetContext(ctx, &achievement, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get achievement %q: %w", id, classify(err))
	}
	if err := checkProgressKey(&achievement); err != nil {
		return nil, err
	}
	return &achievement, nil
}

// checkProgressKey rejects rows bound to a counter the application does not track.
func checkProgressKey(a *domain.Achievement) error {
	key, err := domain.ParseProgressKey(string(a.ProgressKey))
	if err != nil {
		return fmt.Errorf("achievement %q: %w", a.ID, err)
	}
	a.ProgressKey = key
	return nil
}
