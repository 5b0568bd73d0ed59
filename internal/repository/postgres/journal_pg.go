// internal/repository/postgres/journal_pg.go
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

const diaryColumns = `id, user_id, to_char(diary_date, 'YYYY-MM-DD') AS diary_date, content, title, mood, mood_color,
       weather_icon, sentiment, ai_message, keywords, topics, created_at, updated_at`

// DiaryRepository implements repository.DiaryRepository for PostgreSQL.
type DiaryRepository struct{}

// NewDiaryRepository creates a new DiaryRepository.
func NewDiaryRepository() repository.DiaryRepository {
	return &DiaryRepository{}
}

// GetDiaryByDate fetches and row-locks the user's diary for date.
func (r *DiaryRepository) GetDiaryByDate(ctx context.Context, q repository.DBExecutor, userID int64, date string) (*domain.Diary, error) {
	var diary domain.Diary
	query := `SELECT ` + diaryColumns + ` FROM diaries WHERE user_id = $1 AND diary_date = $2::date FOR UPDATE`
	if err := q.GetContext(ctx, &diary, query, userID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get diary %s for user %d: %w", date, userID, classify(err))
	}
	return &diary, nil
}

// CreateDiary inserts a diary entry.
func (r *DiaryRepository) CreateDiary(ctx context.Context, q repository.DBExecutor, d *domain.Diary) error {
	query := `INSERT INTO diaries (user_id, diary_date, content, title, mood, mood_color, weather_icon,
                                   sentiment, ai_message, keywords, topics, created_at, updated_at)
              VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		d.UserID, d.Date, d.Content, d.Title, d.Mood, d.MoodColor, d.WeatherIcon,
		d.Sentiment, d.AIMessage, d.Keywords, d.Topics, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("failed to create diary: %w", classify(err))
	}
	return nil
}

// UpdateDiary rewrites the mutable columns of an existing diary.
func (r *DiaryRepository) UpdateDiary(ctx context.Context, q repository.DBExecutor, d *domain.Diary) error {
	query := `UPDATE diaries
              SET content = $1, title = $2, mood = $3, mood_color = $4, weather_icon = $5,
                  sentiment = $6, ai_message = $7, keywords = $8, topics = $9, updated_at = $10
              WHERE id = $11`
	result, err := q.ExecContext(ctx, query,
		d.Content, d.Title, d.Mood, d.MoodColor, d.WeatherIcon,
		d.Sentiment, d.AIMessage, d.Keywords, d.Topics, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update diary %d: %w", d.ID, classify(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating diary %d: %w", d.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// PhotoRepository implements repository.PhotoRepository for PostgreSQL.
type PhotoRepository struct{}

// NewPhotoRepository creates a new PhotoRepository.
func NewPhotoRepository() repository.PhotoRepository {
	return &PhotoRepository{}
}

// CreatePhoto inserts photo metadata.
func (r *PhotoRepository) CreatePhoto(ctx context.Context, q repository.DBExecutor, p *domain.Photo) error {
	query := `INSERT INTO photos (owner_id, url, caption, uploaded_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := q.QueryRowContext(ctx, query, p.OwnerID, p.URL, p.Caption, p.UploadedAt).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to create photo: %w", classify(err))
	}
	return nil
}
