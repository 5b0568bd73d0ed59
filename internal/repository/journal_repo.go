// internal/repository/journal_repo.go
package repository

import (
	"context"

	"mood-wallet/internal/domain"
)

// DiaryRepository stores diary entries, unique per (user, date).
type DiaryRepository interface {
	// GetDiaryByDate returns util.ErrNotFound when the user has no entry for date.
	// Inside a transaction the row is locked for update.
	GetDiaryByDate(ctx context.Context, q DBExecutor, userID int64, date string) (*domain.Diary, error)
	// CreateDiary inserts diary and sets its ID. A second entry for the same
	// date returns util.ErrDuplicateEntry.
	CreateDiary(ctx context.Context, q DBExecutor, diary *domain.Diary) error
	UpdateDiary(ctx context.Context, q DBExecutor, diary *domain.Diary) error
}

// PhotoRepository stores photo metadata.
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, q DBExecutor, photo *domain.Photo) error
}
