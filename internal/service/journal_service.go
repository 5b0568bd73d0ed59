// internal/service/journal_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/metrics"
	"mood-wallet/internal/repository"
	"mood-wallet/internal/sentiment"
	"mood-wallet/internal/util"
	"mood-wallet/pkg/db"

	"github.com/shopspring/decimal"
)

// JournalService saves diary entries and photo records and feeds the
// progress counters they drive.
type JournalService interface {
	// SaveDiary creates or updates the user's entry for in.Date. created is
	// true when a new entry was inserted.
	SaveDiary(ctx context.Context, userID int64, in domain.DiaryInput) (diary *domain.Diary, created bool, err error)
	AddPhoto(ctx context.Context, userID int64, photoURL, caption string) (*domain.Photo, error)
}

type journalService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	diaryRepo  repository.DiaryRepository
	photoRepo  repository.PhotoRepository
	tracker    ProgressTracker
	analyzer   sentiment.Analyzer
	clock      Clock
	loc        *time.Location
	logger     *slog.Logger
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewJournalService creates a new instance of JournalService.
func NewJournalService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	diaryRepo repository.DiaryRepository,
	photoRepo repository.PhotoRepository,
	tracker ProgressTracker,
	analyzer sentiment.Analyzer,
	clock Clock,
	loc *time.Location,
	logger *slog.Logger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) JournalService {
	return &journalService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		diaryRepo:  diaryRepo,
		photoRepo:  photoRepo,
		tracker:    tracker,
		analyzer:   analyzer,
		clock:      clock,
		loc:        loc,
		logger:     logger,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

func (s *journalService) SaveDiary(ctx context.Context, userID int64, in domain.DiaryInput) (*domain.Diary, bool, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, false, fmt.Errorf("%w: content is required", util.ErrInvalidInput)
	}

	if in.Date == "" {
		in.Date = s.clock.Now().In(s.loc).Format(domain.DiaryDateLayout)
	} else if _, err := time.Parse(domain.DiaryDateLayout, in.Date); err != nil {
		return nil, false, fmt.Errorf("%w: date must be YYYY-MM-DD", util.ErrInvalidInput)
	}

	tag := s.analyze(ctx, userID, content)

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, false, fmt.Errorf("save diary: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, false, fmt.Errorf("save diary: transaction controller does not implement DBExecutor")
	}

	now := s.clock.Now().UTC()
	diary, err := s.diaryRepo.GetDiaryByDate(ctx, txExecutor, userID, in.Date)
	created := false
	switch {
	case err == nil:
		in.Apply(diary)
		diary.ApplySentiment(tag)
		diary.UpdatedAt = now
		if err := s.diaryRepo.UpdateDiary(ctx, txExecutor, diary); err != nil {
			return nil, false, fmt.Errorf("save diary: failed to update diary %d: %w", diary.ID, err)
		}
	case util.IsError(err, util.ErrNotFound):
		diary = &domain.Diary{UserID: userID, Date: in.Date, CreatedAt: now, UpdatedAt: now}
		in.Apply(diary)
		diary.ApplySentiment(tag)
		if err := s.diaryRepo.CreateDiary(ctx, txExecutor, diary); err != nil {
			return nil, false, fmt.Errorf("save diary: failed to create diary: %w", err)
		}
		created = true
	default:
		return nil, false, fmt.Errorf("save diary: failed to get diary for %s: %w", in.Date, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, false, fmt.Errorf("save diary: failed to commit transaction: %w", err)
	}

	if created {
		s.trackProgress(ctx, userID, domain.DiaryProgressKeys)
	}
	return diary, created, nil
}

func (s *journalService) AddPhoto(ctx context.Context, userID int64, photoURL, caption string) (*domain.Photo, error) {
	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		return nil, fmt.Errorf("%w: url is required", util.ErrInvalidInput)
	}
	if _, err := url.ParseRequestURI(photoURL); err != nil {
		return nil, fmt.Errorf("%w: url is malformed", util.ErrInvalidInput)
	}

	photo := &domain.Photo{
		OwnerID:    userID,
		URL:        photoURL,
		Caption:    strings.TrimSpace(caption),
		UploadedAt: s.clock.Now().UTC(),
	}
	if err := s.photoRepo.CreatePhoto(ctx, s.dbExecutor, photo); err != nil {
		return nil, fmt.Errorf("add photo: %w", err)
	}

	s.trackProgress(ctx, userID, domain.PhotoProgressKeys)
	return photo, nil
}

// analyze never fails the save: an analyzer error leaves the entry untagged.
func (s *journalService) analyze(ctx context.Context, userID int64, content string) domain.Sentiment {
	tag, err := s.analyzer.Analyze(ctx, content)
	if err != nil {
		s.logger.Warn("Sentiment analysis failed", "user_id", userID, "error", err)
		return domain.Sentiment{}
	}
	return tag
}

// trackProgress is best-effort. The primary record is already committed, so
// failures are logged and counted, never returned.
func (s *journalService) trackProgress(ctx context.Context, userID int64, keys []domain.ProgressKey) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.tracker.Increment(ctx, userID, key, decimal.NewFromInt(1)); err != nil {
			metrics.RecordProgressFailure(string(key))
			s.logger.Warn("Progress increment failed", "user_id", userID, "key", key, "error", err)
		}
	}
}
