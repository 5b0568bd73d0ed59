// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/repository"
	"mood-wallet/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It embeds MockDBExecutor so it also satisfies repository.DBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// txFuncs returns begin/commit/rollback functions bound to tx.
func txFuncs(tx *MockTxController, beginErr error) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		if beginErr != nil {
			return nil, beginErr
		}
		return tx, nil
	}
	commit := func(db.TxController) error { return tx.Commit() }
	rollback := func(db.TxController) { _ = tx.Rollback() }
	return begin, commit, rollback
}

// MockAchievementRepository is a mock implementation of repository.AchievementRepository.
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) ListAchievements(ctx context.Context, q repository.DBExecutor) ([]domain.Achievement, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) GetAchievementByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Achievement, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievement), args.Error(1)
}

// MockProgressRepository is a mock implementation of repository.ProgressRepository.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) IncrementProgress(ctx context.Context, q repository.DBExecutor, userID int64, key domain.ProgressKey, amount decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, q, userID, key, amount, now)
	return args.Error(0)
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, q repository.DBExecutor, userID int64, key domain.ProgressKey) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID, key)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockLedgerRepository is a mock implementation of repository.LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) LockUserLedger(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, q repository.DBExecutor, entry *domain.ExpLog) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetLatestEntry(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.ExpLog, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpLog), args.Error(1)
}

func (m *MockLedgerRepository) ListRecentEntries(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.ExpLog, error) {
	args := m.Called(ctx, q, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpLog), args.Error(1)
}

func (m *MockLedgerRepository) HasClaim(ctx context.Context, q repository.DBExecutor, userID int64, achievementID string) (bool, error) {
	args := m.Called(ctx, q, userID, achievementID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) HasClaimBetween(ctx context.Context, q repository.DBExecutor, userID int64, achievementID string, from, to time.Time) (bool, error) {
	args := m.Called(ctx, q, userID, achievementID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) SumDeltas(ctx context.Context, q repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgerUserIDs(ctx context.Context, q repository.DBExecutor) ([]int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockDiaryRepository is a mock implementation of repository.DiaryRepository.
type MockDiaryRepository struct {
	mock.Mock
}

func (m *MockDiaryRepository) GetDiaryByDate(ctx context.Context, q repository.DBExecutor, userID int64, date string) (*domain.Diary, error) {
	args := m.Called(ctx, q, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryRepository) CreateDiary(ctx context.Context, q repository.DBExecutor, diary *domain.Diary) error {
	args := m.Called(ctx, q, diary)
	return args.Error(0)
}

func (m *MockDiaryRepository) UpdateDiary(ctx context.Context, q repository.DBExecutor, diary *domain.Diary) error {
	args := m.Called(ctx, q, diary)
	return args.Error(0)
}

// MockPhotoRepository is a mock implementation of repository.PhotoRepository.
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) CreatePhoto(ctx context.Context, q repository.DBExecutor, photo *domain.Photo) error {
	args := m.Called(ctx, q, photo)
	return args.Error(0)
}

// MockProgressTracker is a mock implementation of ProgressTracker.
type MockProgressTracker struct {
	mock.Mock
}

func (m *MockProgressTracker) Increment(ctx context.Context, userID int64, key domain.ProgressKey, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, key, amount)
	return args.Error(0)
}

// MockAnalyzer is a mock implementation of sentiment.Analyzer.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, content string) (domain.Sentiment, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(domain.Sentiment), args.Error(1)
}

// fixedClock is a settable Clock.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(now time.Time) *fixedClock {
	return &fixedClock{now: now}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
