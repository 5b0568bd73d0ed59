// internal/service/fakes_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"mood-wallet/internal/domain"
	"mood-wallet/internal/repository"
	"mood-wallet/internal/util"
	"mood-wallet/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var errFakeUnused = errors.New("fake: raw SQL is not supported")

// fakeConn stands in for *sqlx.DB outside transactions.
type fakeConn struct{}

func (fakeConn) GetContext(context.Context, interface{}, string, ...interface{}) error {
	return errFakeUnused
}

func (fakeConn) SelectContext(context.Context, interface{}, string, ...interface{}) error {
	return errFakeUnused
}

func (fakeConn) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errFakeUnused
}

func (fakeConn) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return &sql.Row{}
}

func (fakeConn) BeginTxx(context.Context, *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, errFakeUnused
}

// fakeTx is a transaction on fakeStore. Ledger locks are held until Commit or
// Rollback, and Rollback discards the ledger entries appended through it.
type fakeTx struct {
	fakeConn
	store    *fakeStore
	locks    []*sync.Mutex
	appended []int64
	done     bool
}

func (tx *fakeTx) Commit() error {
	if tx.done {
		return sql.ErrTxDone
	}
	if err := tx.store.commitErr; err != nil {
		tx.discard()
		return err
	}
	tx.finish()
	return nil
}

func (tx *fakeTx) Rollback() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.discard()
	return nil
}

func (tx *fakeTx) discard() {
	tx.store.removeEntries(tx.appended)
	tx.finish()
}

func (tx *fakeTx) finish() {
	tx.done = true
	for _, l := range tx.locks {
		l.Unlock()
	}
	tx.locks = nil
}

type progressID struct {
	userID int64
	key    domain.ProgressKey
}

// fakeStore is an in-memory implementation of every repository.
type fakeStore struct {
	mu           sync.Mutex
	achievements []domain.Achievement
	progress     map[progressID]decimal.Decimal
	ledger       []domain.ExpLog
	diaries      map[string]*domain.Diary
	photos       []domain.Photo
	userLocks    map[int64]*sync.Mutex
	nextID       int64
	commitErr    error
	incrementErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		achievements: seedAchievements(),
		progress:     make(map[progressID]decimal.Decimal),
		diaries:      make(map[string]*domain.Diary),
		userLocks:    make(map[int64]*sync.Mutex),
	}
}

func seedAchievements() []domain.Achievement {
	return []domain.Achievement{
		{ID: "first_diary", Title: "First diary", Description: "Write your first diary entry",
			Reward: decimal.NewFromInt(10), ProgressKey: domain.ProgressKeyFirstDiary, RequiredCount: decimal.NewFromInt(1)},
		{ID: "third_diary", Title: "Third diary", Description: "Write three diary entries",
			Reward: decimal.NewFromInt(30), ProgressKey: domain.ProgressKeyThirdDiary, RequiredCount: decimal.NewFromInt(3)},
		{ID: "2", Title: "Daily photo", Description: "Upload a photo today", IsDaily: true,
			Reward: decimal.NewFromInt(5), ProgressKey: domain.ProgressKeyDailyPhoto, RequiredCount: decimal.NewFromInt(1)},
	}
}

func (s *fakeStore) begin(context.Context, db.DBTxBeginner) (db.TxController, error) {
	return &fakeTx{store: s}, nil
}

func (s *fakeStore) removeEntries(ids []int64) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.ledger[:0]
	for _, e := range s.ledger {
		if !drop[e.ID] {
			kept = append(kept, e)
		}
	}
	s.ledger = kept
}

func (s *fakeStore) setProgress(userID int64, key domain.ProgressKey, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[progressID{userID, key}] = decimal.NewFromInt(v)
}

func (s *fakeStore) entries(userID int64) []domain.ExpLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ExpLog
	for _, e := range s.ledger {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// ListAchievements implements repository.AchievementRepository.
func (s *fakeStore) ListAchievements(context.Context, repository.DBExecutor) ([]domain.Achievement, error) {
	out := append([]domain.Achievement(nil), s.achievements...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDaily != out[j].IsDaily {
			return !out[i].IsDaily
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeStore) GetAchievementByID(_ context.Context, _ repository.DBExecutor, id string) (*domain.Achievement, error) {
	for _, a := range s.achievements {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, util.ErrNotFound
}

// IncrementProgress implements repository.ProgressRepository.
func (s *fakeStore) IncrementProgress(_ context.Context, _ repository.DBExecutor, userID int64, key domain.ProgressKey, amount decimal.Decimal, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementErr != nil {
		return s.incrementErr
	}
	id := progressID{userID, key}
	s.progress[id] = s.progress[id].Add(amount)
	return nil
}

func (s *fakeStore) GetProgress(_ context.Context, _ repository.DBExecutor, userID int64, key domain.ProgressKey) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress[progressID{userID, key}], nil
}

// LockUserLedger implements repository.LedgerRepository.
func (s *fakeStore) LockUserLedger(_ context.Context, q repository.DBExecutor, userID int64) error {
	tx, ok := q.(*fakeTx)
	if !ok {
		return fmt.Errorf("fake: ledger lock outside transaction")
	}
	s.mu.Lock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	tx.locks = append(tx.locks, l)
	return nil
}

func (s *fakeStore) AppendEntry(_ context.Context, q repository.DBExecutor, entry *domain.ExpLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.AchievementID != nil && entry.ClaimWindow != nil {
		for _, e := range s.ledger {
			if e.UserID == entry.UserID && e.AchievementID != nil && *e.AchievementID == *entry.AchievementID &&
				e.ClaimWindow != nil && *e.ClaimWindow == *entry.ClaimWindow {
				return util.ErrDuplicateEntry
			}
		}
	}
	s.nextID++
	entry.ID = s.nextID
	s.ledger = append(s.ledger, *entry)
	if tx, ok := q.(*fakeTx); ok {
		tx.appended = append(tx.appended, entry.ID)
	}
	return nil
}

func (s *fakeStore) GetLatestEntry(_ context.Context, _ repository.DBExecutor, userID int64) (*domain.ExpLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.ExpLog
	for i := range s.ledger {
		e := s.ledger[i]
		if e.UserID == userID && (latest == nil || e.ID > latest.ID) {
			latest = &e
		}
	}
	if latest == nil {
		return nil, util.ErrNotFound
	}
	return latest, nil
}

func (s *fakeStore) ListRecentEntries(_ context.Context, _ repository.DBExecutor, userID int64, limit int) ([]domain.ExpLog, error) {
	out := s.entries(userID)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) HasClaim(_ context.Context, _ repository.DBExecutor, userID int64, achievementID string) (bool, error) {
	for _, e := range s.entries(userID) {
		if e.AchievementID != nil && *e.AchievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) HasClaimBetween(_ context.Context, _ repository.DBExecutor, userID int64, achievementID string, from, to time.Time) (bool, error) {
	for _, e := range s.entries(userID) {
		if e.AchievementID != nil && *e.AchievementID == achievementID &&
			!e.CreatedAt.Before(from) && e.CreatedAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) SumDeltas(_ context.Context, _ repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range s.entries(userID) {
		sum = sum.Add(e.Delta)
	}
	return sum, nil
}

func (s *fakeStore) ListLedgerUserIDs(context.Context, repository.DBExecutor) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int64]bool)
	var ids []int64
	for _, e := range s.ledger {
		if !seen[e.UserID] {
			seen[e.UserID] = true
			ids = append(ids, e.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetDiaryByDate implements repository.DiaryRepository.
func (s *fakeStore) GetDiaryByDate(_ context.Context, _ repository.DBExecutor, userID int64, date string) (*domain.Diary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.diaries[diaryKey(userID, date)]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *fakeStore) CreateDiary(_ context.Context, _ repository.DBExecutor, diary *domain.Diary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := diaryKey(diary.UserID, diary.Date)
	if _, ok := s.diaries[key]; ok {
		return util.ErrDuplicateEntry
	}
	s.nextID++
	diary.ID = s.nextID
	cp := *diary
	s.diaries[key] = &cp
	return nil
}

func (s *fakeStore) UpdateDiary(_ context.Context, _ repository.DBExecutor, diary *domain.Diary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *diary
	s.diaries[diaryKey(diary.UserID, diary.Date)] = &cp
	return nil
}

// CreatePhoto implements repository.PhotoRepository.
func (s *fakeStore) CreatePhoto(_ context.Context, _ repository.DBExecutor, photo *domain.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	photo.ID = s.nextID
	s.photos = append(s.photos, *photo)
	return nil
}

func diaryKey(userID int64, date string) string {
	return fmt.Sprintf("%d/%s", userID, date)
}

// harness wires every service onto one fakeStore.
type harness struct {
	store        *fakeStore
	clock        *fixedClock
	loc          *time.Location
	tracker      ProgressTracker
	evaluator    *Evaluator
	achievements AchievementService
	wallet       WalletService
	journal      JournalService
}

func newHarness(now time.Time, loc *time.Location) *harness {
	store := newFakeStore()
	clock := newFixedClock(now)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	conn := fakeConn{}

	tracker := NewProgressTracker(conn, store, clock)
	evaluator := NewEvaluator(store, store, clock, loc)
	return &harness{
		store:     store,
		clock:     clock,
		loc:       loc,
		tracker:   tracker,
		evaluator: evaluator,
		achievements: NewAchievementService(conn, conn, store, store, evaluator, clock, loc, logger,
			store.begin, db.CommitTx, db.RollbackTx),
		wallet: NewWalletService(conn, conn, store, 0, logger,
			store.begin, db.CommitTx, db.RollbackTx),
		journal: NewJournalService(conn, conn, store, store, tracker, neutralAnalyzer{}, clock, loc, logger,
			store.begin, db.CommitTx, db.RollbackTx),
	}
}

type neutralAnalyzer struct{}

func (neutralAnalyzer) Analyze(context.Context, string) (domain.Sentiment, error) {
	return domain.Sentiment{Label: "neutral"}, nil
}
