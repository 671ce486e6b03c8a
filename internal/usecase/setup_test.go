package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"marketing-fee-backend/config"
	"marketing-fee-backend/internal/cache"
	"marketing-fee-backend/internal/database"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeStorage records calls instead of touching the filesystem.
type fakeStorage struct {
	mu        sync.Mutex
	saved     []string
	deleted   []string
	deleteErr error
}

func (s *fakeStorage) Save(_ context.Context, ext string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	url := "/uploads/evidence/file" + string(rune('a'+len(s.saved))) + ext
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *fakeStorage) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, url)
	return nil
}

// recordingCache never hits and remembers which periods were invalidated.
type recordingCache struct {
	cache.NoopCache
	mu          sync.Mutex
	invalidated []period.Period
}

func (c *recordingCache) InvalidatePeriod(_ context.Context, p period.Period) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, p)
}

func (c *recordingCache) periods() []period.Period {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]period.Period(nil), c.invalidated...)
}

type testEnv struct {
	db        *gorm.DB
	storage   *fakeStorage
	cache     *recordingCache
	hierarchy *HierarchyUsecase
	usage     *UsageUsecase
	approval  *ApprovalUsecase
	reports   *ReportUsecase
	quota     *QuotaUsecase
	users     *UserUsecase
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	require.NoError(t, database.SeedAll(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	store := &fakeStorage{}
	return newTestEnvWith(t, db, store, repository.NewReportRepository(db))
}

func newTestEnvWith(t *testing.T, db *gorm.DB, store *fakeStorage, reportRepo repository.ReportRepository) *testEnv {
	t.Helper()
	var (
		hierRepo  = repository.NewHierarchyRepository(db)
		userRepo  = repository.NewUserRepository(db)
		usageRepo = repository.NewUsageRepository(db)
		recRepo   = repository.NewRecommendationRepository(db)
		feeRepo   = repository.NewMarketingFeeRepository(db)
		poinRepo  = repository.NewPoinRepository(db)
		roleRepo  = repository.NewRoleRepository(db)
		c         = &recordingCache{}
	)
	hier := NewHierarchyUsecase(hierRepo, userRepo)
	return &testEnv{
		db:        db,
		storage:   store,
		cache:     c,
		hierarchy: hier,
		usage:     NewUsageUsecase(hier, usageRepo, reportRepo, recRepo, feeRepo, poinRepo, c, time.UTC),
		approval:  NewApprovalUsecase(reportRepo, hier, c, time.UTC),
		reports:   NewReportUsecase(reportRepo, poinRepo, userRepo, store, hier, c, time.UTC, 1<<20),
		quota:     NewQuotaUsecase(recRepo, feeRepo, poinRepo, userRepo, hier, c, time.UTC),
		users:     NewUserUsecase(userRepo, roleRepo, hierRepo),
	}
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func addReport(t *testing.T, db *gorm.DB, userID, poinID uint, amount float64, at time.Time) *model.Report {
	t.Helper()
	r := &model.Report{UserID: userID, PoinID: poinID, Description: "kunjungan", AmountUsed: amount, Time: at}
	require.NoError(t, db.Create(r).Error)
	return r
}

func addRecommendation(t *testing.T, db *gorm.DB, userID, poinID uint, amount float64, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.Recommendation{UserID: userID, PoinID: poinID, Time: at, Recommend: amount}).Error)
}

var errBoom = errors.New("boom")
