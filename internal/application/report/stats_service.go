package report

import (
	"context"
	"errors"
	"time"

	"github.com/dracarys/library/internal/domain/report"
	"github.com/dracarys/library/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// Cache keys for the dashboard counters
const (
	keyUniqueBooks     = "unique_books"
	keyTotalCopies     = "total_copies"
	keyAvailableCopies = "available_copies"
	keyTotalBorrows    = "total_borrows"
	keyTotalMembers    = "total_members"
)

// weeklyWindow is how far back the weekly borrowings figure looks
const weeklyWindow = 7 * 24 * time.Hour

// StatsService serves the dashboard and report figures. Scalar counters go
// through the Redis cache when one is configured; a nil cache falls
// through to the database on every call.
type StatsService struct {
	statsRepo report.StatsRepository
	stats     *cache.StatCache
	logger    *zap.Logger
}

// NewStatsService creates a new StatsService. stats may be nil.
func NewStatsService(statsRepo report.StatsRepository, stats *cache.StatCache, logger *zap.Logger) *StatsService {
	return &StatsService{statsRepo: statsRepo, stats: stats, logger: logger}
}

func (s *StatsService) cached(ctx context.Context, key string, query func(context.Context) (int64, error)) (int64, error) {
	if n, err := s.stats.GetInt64(ctx, key); err == nil {
		return n, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("stat cache read failed", zap.String("key", key), zap.Error(err))
	}

	n, err := query(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.stats.SetInt64(ctx, key, n); err != nil {
		s.logger.Warn("stat cache write failed", zap.String("key", key), zap.Error(err))
	}
	return n, nil
}

// UniqueBooks counts distinct titles in the catalog
func (s *StatsService) UniqueBooks(ctx context.Context) (int64, error) {
	return s.cached(ctx, keyUniqueBooks, s.statsRepo.UniqueBooks)
}

// TotalCopies counts owned copies across the catalog
func (s *StatsService) TotalCopies(ctx context.Context) (int64, error) {
	return s.cached(ctx, keyTotalCopies, s.statsRepo.TotalCopies)
}

// AvailableCopies counts copies currently on the shelf
func (s *StatsService) AvailableCopies(ctx context.Context) (int64, error) {
	return s.cached(ctx, keyAvailableCopies, s.statsRepo.AvailableCopies)
}

// TotalBorrows counts borrow records, open and closed
func (s *StatsService) TotalBorrows(ctx context.Context) (int64, error) {
	return s.cached(ctx, keyTotalBorrows, s.statsRepo.TotalBorrows)
}

// TotalMembers counts registered users
func (s *StatsService) TotalMembers(ctx context.Context) (int64, error) {
	return s.cached(ctx, keyTotalMembers, s.statsRepo.TotalMembers)
}

// BooksPerGenre returns the genre distribution of the catalog
func (s *StatsService) BooksPerGenre(ctx context.Context) ([]report.GenreBookCount, error) {
	return s.statsRepo.BooksPerGenre(ctx)
}

// WeeklyStats buckets the last seven days of borrows by weekday, in the
// chart shape the frontends render directly
func (s *StatsService) WeeklyStats(ctx context.Context) (*report.WeeklyStats, error) {
	dates, err := s.statsRepo.BorrowDatesSince(ctx, time.Now().Add(-weeklyWindow))
	if err != nil {
		return nil, err
	}
	stats := report.BucketByWeekday(dates)
	return &stats, nil
}
