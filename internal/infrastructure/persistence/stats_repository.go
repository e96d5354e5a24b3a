package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/dracarys/library/internal/domain/identity"
	"github.com/dracarys/library/internal/domain/lending"
	"github.com/dracarys/library/internal/domain/report"
	"gorm.io/gorm"
)

// GormStatsRepository implements report.StatsRepository with aggregate
// queries over the catalog, users and borrows tables
type GormStatsRepository struct {
	db *gorm.DB
}

var _ report.StatsRepository = (*GormStatsRepository)(nil)

// NewGormStatsRepository creates a new GormStatsRepository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// UniqueBooks counts catalog rows
func (r *GormStatsRepository) UniqueBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Book{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// TotalCopies sums book_quantity over the catalog
func (r *GormStatsRepository) TotalCopies(ctx context.Context) (int64, error) {
	return r.sumBooks(ctx, "book_quantity")
}

// AvailableCopies sums available_quantity over the catalog
func (r *GormStatsRepository) AvailableCopies(ctx context.Context) (int64, error) {
	return r.sumBooks(ctx, "available_quantity")
}

func (r *GormStatsRepository) sumBooks(ctx context.Context, column string) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&catalog.Book{}).
		Select("SUM(" + column + ")").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s: %w", column, err)
	}
	// SUM over an empty table is NULL
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// TotalBorrows counts borrow rows
func (r *GormStatsRepository) TotalBorrows(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&lending.Borrow{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count borrows: %w", err)
	}
	return count, nil
}

// TotalMembers counts user rows
func (r *GormStatsRepository) TotalMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// BooksPerGenre returns the number of titles in each genre
func (r *GormStatsRepository) BooksPerGenre(ctx context.Context) ([]report.GenreBookCount, error) {
	var rows []report.GenreBookCount
	err := r.db.WithContext(ctx).
		Table("genre").
		Select("genre.genre_name, COUNT(books.book_id) AS book_count").
		Joins("LEFT JOIN books ON books.genre_id = genre.genre_id").
		Group("genre.genre_name").
		Order("genre.genre_name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count books per genre: %w", err)
	}
	return rows, nil
}

// BorrowDatesSince returns the borrow timestamps at or after since
func (r *GormStatsRepository) BorrowDatesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&lending.Borrow{}).
		Where("borrow_date >= ?", since).
		Pluck("borrow_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch borrow dates: %w", err)
	}
	return dates, nil
}
