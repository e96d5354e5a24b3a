package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/dracarys/library/internal/domain/shared"
	"gorm.io/gorm"
)

// genreJoin attaches genre_name to book rows
const genreJoin = "LEFT JOIN genre ON genre.genre_id = books.genre_id"

// GormBookRepository implements catalog.BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

var _ catalog.BookRepository = (*GormBookRepository)(nil)

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// Create inserts a new book
func (r *GormBookRepository) Create(ctx context.Context, book *catalog.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// FindByID returns a book with its genre name
func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*catalog.Book, error) {
	var book catalog.Book
	err := r.db.WithContext(ctx).
		Model(&catalog.Book{}).
		Select("books.*, genre.genre_name").
		Joins(genreJoin).
		Where("books.book_id = ?", id).
		First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return &book, nil
}

// FindAll returns every book with its genre name
func (r *GormBookRepository) FindAll(ctx context.Context) ([]catalog.Book, error) {
	var books []catalog.Book
	err := r.db.WithContext(ctx).
		Model(&catalog.Book{}).
		Select("books.*, genre.genre_name").
		Joins(genreJoin).
		Order("books.book_id").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Update persists all writable fields of the book
func (r *GormBookRepository) Update(ctx context.Context, book *catalog.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return nil
}

// Delete removes a book
func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
