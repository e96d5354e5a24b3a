package persistence

import (
	"context"
	"fmt"

	"github.com/dracarys/library/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormGenreRepository implements catalog.GenreRepository using GORM
type GormGenreRepository struct {
	db *gorm.DB
}

var _ catalog.GenreRepository = (*GormGenreRepository)(nil)

// NewGormGenreRepository creates a new GormGenreRepository
func NewGormGenreRepository(db *gorm.DB) *GormGenreRepository {
	return &GormGenreRepository{db: db}
}

// FindAll returns all genres
func (r *GormGenreRepository) FindAll(ctx context.Context) ([]catalog.Genre, error) {
	var genres []catalog.Genre
	err := r.db.WithContext(ctx).
		Order("genre_id").
		Find(&genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// FindAllWithBooks returns all genres, each with its books preloaded
func (r *GormGenreRepository) FindAllWithBooks(ctx context.Context) ([]catalog.Genre, error) {
	var genres []catalog.Genre
	err := r.db.WithContext(ctx).
		Preload("Books").
		Order("genre_id").
		Find(&genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list genres with books: %w", err)
	}
	return genres, nil
}
