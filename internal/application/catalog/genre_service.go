package catalog

import (
	"context"

	"github.com/dracarys/library/internal/domain/catalog"
)

// GenreService handles read operations on genres
type GenreService struct {
	genreRepo catalog.GenreRepository
}

// NewGenreService creates a new GenreService
func NewGenreService(genreRepo catalog.GenreRepository) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

// List returns all genres
func (s *GenreService) List(ctx context.Context) ([]catalog.Genre, error) {
	return s.genreRepo.FindAll(ctx)
}

// ListWithBooks returns all genres with their books nested
func (s *GenreService) ListWithBooks(ctx context.Context) ([]catalog.Genre, error) {
	return s.genreRepo.FindAllWithBooks(ctx)
}
