package catalog

import (
	"context"
	"errors"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/dracarys/library/internal/domain/shared"
)

// BookService handles catalog operations on books
type BookService struct {
	bookRepo catalog.BookRepository
}

// NewBookService creates a new BookService
func NewBookService(bookRepo catalog.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// Create adds a title to the catalog with all copies on the shelf
func (s *BookService) Create(ctx context.Context, req CreateBookRequest) (*catalog.Book, error) {
	book := &catalog.Book{
		BookName:          req.BookName,
		BookQuantity:      req.BookQuantity,
		AvailableQuantity: req.BookQuantity,
		BookDescription:   req.BookDescription,
		BookPic:           req.BookPic,
		GenreID:           req.GenreID,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Get returns one book by id
func (s *BookService) Get(ctx context.Context, id uint) (*catalog.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// List returns the whole catalog. An empty catalog is reported as
// ErrNoBooks, which the HTTP layer turns into a 404.
func (s *BookService) List(ctx context.Context) ([]catalog.Book, error) {
	books, err := s.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, catalog.ErrNoBooks
	}
	return books, nil
}

// Update applies the non-nil fields of req to the book. A quantity change
// shifts the available count by the same delta; shrinking below the number
// of copies currently on loan is rejected, because returning those copies
// would push availability past the owned quantity.
func (s *BookService) Update(ctx context.Context, id uint, req UpdateBookRequest) (*catalog.Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BookName != nil {
		book.BookName = *req.BookName
	}
	if req.BookQuantity != nil {
		loaned := book.BookQuantity - book.AvailableQuantity
		if *req.BookQuantity < loaned {
			return nil, catalog.ErrQuantityBelowLoaned
		}
		book.BookQuantity = *req.BookQuantity
		book.AvailableQuantity = *req.BookQuantity - loaned
	}
	if req.BookDescription != nil {
		book.BookDescription = req.BookDescription
	}
	if req.BookPic != nil {
		book.BookPic = req.BookPic
	}
	if req.GenreID != nil {
		book.GenreID = req.GenreID
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book from the catalog
func (s *BookService) Delete(ctx context.Context, id uint) error {
	err := s.bookRepo.Delete(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return catalog.ErrBookNotFound
	}
	return err
}
