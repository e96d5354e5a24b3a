package lending

import (
	"context"
	"errors"
	"time"

	"github.com/dracarys/library/internal/domain/lending"
	"github.com/dracarys/library/internal/domain/shared"
)

// BorrowService handles the lending lifecycle
type BorrowService struct {
	borrowRepo lending.BorrowRepository
}

// NewBorrowService creates a new BorrowService
func NewBorrowService(borrowRepo lending.BorrowRepository) *BorrowService {
	return &BorrowService{borrowRepo: borrowRepo}
}

// Create takes copies off the shelf and records the borrow, stamped with
// the current time
func (s *BorrowService) Create(ctx context.Context, req CreateBorrowRequest) (*lending.Borrow, error) {
	borrow := &lending.Borrow{
		UserID:         req.UserID,
		BookID:         req.BookID,
		BorrowQuantity: req.BorrowQuantity,
		BorrowDate:     shared.NewNaiveTime(time.Now()),
	}
	if err := s.borrowRepo.Borrow(ctx, borrow); err != nil {
		return nil, err
	}
	return borrow, nil
}

// Get returns one borrow by id
func (s *BorrowService) Get(ctx context.Context, id uint) (*lending.Borrow, error) {
	borrow, err := s.borrowRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, lending.ErrBorrowNotFound
		}
		return nil, err
	}
	return borrow, nil
}

// List returns every borrow with the borrower's name and the book title
func (s *BorrowService) List(ctx context.Context) ([]lending.Borrow, error) {
	return s.borrowRepo.FindAll(ctx)
}

// ListByUser returns one user's borrows
func (s *BorrowService) ListByUser(ctx context.Context, userID uint) ([]lending.Borrow, error) {
	return s.borrowRepo.FindByUser(ctx, userID)
}

// MarkReturned closes an open borrow and puts the copies back on the
// shelf. A nil returnedAt stamps the current time.
func (s *BorrowService) MarkReturned(ctx context.Context, id uint, returnedAt *shared.NaiveTime) (*lending.Borrow, error) {
	at := shared.NewNaiveTime(time.Now())
	if returnedAt != nil {
		at = *returnedAt
	}
	borrow, err := s.borrowRepo.MarkReturned(ctx, id, at)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, lending.ErrBorrowNotFound
		}
		return nil, err
	}
	return borrow, nil
}

// Delete removes a borrow record, restoring availability when it is still
// open
func (s *BorrowService) Delete(ctx context.Context, id uint) error {
	err := s.borrowRepo.Delete(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return lending.ErrBorrowNotFound
	}
	return err
}
