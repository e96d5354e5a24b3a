package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/dracarys/library/internal/domain/lending"
	"github.com/dracarys/library/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Joins that attach the borrower's name and the book title to borrow rows
const (
	borrowUserJoin = "LEFT JOIN users ON users.user_id = borrows.user_id"
	borrowBookJoin = "LEFT JOIN books ON books.book_id = borrows.book_id"
)

// GormBorrowRepository implements lending.BorrowRepository using GORM.
// Borrow, MarkReturned and Delete run in a transaction because they keep
// books.available_quantity in step with the borrow rows.
type GormBorrowRepository struct {
	db *gorm.DB
}

var _ lending.BorrowRepository = (*GormBorrowRepository)(nil)

// NewGormBorrowRepository creates a new GormBorrowRepository
func NewGormBorrowRepository(db *gorm.DB) *GormBorrowRepository {
	return &GormBorrowRepository{db: db}
}

// Borrow inserts the borrow and takes the copies off the shelf
func (r *GormBorrowRepository) Borrow(ctx context.Context, b *lending.Borrow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book catalog.Book
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, b.BookID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrBookNotFound
			}
			return fmt.Errorf("failed to lock book: %w", err)
		}

		if book.AvailableQuantity < b.BorrowQuantity {
			return lending.ErrNotEnoughCopies
		}

		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("failed to create borrow: %w", err)
		}

		err = tx.Model(&catalog.Book{}).
			Where("book_id = ?", b.BookID).
			Update("available_quantity", gorm.Expr("available_quantity - ?", b.BorrowQuantity)).Error
		if err != nil {
			return fmt.Errorf("failed to decrement availability: %w", err)
		}
		return nil
	})
}

// MarkReturned closes an open borrow and puts the copies back on the shelf
func (r *GormBorrowRepository) MarkReturned(ctx context.Context, id uint, returnedAt shared.NaiveTime) (*lending.Borrow, error) {
	var out *lending.Borrow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var borrow lending.Borrow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&borrow, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return fmt.Errorf("failed to lock borrow: %w", err)
		}

		if borrow.Returned() {
			return lending.ErrAlreadyReturned
		}

		err = tx.Model(&lending.Borrow{}).
			Where("borrow_id = ?", id).
			Update("return_date", returnedAt).Error
		if err != nil {
			return fmt.Errorf("failed to set return date: %w", err)
		}

		err = tx.Model(&catalog.Book{}).
			Where("book_id = ?", borrow.BookID).
			Update("available_quantity", gorm.Expr("available_quantity + ?", borrow.BorrowQuantity)).Error
		if err != nil {
			return fmt.Errorf("failed to restore availability: %w", err)
		}

		borrow.ReturnDate = &returnedAt
		out = &borrow
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns a borrow with the borrower's name and the book title
func (r *GormBorrowRepository) FindByID(ctx context.Context, id uint) (*lending.Borrow, error) {
	var borrow lending.Borrow
	err := r.db.WithContext(ctx).
		Model(&lending.Borrow{}).
		Select("borrows.*, users.username, books.book_name").
		Joins(borrowUserJoin).
		Joins(borrowBookJoin).
		Where("borrows.borrow_id = ?", id).
		First(&borrow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find borrow: %w", err)
	}
	return &borrow, nil
}

// FindAll returns every borrow with names joined in
func (r *GormBorrowRepository) FindAll(ctx context.Context) ([]lending.Borrow, error) {
	var borrows []lending.Borrow
	err := r.db.WithContext(ctx).
		Model(&lending.Borrow{}).
		Select("borrows.*, users.username, books.book_name").
		Joins(borrowUserJoin).
		Joins(borrowBookJoin).
		Order("borrows.borrow_id").
		Find(&borrows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list borrows: %w", err)
	}
	return borrows, nil
}

// FindByUser returns one user's borrows with names joined in
func (r *GormBorrowRepository) FindByUser(ctx context.Context, userID uint) ([]lending.Borrow, error) {
	var borrows []lending.Borrow
	err := r.db.WithContext(ctx).
		Model(&lending.Borrow{}).
		Select("borrows.*, users.username, books.book_name").
		Joins(borrowUserJoin).
		Joins(borrowBookJoin).
		Where("borrows.user_id = ?", userID).
		Order("borrows.borrow_id").
		Find(&borrows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list borrows for user: %w", err)
	}
	return borrows, nil
}

// Delete removes a borrow, restoring availability when it is still open
func (r *GormBorrowRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var borrow lending.Borrow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&borrow, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return fmt.Errorf("failed to lock borrow: %w", err)
		}

		if !borrow.Returned() {
			err = tx.Model(&catalog.Book{}).
				Where("book_id = ?", borrow.BookID).
				Update("available_quantity", gorm.Expr("available_quantity + ?", borrow.BorrowQuantity)).Error
			if err != nil {
				return fmt.Errorf("failed to restore availability: %w", err)
			}
		}

		if err := tx.Delete(&lending.Borrow{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete borrow: %w", err)
		}
		return nil
	})
}
