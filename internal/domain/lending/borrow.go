package lending

import (
	"context"

	"github.com/dracarys/library/internal/domain/shared"
)

// Borrow records copies of one book taken out by one user. ReturnDate is nil
// while the borrow is open and is set at most once; marking a borrow
// returned restores the book's available quantity.
type Borrow struct {
	BorrowID       uint              `gorm:"column:borrow_id;primaryKey" json:"borrow_id"`
	UserID         uint              `gorm:"column:user_id" json:"user_id"`
	BookID         uint              `gorm:"column:book_id" json:"book_id"`
	BorrowQuantity int               `gorm:"column:borrow_quantity" json:"borrow_quantity"`
	BorrowDate     shared.NaiveTime  `gorm:"column:borrow_date" json:"borrow_date"`
	ReturnDate     *shared.NaiveTime `gorm:"column:return_date" json:"return_date"`

	// Username and BookName are populated from joins on reads.
	Username string `gorm:"column:username;->" json:"username,omitempty"`
	BookName string `gorm:"column:book_name;->" json:"book_name,omitempty"`
}

// TableName implements the GORM table name convention
func (Borrow) TableName() string {
	return "borrows"
}

// Returned reports whether the borrow has been closed
func (b *Borrow) Returned() bool {
	return b.ReturnDate != nil
}

// Lending errors carried to the HTTP layer as-is.
var (
	ErrBorrowNotFound  = shared.NewDomainError(shared.CodeNotFound, "Borrow not found")
	ErrNotEnoughCopies = shared.NewDomainError(shared.CodeInvalidInput, "Not enough books available")
	ErrAlreadyReturned = shared.NewDomainError(shared.CodeInvalidState, "Borrow already returned")
)

// BorrowRepository defines persistence operations for borrows. Borrow and
// MarkReturned are transactional: they adjust the book's available quantity
// together with the borrow row.
type BorrowRepository interface {
	// Borrow inserts b and decrements the book's available quantity.
	// Returns ErrNotEnoughCopies when fewer copies are on the shelf than
	// b.BorrowQuantity.
	Borrow(ctx context.Context, b *Borrow) error
	// MarkReturned sets the return date on an open borrow and restores the
	// book's available quantity. Returns ErrAlreadyReturned when the borrow
	// is already closed.
	MarkReturned(ctx context.Context, id uint, returnedAt shared.NaiveTime) (*Borrow, error)
	FindByID(ctx context.Context, id uint) (*Borrow, error)
	FindAll(ctx context.Context) ([]Borrow, error)
	FindByUser(ctx context.Context, userID uint) ([]Borrow, error)
	// Delete removes the borrow, restoring availability if it is still open.
	Delete(ctx context.Context, id uint) error
}
