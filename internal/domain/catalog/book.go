package catalog

import (
	"context"

	"github.com/dracarys/library/internal/domain/shared"
)

// Book is a title in the catalog. BookQuantity is the total number of owned
// copies; AvailableQuantity is the number currently on the shelf. Lending
// operations keep 0 <= AvailableQuantity <= BookQuantity.
type Book struct {
	BookID            uint    `gorm:"column:book_id;primaryKey" json:"book_id"`
	BookName          string  `gorm:"column:book_name" json:"book_name"`
	BookQuantity      int     `gorm:"column:book_quantity" json:"book_quantity"`
	AvailableQuantity int     `gorm:"column:available_quantity" json:"available_quantity"`
	BookDescription   *string `gorm:"column:book_description" json:"book_description"`
	BookPic           *string `gorm:"column:book_pic" json:"book_pic"`
	GenreID           *uint   `gorm:"column:genre_id" json:"genre_id"`

	// GenreName is populated from a join with the genre table on reads.
	GenreName string `gorm:"column:genre_name;->" json:"genre_name,omitempty"`
}

// TableName implements the GORM table name convention
func (Book) TableName() string {
	return "books"
}

// Catalog errors carried to the HTTP layer as-is.
var (
	ErrBookNotFound        = shared.NewDomainError(shared.CodeNotFound, "Book not found")
	ErrNoBooks             = shared.NewDomainError(shared.CodeNotFound, "No books found")
	ErrQuantityBelowLoaned = shared.NewDomainError(shared.CodeInvalidState, "Cannot reduce quantity below copies currently on loan")
)

// BookRepository defines persistence operations for books
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, id uint) (*Book, error)
	FindAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uint) error
}
