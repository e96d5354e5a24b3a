package lending

import "github.com/dracarys/library/internal/domain/shared"

// CreateBorrowRequest is the payload for taking copies of a book out
type CreateBorrowRequest struct {
	UserID         uint `json:"user_id" binding:"required"`
	BookID         uint `json:"book_id" binding:"required"`
	BorrowQuantity int  `json:"borrow_quantity" binding:"required,gt=0"`
}

// ReturnBorrowRequest is the payload for closing a borrow. ReturnDate is
// optional; the server stamps the current time when it is absent.
type ReturnBorrowRequest struct {
	ReturnDate *shared.NaiveTime `json:"return_date"`
}
