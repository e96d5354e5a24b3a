package catalog

// CreateBookRequest is the payload for adding a title to the catalog.
// Available copies start equal to the owned quantity.
type CreateBookRequest struct {
	BookName        string  `json:"book_name" binding:"required"`
	BookQuantity    int     `json:"book_quantity" binding:"required,gt=0"`
	BookDescription *string `json:"book_description"`
	BookPic         *string `json:"book_pic"`
	GenreID         *uint   `json:"genre_id"`
}

// UpdateBookRequest carries a partial update: only non-nil fields change.
// Changing the owned quantity moves the available count by the same amount
// so open borrows stay accounted for.
type UpdateBookRequest struct {
	BookName        *string `json:"book_name"`
	BookQuantity    *int    `json:"book_quantity" binding:"omitempty,gt=0"`
	BookDescription *string `json:"book_description"`
	BookPic         *string `json:"book_pic"`
	GenreID         *uint   `json:"genre_id"`
}
