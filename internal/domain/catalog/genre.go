package catalog

import "context"

// Genre groups books. The Books association is only loaded by
// FindAllWithBooks; the plain listing leaves it nil so it is omitted from
// JSON output.
type Genre struct {
	GenreID          uint    `gorm:"column:genre_id;primaryKey" json:"genre_id"`
	GenreName        string  `gorm:"column:genre_name" json:"genre_name"`
	GenreDescription *string `gorm:"column:genre_description" json:"genre_description"`
	Books            []Book  `gorm:"foreignKey:GenreID;references:GenreID" json:"books,omitempty"`
}

// TableName implements the GORM table name convention
func (Genre) TableName() string {
	return "genre"
}

// GenreRepository defines persistence operations for genres
type GenreRepository interface {
	FindAll(ctx context.Context) ([]Genre, error)
	FindAllWithBooks(ctx context.Context) ([]Genre, error)
}
