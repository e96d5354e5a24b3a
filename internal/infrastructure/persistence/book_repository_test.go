package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dracarys/library/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBookRepository creates a GormBookRepository with a mocked SQL connection
func newMockBookRepository(t *testing.T) (*GormBookRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBookRepository(gormDB), mock, mockDB
}

func TestNewGormBookRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormBookRepository_FindByID(t *testing.T) {
	t.Run("finds existing book with genre name", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"book_id", "book_name", "book_quantity", "available_quantity", "genre_id", "genre_name"}).
			AddRow(1, "The Go Programming Language", 5, 3, 2, "Technology")

		mock.ExpectQuery(`SELECT books\.\*, genre\.genre_name FROM "books" LEFT JOIN genre ON genre\.genre_id = books\.genre_id WHERE books\.book_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(1, 1).
			WillReturnRows(rows)

		book, err := repo.FindByID(context.Background(), 1)

		assert.NoError(t, err)
		assert.NotNil(t, book)
		assert.Equal(t, uint(1), book.BookID)
		assert.Equal(t, "The Go Programming Language", book.BookName)
		assert.Equal(t, "Technology", book.GenreName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent book", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT books\.\*, genre\.genre_name FROM "books" LEFT JOIN genre ON genre\.genre_id = books\.genre_id WHERE books\.book_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(42, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		book, err := repo.FindByID(context.Background(), 42)

		assert.Error(t, err)
		assert.Nil(t, book)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookRepository_FindAll(t *testing.T) {
	t.Run("lists books ordered by id", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"book_id", "book_name", "book_quantity", "available_quantity", "genre_id", "genre_name"}).
			AddRow(1, "Dune", 4, 4, 1, "Science Fiction").
			AddRow(2, "Emma", 2, 1, 3, "Romance")

		mock.ExpectQuery(`SELECT books\.\*, genre\.genre_name FROM "books" LEFT JOIN genre ON genre\.genre_id = books\.genre_id ORDER BY books\.book_id`).
			WillReturnRows(rows)

		books, err := repo.FindAll(context.Background())

		assert.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0].BookName)
		assert.Equal(t, "Romance", books[1].GenreName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when no books exist", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"book_id", "book_name", "book_quantity", "available_quantity", "genre_id", "genre_name"})

		mock.ExpectQuery(`SELECT books\.\*, genre\.genre_name FROM "books"`).
			WillReturnRows(rows)

		books, err := repo.FindAll(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, books)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookRepository_Delete(t *testing.T) {
	t.Run("deletes existing book", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "books" WHERE "books"\."book_id" = \$1`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "books" WHERE "books"\."book_id" = \$1`).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 42)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
