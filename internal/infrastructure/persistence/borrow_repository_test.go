package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dracarys/library/internal/domain/lending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBorrowRepository creates a GormBorrowRepository with a mocked SQL connection
func newMockBorrowRepository(t *testing.T) (*GormBorrowRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormBorrowRepository(gormDB), mock, mockDB
}

func TestGormBorrowRepository_Borrow(t *testing.T) {
	t.Run("rejects borrow when not enough copies", func(t *testing.T) {
		repo, mock, mockDB := newMockBorrowRepository(t)
		defer mockDB.Close()

		bookRows := sqlmock.NewRows([]string{"book_id", "book_name", "book_quantity", "available_quantity"}).
			AddRow(1, "Dune", 4, 1)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "books" WHERE "books"\."book_id" = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(1, 1).
			WillReturnRows(bookRows)
		mock.ExpectRollback()

		err := repo.Borrow(context.Background(), &lending.Borrow{
			UserID:         7,
			BookID:         1,
			BorrowQuantity: 3,
		})

		assert.Equal(t, lending.ErrNotEnoughCopies, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBorrowRepository_FindByUser(t *testing.T) {
	t.Run("lists borrows with joined names", func(t *testing.T) {
		repo, mock, mockDB := newMockBorrowRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"borrow_id", "user_id", "book_id", "borrow_quantity", "username", "book_name"}).
			AddRow(3, 7, 1, 2, "alice", "Dune")

		mock.ExpectQuery(`SELECT borrows\.\*, users\.username, books\.book_name FROM "borrows" LEFT JOIN users ON users\.user_id = borrows\.user_id LEFT JOIN books ON books\.book_id = borrows\.book_id WHERE borrows\.user_id = \$1 ORDER BY borrows\.borrow_id`).
			WithArgs(7).
			WillReturnRows(rows)

		borrows, err := repo.FindByUser(context.Background(), 7)

		assert.NoError(t, err)
		require.Len(t, borrows, 1)
		assert.Equal(t, "alice", borrows[0].Username)
		assert.Equal(t, "Dune", borrows[0].BookName)
		assert.False(t, borrows[0].Returned())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
