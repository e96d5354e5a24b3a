package webapp

import (
	"testing"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []catalog.Book {
	return []catalog.Book{
		{BookID: 1, BookName: "Dune", GenreName: "Science Fiction"},
		{BookID: 2, BookName: "Dune Messiah", GenreName: "Science Fiction"},
		{BookID: 3, BookName: "Emma", GenreName: "Romance"},
	}
}

func TestFilterBooks(t *testing.T) {
	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, FilterBooks(testCatalog(), "", nil), 3)
	})

	t.Run("query matches substring case-insensitively", func(t *testing.T) {
		books := FilterBooks(testCatalog(), "dUnE", nil)

		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0].BookName)
	})

	t.Run("genre set narrows by genre name", func(t *testing.T) {
		books := FilterBooks(testCatalog(), "", map[string]bool{"Romance": true})

		require.Len(t, books, 1)
		assert.Equal(t, "Emma", books[0].BookName)
	})

	t.Run("query and genres must both hold", func(t *testing.T) {
		books := FilterBooks(testCatalog(), "dune", map[string]bool{"Romance": true})
		assert.Empty(t, books)
	})

	t.Run("whitespace-only query is no query", func(t *testing.T) {
		assert.Len(t, FilterBooks(testCatalog(), "   ", nil), 3)
	})
}
