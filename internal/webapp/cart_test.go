package webapp

import (
	"testing"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dune = catalog.Book{BookID: 1, BookName: "Dune"}
	emma = catalog.Book{BookID: 2, BookName: "Emma"}
)

func TestAggregateCart(t *testing.T) {
	t.Run("groups copies by title in first-seen order", func(t *testing.T) {
		lines := AggregateCart([]catalog.Book{dune, emma, dune, dune})

		require.Len(t, lines, 2)
		assert.Equal(t, "Dune", lines[0].Book.BookName)
		assert.Equal(t, 3, lines[0].Quantity)
		assert.Equal(t, "Emma", lines[1].Book.BookName)
		assert.Equal(t, 1, lines[1].Quantity)
	})

	t.Run("empty cart aggregates to no lines", func(t *testing.T) {
		assert.Empty(t, AggregateCart(nil))
	})
}

func TestRemoveOne(t *testing.T) {
	t.Run("drops a single copy", func(t *testing.T) {
		items := RemoveOne([]catalog.Book{dune, dune, emma}, 1)

		lines := AggregateCart(items)
		require.Len(t, lines, 2)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("removing the last copy removes the line", func(t *testing.T) {
		items := RemoveOne([]catalog.Book{dune, emma}, 1)

		lines := AggregateCart(items)
		require.Len(t, lines, 1)
		assert.Equal(t, "Emma", lines[0].Book.BookName)
	})

	t.Run("unknown id leaves the cart alone", func(t *testing.T) {
		items := RemoveOne([]catalog.Book{dune}, 99)
		assert.Len(t, items, 1)
	})
}

func TestRemoveAll(t *testing.T) {
	items := RemoveAll([]catalog.Book{dune, dune, emma, dune}, 1)

	require.Len(t, items, 1)
	assert.Equal(t, "Emma", items[0].BookName)
}
