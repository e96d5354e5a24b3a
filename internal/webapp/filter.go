package webapp

import (
	"strings"

	"github.com/dracarys/library/internal/domain/catalog"
)

// FilterBooks narrows the catalog by a case-insensitive substring match on
// the title and a set of selected genre names. Both conditions must hold;
// an empty query or empty genre set leaves that condition open.
func FilterBooks(books []catalog.Book, query string, genres map[string]bool) []catalog.Book {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]catalog.Book, 0, len(books))
	for _, book := range books {
		if query != "" && !strings.Contains(strings.ToLower(book.BookName), query) {
			continue
		}
		if len(genres) > 0 && !genres[book.GenreName] {
			continue
		}
		out = append(out, book)
	}
	return out
}
