package webapp

import "github.com/dracarys/library/internal/domain/catalog"

// CartLine is one aggregated row of the cart page: a book and how many
// copies of it the cart holds
type CartLine struct {
	Book     catalog.Book
	Quantity int
}

// AggregateCart folds the raw cart (one entry per added copy) into lines,
// one per title, in first-seen order
func AggregateCart(items []catalog.Book) []CartLine {
	index := make(map[uint]int)
	lines := make([]CartLine, 0)
	for _, item := range items {
		if i, ok := index[item.BookID]; ok {
			lines[i].Quantity++
			continue
		}
		index[item.BookID] = len(lines)
		lines = append(lines, CartLine{Book: item, Quantity: 1})
	}
	return lines
}

// AddToCart appends one copy of the book to the raw cart
func AddToCart(items []catalog.Book, book catalog.Book) []catalog.Book {
	return append(items, book)
}

// RemoveOne drops a single copy of the book from the raw cart. Removing
// the last copy removes the title's line entirely.
func RemoveOne(items []catalog.Book, bookID uint) []catalog.Book {
	for i, item := range items {
		if item.BookID == bookID {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// RemoveAll drops every copy of the book from the raw cart
func RemoveAll(items []catalog.Book, bookID uint) []catalog.Book {
	out := items[:0]
	for _, item := range items {
		if item.BookID != bookID {
			out = append(out, item)
		}
	}
	return out
}

// CartCount returns the number of copies in the raw cart
func CartCount(items []catalog.Book) int {
	return len(items)
}
