package webapp

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/dracarys/library/internal/client"
	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Home renders the catalog page: every book plus a sidebar of genres,
// each listing its books, with the search box and genre checkboxes
// applied locally
func (s *Server) Home(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		wg     sync.WaitGroup
		books  View[[]catalog.Book]
		genres View[[]catalog.Genre]
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		list, err := s.api.Books(ctx)
		if err != nil {
			// An empty catalog comes back as a 404; show an empty shelf,
			// not an error.
			if client.IsNotFound(err) {
				books = Ready([]catalog.Book{})
				return
			}
			books = Failed[[]catalog.Book](err)
			return
		}
		books = Ready(list)
	}()
	go func() {
		defer wg.Done()
		list, err := s.api.GenresWithBooks(ctx)
		if err != nil {
			genres = Failed[[]catalog.Genre](err)
			return
		}
		genres = Ready(list)
	}()
	wg.Wait()

	query := c.Query("q")
	selected := make(map[string]bool)
	for _, g := range c.QueryArray("genre") {
		selected[g] = true
	}

	var filtered []catalog.Book
	if books.OK() {
		filtered = FilterBooks(books.Data, query, selected)
	}

	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Page":     s.page(),
		"Books":    books,
		"Filtered": filtered,
		"Genres":   genres,
		"Query":    query,
		"Selected": selected,
	})
}

// CartPage renders the aggregated cart
func (s *Server) CartPage(c *gin.Context) {
	c.HTML(http.StatusOK, "cart.tmpl", gin.H{
		"Page":  s.page(),
		"Lines": AggregateCart(s.cart()),
	})
}

// CartAdd puts one copy of a book into the cart, snapshotting the book as
// it looks right now
func (s *Server) CartAdd(c *gin.Context) {
	id, ok := formID(c, "book_id")
	if !ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}

	book, err := s.api.Book(c.Request.Context(), id)
	if err != nil {
		s.logger.Warn("failed to fetch book for cart", zap.Uint("book_id", id), zap.Error(err))
		c.Redirect(http.StatusFound, "/home")
		return
	}

	s.saveCart(AddToCart(s.cart(), *book))
	c.Redirect(http.StatusFound, "/home")
}

// CartRemoveOne drops a single copy from the cart
func (s *Server) CartRemoveOne(c *gin.Context) {
	if id, ok := formID(c, "book_id"); ok {
		s.saveCart(RemoveOne(s.cart(), id))
	}
	c.Redirect(http.StatusFound, "/cart")
}

// CartRemoveAll drops a whole line from the cart
func (s *Server) CartRemoveAll(c *gin.Context) {
	if id, ok := formID(c, "book_id"); ok {
		s.saveCart(RemoveAll(s.cart(), id))
	}
	c.Redirect(http.StatusFound, "/cart")
}

// CartConfirm posts one borrow per cart line. Lines that fail stay in the
// cart; the result page lists what happened per title.
func (s *Server) CartConfirm(c *gin.Context) {
	user := s.currentUser()
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	type lineResult struct {
		Line CartLine
		Err  string
	}

	items := s.cart()
	results := make([]lineResult, 0)
	remaining := items

	for _, line := range AggregateCart(items) {
		_, err := s.api.CreateBorrow(c.Request.Context(), user.UserID, line.Book.BookID, line.Quantity)
		if err != nil {
			results = append(results, lineResult{Line: line, Err: borrowErrorMessage(err)})
			continue
		}
		remaining = RemoveAll(remaining, line.Book.BookID)
		results = append(results, lineResult{Line: line})
	}
	s.saveCart(remaining)

	c.HTML(http.StatusOK, "cart_result.tmpl", gin.H{
		"Page":    s.page(),
		"Results": results,
	})
}

// MyProfile shows the session user and their borrows
func (s *Server) MyProfile(c *gin.Context) {
	user := s.currentUser()
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	borrows, err := s.api.BorrowsByUser(c.Request.Context(), user.UserID)
	if err != nil {
		s.logger.Warn("failed to fetch borrows", zap.Uint("user_id", user.UserID), zap.Error(err))
	}

	c.HTML(http.StatusOK, "myprofile.tmpl", gin.H{
		"Page":    s.page(),
		"Borrows": borrows,
		"Error":   err != nil,
	})
}

func borrowErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return "Request failed"
}

func formID(c *gin.Context, field string) (uint, bool) {
	id, err := strconv.ParseUint(c.PostForm(field), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
