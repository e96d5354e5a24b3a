package webapp

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/dracarys/library/internal/client"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminBooks renders the books admin table, sorted by id so rows keep
// their place when quantities change
func (s *Server) AdminBooks(c *gin.Context) {
	books, err := s.api.Books(c.Request.Context())
	if err != nil && !client.IsNotFound(err) {
		s.renderAdminError(c, "admin_books.tmpl", err)
		return
	}

	sort.Slice(books, func(i, j int) bool { return books[i].BookID < books[j].BookID })

	genres, gerr := s.api.Genres(c.Request.Context())
	if gerr != nil {
		s.logger.Warn("failed to fetch genres", zap.Error(gerr))
	}

	c.HTML(http.StatusOK, "admin_books.tmpl", gin.H{
		"Page":   s.page(),
		"Books":  books,
		"Genres": genres,
		"Notice": c.Query("notice"),
	})
}

// AdminBookCreate handles the add-book form
func (s *Server) AdminBookCreate(c *gin.Context) {
	qty, err := strconv.Atoi(c.PostForm("book_quantity"))
	if err != nil || qty <= 0 || c.PostForm("book_name") == "" {
		c.Redirect(http.StatusFound, "/admin/books?notice=Book+name+and+a+positive+quantity+are+required")
		return
	}

	req := map[string]any{
		"book_name":     c.PostForm("book_name"),
		"book_quantity": qty,
	}
	if desc := c.PostForm("book_description"); desc != "" {
		req["book_description"] = desc
	}
	if genreID, err := strconv.ParseUint(c.PostForm("genre_id"), 10, 32); err == nil {
		req["genre_id"] = uint(genreID)
	}

	if _, err := s.api.CreateBook(c.Request.Context(), req); err != nil {
		s.logger.Warn("failed to create book", zap.Error(err))
		c.Redirect(http.StatusFound, "/admin/books?notice="+apiNotice(err))
		return
	}
	c.Redirect(http.StatusFound, "/admin/books")
}

// AdminBookUpdate handles the quantity stepper: the form posts the new
// owned quantity and the backend shifts availability by the delta
func (s *Server) AdminBookUpdate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/admin/books")
		return
	}

	qty, err := strconv.Atoi(c.PostForm("book_quantity"))
	if err != nil || qty <= 0 {
		c.Redirect(http.StatusFound, "/admin/books?notice=Quantity+must+be+positive")
		return
	}

	req := map[string]any{"book_quantity": qty}
	if _, err := s.api.UpdateBook(c.Request.Context(), id, req); err != nil {
		s.logger.Warn("failed to update book", zap.Uint("book_id", id), zap.Error(err))
		c.Redirect(http.StatusFound, "/admin/books?notice="+apiNotice(err))
		return
	}
	c.Redirect(http.StatusFound, "/admin/books")
}

// AdminBookDelete removes a book
func (s *Server) AdminBookDelete(c *gin.Context) {
	if id, ok := paramID(c); ok {
		if err := s.api.DeleteBook(c.Request.Context(), id); err != nil {
			s.logger.Warn("failed to delete book", zap.Uint("book_id", id), zap.Error(err))
			c.Redirect(http.StatusFound, "/admin/books?notice="+apiNotice(err))
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/books")
}

// AdminUsers renders the users admin table with per-user borrow counts
func (s *Server) AdminUsers(c *gin.Context) {
	users, err := s.api.UsersWithBorrowCount(c.Request.Context())
	if err != nil {
		s.renderAdminError(c, "admin_users.tmpl", err)
		return
	}

	c.HTML(http.StatusOK, "admin_users.tmpl", gin.H{
		"Page":   s.page(),
		"Users":  users,
		"Notice": c.Query("notice"),
	})
}

// AdminUserCreate handles the add-user form
func (s *Server) AdminUserCreate(c *gin.Context) {
	req := map[string]any{
		"username":      c.PostForm("username"),
		"email":         c.PostForm("email"),
		"password_hash": c.PostForm("password"),
	}
	if roleID, err := strconv.Atoi(c.PostForm("role_id")); err == nil {
		req["role_id"] = roleID
	}

	if _, err := s.api.CreateUser(c.Request.Context(), req); err != nil {
		s.logger.Warn("failed to create user", zap.Error(err))
		c.Redirect(http.StatusFound, "/admin/users?notice="+apiNotice(err))
		return
	}
	c.Redirect(http.StatusFound, "/admin/users")
}

// AdminUserDelete removes a user
func (s *Server) AdminUserDelete(c *gin.Context) {
	if id, ok := paramID(c); ok {
		if err := s.api.DeleteUser(c.Request.Context(), id); err != nil {
			s.logger.Warn("failed to delete user", zap.Uint("user_id", id), zap.Error(err))
			c.Redirect(http.StatusFound, "/admin/users?notice="+apiNotice(err))
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/users")
}

// AdminBorrows renders the borrows admin table
func (s *Server) AdminBorrows(c *gin.Context) {
	borrows, err := s.api.Borrows(c.Request.Context())
	if err != nil {
		s.renderAdminError(c, "admin_borrows.tmpl", err)
		return
	}

	c.HTML(http.StatusOK, "admin_borrows.tmpl", gin.H{
		"Page":    s.page(),
		"Borrows": borrows,
		"Notice":  c.Query("notice"),
	})
}

// AdminBorrowReturn closes an open borrow
func (s *Server) AdminBorrowReturn(c *gin.Context) {
	if id, ok := paramID(c); ok {
		if _, err := s.api.ReturnBorrow(c.Request.Context(), id); err != nil {
			s.logger.Warn("failed to return borrow", zap.Uint("borrow_id", id), zap.Error(err))
			c.Redirect(http.StatusFound, "/admin/borrows?notice="+apiNotice(err))
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/borrows")
}

// AdminBorrowDelete removes a borrow record
func (s *Server) AdminBorrowDelete(c *gin.Context) {
	if id, ok := paramID(c); ok {
		if err := s.api.DeleteBorrow(c.Request.Context(), id); err != nil {
			s.logger.Warn("failed to delete borrow", zap.Uint("borrow_id", id), zap.Error(err))
			c.Redirect(http.StatusFound, "/admin/borrows?notice="+apiNotice(err))
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/borrows")
}

func (s *Server) renderAdminError(c *gin.Context, tmpl string, err error) {
	s.logger.Warn("admin page fetch failed", zap.String("template", tmpl), zap.Error(err))
	c.HTML(http.StatusOK, tmpl, gin.H{
		"Page":   s.page(),
		"Failed": true,
	})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func apiNotice(err error) string {
	return url.QueryEscape(borrowErrorMessage(err))
}
