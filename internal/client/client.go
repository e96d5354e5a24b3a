package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appidentity "github.com/dracarys/library/internal/application/identity"
	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/dracarys/library/internal/domain/identity"
	"github.com/dracarys/library/internal/domain/lending"
	"github.com/dracarys/library/internal/domain/report"
	"github.com/dracarys/library/internal/domain/shared"
)

// APIError is a non-2xx response from the backend, carrying the detail
// message from the error body
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client is a typed HTTP client for the library backend API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL (e.g. http://localhost:8080)
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient creates a Client with a caller-provided http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var detail struct {
			Detail string `json:"detail"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &detail); err != nil || detail.Detail == "" {
			detail.Detail = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: detail.Detail}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Books returns the whole catalog. An empty catalog surfaces as a 404
// APIError, mirroring the backend.
func (c *Client) Books(ctx context.Context) ([]catalog.Book, error) {
	var books []catalog.Book
	err := c.do(ctx, http.MethodGet, "/books", nil, &books)
	return books, err
}

// Book returns one book
func (c *Client) Book(ctx context.Context, id uint) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook adds a title to the catalog
func (c *Client) CreateBook(ctx context.Context, req any) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodPost, "/books/create", req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook applies a partial update to a book
func (c *Client) UpdateBook(ctx context.Context, id uint, req any) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book
func (c *Client) DeleteBook(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, nil)
}

// Genres returns all genres
func (c *Client) Genres(ctx context.Context) ([]catalog.Genre, error) {
	var genres []catalog.Genre
	err := c.do(ctx, http.MethodGet, "/genres", nil, &genres)
	return genres, err
}

// GenresWithBooks returns all genres with their books nested
func (c *Client) GenresWithBooks(ctx context.Context) ([]catalog.Genre, error) {
	var genres []catalog.Genre
	err := c.do(ctx, http.MethodGet, "/genres-with-books", nil, &genres)
	return genres, err
}

// UniqueBookCount returns the number of distinct titles
func (c *Client) UniqueBookCount(ctx context.Context) (int64, error) {
	var resp struct {
		TotalUniqueBooks int64 `json:"total_unique_books"`
	}
	err := c.do(ctx, http.MethodGet, "/books/unique_count", nil, &resp)
	return resp.TotalUniqueBooks, err
}

// TotalBookCount returns the number of owned copies
func (c *Client) TotalBookCount(ctx context.Context) (int64, error) {
	var resp struct {
		TotalBooks int64 `json:"total_books"`
	}
	err := c.do(ctx, http.MethodGet, "/books/total-count", nil, &resp)
	return resp.TotalBooks, err
}

// AvailableBookCount returns the number of copies on the shelf
func (c *Client) AvailableBookCount(ctx context.Context) (int64, error) {
	var resp struct {
		AvailableBooks int64 `json:"available_books"`
	}
	err := c.do(ctx, http.MethodGet, "/books/available-count", nil, &resp)
	return resp.AvailableBooks, err
}

// BooksPerGenre returns the genre distribution of the catalog
func (c *Client) BooksPerGenre(ctx context.Context) ([]report.GenreBookCount, error) {
	var counts []report.GenreBookCount
	err := c.do(ctx, http.MethodGet, "/books/genres/count", nil, &counts)
	return counts, err
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*appidentity.LoginResponse, error) {
	req := map[string]string{"email": email, "password_hash": password}
	var resp appidentity.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateUser registers a user
func (c *Client) CreateUser(ctx context.Context, req any) (*identity.User, error) {
	var user identity.User
	if err := c.do(ctx, http.MethodPost, "/users/create", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users returns every user
func (c *Client) Users(ctx context.Context) ([]identity.User, error) {
	var users []identity.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &users)
	return users, err
}

// UsersWithBorrowCount returns the admin users table rows
func (c *Client) UsersWithBorrowCount(ctx context.Context) ([]identity.UserWithBorrowCount, error) {
	var users []identity.UserWithBorrowCount
	err := c.do(ctx, http.MethodGet, "/users_with_borrow_count", nil, &users)
	return users, err
}

// UserCount returns the number of registered members
func (c *Client) UserCount(ctx context.Context) (int64, error) {
	var resp struct {
		TotalMembers int64 `json:"total_members"`
	}
	err := c.do(ctx, http.MethodGet, "/users/count", nil, &resp)
	return resp.TotalMembers, err
}

// UpdateUser applies a partial update to a user
func (c *Client) UpdateUser(ctx context.Context, id uint, req any) (*identity.User, error) {
	var user identity.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// CreateBorrow takes copies of a book out for a user
func (c *Client) CreateBorrow(ctx context.Context, userID, bookID uint, quantity int) (*lending.Borrow, error) {
	req := map[string]any{
		"user_id":         userID,
		"book_id":         bookID,
		"borrow_quantity": quantity,
	}
	var resp struct {
		Message string         `json:"message"`
		Borrow  lending.Borrow `json:"borrow"`
	}
	if err := c.do(ctx, http.MethodPost, "/borrows/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Borrow, nil
}

// Borrows returns every borrow
func (c *Client) Borrows(ctx context.Context) ([]lending.Borrow, error) {
	var borrows []lending.Borrow
	err := c.do(ctx, http.MethodGet, "/borrows", nil, &borrows)
	return borrows, err
}

// BorrowsByUser returns one user's borrows
func (c *Client) BorrowsByUser(ctx context.Context, userID uint) ([]lending.Borrow, error) {
	var borrows []lending.Borrow
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/borrows/user/%d", userID), nil, &borrows)
	return borrows, err
}

// BorrowCount returns the number of borrow records
func (c *Client) BorrowCount(ctx context.Context) (int64, error) {
	var resp struct {
		TotalBorrows int64 `json:"total_borrows"`
	}
	err := c.do(ctx, http.MethodGet, "/borrows/count", nil, &resp)
	return resp.TotalBorrows, err
}

// WeeklyStats returns the weekly borrowings chart data
func (c *Client) WeeklyStats(ctx context.Context) (*report.WeeklyStats, error) {
	var stats report.WeeklyStats
	if err := c.do(ctx, http.MethodGet, "/borrows/weekly-stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ReturnBorrow closes an open borrow, stamping the return with the
// current time
func (c *Client) ReturnBorrow(ctx context.Context, id uint) (*lending.Borrow, error) {
	req := map[string]any{"return_date": shared.NewNaiveTime(time.Now())}
	var borrow lending.Borrow
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/borrows/%d", id), req, &borrow); err != nil {
		return nil, err
	}
	return &borrow, nil
}

// DeleteBorrow removes a borrow record
func (c *Client) DeleteBorrow(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/borrows/%d", id), nil, nil)
}
