package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, fn := range routes {
		mux.HandleFunc(pattern, fn)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Books(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/books": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"book_id":1,"book_name":"Dune","book_quantity":4,"available_quantity":2,"genre_name":"Science Fiction"}]`))
		},
	})

	c := New(srv.URL)
	books, err := c.Books(context.Background())

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, uint(1), books[0].BookID)
	assert.Equal(t, "Dune", books[0].BookName)
	assert.Equal(t, "Science Fiction", books[0].GenreName)
}

func TestClient_ErrorBody(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/books": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"No books found"}`))
		},
	})

	c := New(srv.URL)
	_, err := c.Books(context.Background())

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "No books found", apiErr.Detail)
	assert.True(t, IsNotFound(err))
}

func TestClient_Login(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/users/login": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice@example.com", req["email"])
			assert.Equal(t, "pw", req["password_hash"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user_id":7,"username":"alice","email":"alice@example.com","role_id":1,"access_token":"tok"}`))
		},
	})

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "alice@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.UserID)
	assert.Equal(t, 1, resp.RoleID)
	assert.Equal(t, "tok", resp.AccessToken)
}

func TestClient_CreateBorrow(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/borrows/create": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"Borrow created successfully","borrow":{"borrow_id":3,"user_id":7,"book_id":1,"borrow_quantity":2,"borrow_date":"2025-03-02T10:00:00","return_date":null}}`))
		},
	})

	c := New(srv.URL)
	borrow, err := c.CreateBorrow(context.Background(), 7, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, uint(3), borrow.BorrowID)
	assert.False(t, borrow.Returned())
}

func TestClient_DeleteBook(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"/api/books/1": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		},
	})

	c := New(srv.URL)
	assert.NoError(t, c.DeleteBook(context.Background(), 1))
}
