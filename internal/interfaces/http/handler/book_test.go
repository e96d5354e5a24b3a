package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appcatalog "github.com/dracarys/library/internal/application/catalog"
	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookRepo serves a fixed catalog
type fakeBookRepo struct {
	catalog.BookRepository
	books []catalog.Book
}

func (f *fakeBookRepo) FindAll(ctx context.Context) ([]catalog.Book, error) {
	return f.books, nil
}

func newBooksRouter(books []catalog.Book) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := appcatalog.NewBookService(&fakeBookRepo{books: books})
	h := NewBookHandler(svc)

	r := gin.New()
	r.GET("/api/books", h.List)
	return r
}

func TestBookHandler_List(t *testing.T) {
	t.Run("catalog goes out as a bare array", func(t *testing.T) {
		r := newBooksRouter([]catalog.Book{
			{BookID: 1, BookName: "Dune", BookQuantity: 4, AvailableQuantity: 2, GenreName: "Science Fiction"},
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var books []catalog.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].BookName)
		assert.Equal(t, "Science Fiction", books[0].GenreName)
	})

	t.Run("empty catalog is a 404", func(t *testing.T) {
		r := newBooksRouter(nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)

		var d Detail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Equal(t, "No books found", d.Detail)
	})
}
