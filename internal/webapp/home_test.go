package webapp

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_SidebarListsBooksPerGenre(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/books", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]catalog.Book{
			{BookID: 1, BookName: "Dune", GenreName: "Fantasy", BookQuantity: 1, AvailableQuantity: 1},
		})
	})
	mux.HandleFunc("/api/genres-with-books", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]catalog.Genre{
			{GenreID: 1, GenreName: "Fantasy", Books: []catalog.Book{
				{BookID: 1, BookName: "Dune"},
			}},
			{GenreID: 2, GenreName: "History"},
		})
	})

	_, engine := newTestServer(t, mux)

	w := getPage(engine, "/home")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Fantasy")
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "No books in this genre yet.")
}

func TestHome_EmptyCatalogRendersEmptyShelf(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/books", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "No books found"}`))
	})
	mux.HandleFunc("/api/genres-with-books", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]catalog.Genre{})
	})

	_, engine := newTestServer(t, mux)

	w := getPage(engine, "/home")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "No books match your filters.")
	assert.NotContains(t, body, "No data available")
}
