package webapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dracarys/library/internal/domain/catalog"
	"github.com/dracarys/library/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPage(engine http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAdminBooks_SortedByIDRegardlessOfResponseOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/books", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]catalog.Book{
			{BookID: 7, BookName: "Hyperion", BookQuantity: 1, AvailableQuantity: 1},
			{BookID: 2, BookName: "Dune", BookQuantity: 1, AvailableQuantity: 1},
			{BookID: 5, BookName: "Foundation", BookQuantity: 1, AvailableQuantity: 1},
		})
	})
	mux.HandleFunc("/api/genres", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]catalog.Genre{})
	})

	srv, engine := newTestServer(t, mux)
	loginAs(t, srv, identity.RoleAdmin)

	w := getPage(engine, "/admin/books")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	dune := strings.Index(body, "Dune")
	foundation := strings.Index(body, "Foundation")
	hyperion := strings.Index(body, "Hyperion")
	require.NotEqual(t, -1, dune)
	require.NotEqual(t, -1, foundation)
	require.NotEqual(t, -1, hyperion)
	assert.Less(t, dune, foundation)
	assert.Less(t, foundation, hyperion)
}

func TestAdminUsers_FailedReadReplacesTable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users_with_borrow_count", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "Internal server error"}`))
	})

	srv, engine := newTestServer(t, mux)
	loginAs(t, srv, identity.RoleAdmin)

	w := getPage(engine, "/admin/users")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "No data available")
	assert.NotContains(t, body, "Add a user")
}

func TestAdminPages_RequireAdminRole(t *testing.T) {
	srv, engine := newTestServer(t, http.NewServeMux())

	t.Run("anonymous visitors go to login", func(t *testing.T) {
		w := getPage(engine, "/admin/books")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("members get access denied", func(t *testing.T) {
		loginAs(t, srv, identity.RoleMember)

		w := getPage(engine, "/admin/books")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Access denied")
	})
}
