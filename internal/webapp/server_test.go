package webapp

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dracarys/library/internal/client"
	"github.com/dracarys/library/internal/localstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestServer wires a Server against a stub backend and a throwaway
// local store
func newTestServer(t *testing.T, backend http.Handler) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := httptest.NewServer(backend)
	t.Cleanup(api.Close)

	store, err := localstore.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := NewServer(client.New(api.URL), store, zap.NewNop())
	return srv, srv.Engine()
}

// loginAs seeds the local store with a session
func loginAs(t *testing.T, s *Server, roleID int) {
	t.Helper()
	require.NoError(t, s.store.Put(localstore.UserInfoKey, UserInfo{
		UserID:   1,
		Username: "casey",
		Email:    "casey@example.com",
		RoleID:   roleID,
	}))
}
