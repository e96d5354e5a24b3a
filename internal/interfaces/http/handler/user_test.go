package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appidentity "github.com/dracarys/library/internal/application/identity"
	"github.com/dracarys/library/internal/domain/identity"
	"github.com/dracarys/library/internal/domain/shared"
	"github.com/dracarys/library/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo serves a fixed set of users keyed by email
type fakeUserRepo struct {
	identity.UserRepository
	byEmail map[string]*identity.User
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

type fixedTokenIssuer struct{}

func (fixedTokenIssuer) Generate(userID uint, roleID int) (string, error) {
	return "signed-token", nil
}

func newLoginRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	repo := &fakeUserRepo{byEmail: map[string]*identity.User{
		"alice@example.com": {
			UserID:       7,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: hash,
			RoleID:       identity.RoleAdmin,
		},
	}}

	svc := appidentity.NewUserService(repo, fixedTokenIssuer{})
	h := NewUserHandler(svc, nil)

	r := gin.New()
	r.POST("/api/users/login", h.Login)
	return r
}

func doLogin(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Login(t *testing.T) {
	r := newLoginRouter(t)

	t.Run("returns user and token on success", func(t *testing.T) {
		w := doLogin(t, r, `{"email":"alice@example.com","password_hash":"correct-horse"}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp appidentity.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint(7), resp.UserID)
		assert.Equal(t, identity.RoleAdmin, resp.RoleID)
		assert.Equal(t, "signed-token", resp.AccessToken)
	})

	t.Run("unknown email is a 404 with detail body", func(t *testing.T) {
		w := doLogin(t, r, `{"email":"nobody@example.com","password_hash":"whatever"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var d Detail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Equal(t, "User not found", d.Detail)
	})

	t.Run("wrong password is a 400 with detail body", func(t *testing.T) {
		w := doLogin(t, r, `{"email":"alice@example.com","password_hash":"wrong"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var d Detail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Equal(t, "Incorrect password", d.Detail)
	})

	t.Run("missing fields fail binding", func(t *testing.T) {
		w := doLogin(t, r, `{"email":"alice@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
