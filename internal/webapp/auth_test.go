package webapp

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postForm(engine http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginSubmit_EmptyFieldsShortCircuit(t *testing.T) {
	requests := 0
	_, engine := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	cases := []url.Values{
		{"email": {""}, "password": {""}},
		{"email": {"casey@example.com"}, "password": {""}},
		{"email": {""}, "password": {"hunter2"}},
	}
	for _, form := range cases {
		w := postForm(engine, "/login", form)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Both email and password are required!")
	}

	// The backend must never have been asked.
	assert.Zero(t, requests)
}

func TestLoginSubmit_BackendDetailShownOnFailure(t *testing.T) {
	_, engine := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "User not found"}`))
	}))

	w := postForm(engine, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"hunter2"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}
