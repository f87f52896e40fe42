package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutes(t *testing.T) {
	got := Routes()
	require.Len(t, got, 2)

	assert.Equal(t, Route{Path: "/", Name: "login", RequiresAuth: false}, got[0])
	assert.Equal(t, Route{Path: "/main", Name: "main", RequiresAuth: true}, got[1])

	got[0].RequiresAuth = true
	route, ok := Lookup("/")
	require.True(t, ok)
	assert.False(t, route.RequiresAuth, "Routes returns a copy")
}

func TestGuard_Check(t *testing.T) {
	guard := NewGuard(nil)

	testCases := []struct {
		name         string
		path         string
		loggedIn     bool
		wantRedirect string
		wantOK       bool
	}{
		{"main while logged out", "/main", false, "/", false},
		{"main while logged in", "/main", true, "", true},
		{"login while logged out", "/", false, "", true},
		{"login while logged in", "/", true, "", true},
		{"unknown path", "/nowhere", false, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			redirect, ok := guard.Check(tc.path, tc.loggedIn)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantRedirect, redirect)
		})
	}
}

func TestGuard_Middleware(t *testing.T) {
	loggedIn := false
	guard := NewGuard(SessionFunc(func(*http.Request) bool { return loggedIn }))

	handler := guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("page " + r.URL.Path))
	}))

	t.Run("blocked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/main", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("allowed", func(t *testing.T) {
		loggedIn = true
		defer func() { loggedIn = false }()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/main", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "page /main", rec.Body.String())
	})

	t.Run("public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
