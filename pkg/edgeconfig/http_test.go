package edgeconfig

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeEdgeConfig serves the Edge Config read API for a single store.
func newFakeEdgeConfig(t *testing.T, id, token string, items map[string]any) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/"+id+"/items" {
			json.NewEncoder(w).Encode(items)
			return
		}

		key, ok := strings.CutPrefix(r.URL.Path, "/"+id+"/item/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		value, found := items[key]
		if !found {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
			return
		}
		json.NewEncoder(w).Encode(value)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewHTTPSource_Validation(t *testing.T) {
	_, err := NewHTTPSource("", "", "token")
	assert.Error(t, err)

	_, err = NewHTTPSource("", "ecfg_1", "")
	assert.Error(t, err)

	source, err := NewHTTPSource("", "ecfg_1", "token")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, source.baseURL)
}

func TestHTTPSource(t *testing.T) {
	server := newFakeEdgeConfig(t, "ecfg_1", "secret", map[string]any{
		"greeting":      "Hello over HTTP",
		"feature_flags": map[string]any{"beta": true},
	})
	ctx := context.Background()

	source, err := NewHTTPSource(server.URL, "ecfg_1", "secret")
	require.NoError(t, err)

	t.Run("item found", func(t *testing.T) {
		raw, found, err := source.Item(ctx, "greeting")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `"Hello over HTTP"`, string(raw))
	})

	t.Run("404 means absent", func(t *testing.T) {
		_, found, err := source.Item(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("items", func(t *testing.T) {
		items, err := source.Items(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("client getters over HTTP", func(t *testing.T) {
		c := NewClient(source)
		assert.Equal(t, "Hello over HTTP", c.GetGreeting(ctx))
		assert.True(t, c.GetFeatureFlag(ctx, "beta"))
		assert.False(t, c.GetFeatureFlag(ctx, "gamma"))
		assert.True(t, c.Has(ctx, "greeting"))
	})
}

func TestHTTPSource_Unauthorized(t *testing.T) {
	server := newFakeEdgeConfig(t, "ecfg_1", "secret", map[string]any{"greeting": "x"})
	ctx := context.Background()

	source, err := NewHTTPSource(server.URL, "ecfg_1", "wrong")
	require.NoError(t, err)

	_, _, err = source.Item(ctx, "greeting")
	assert.Error(t, err)

	// The client hides the failure behind the default
	c := NewClient(source)
	assert.Equal(t, DefaultGreeting, c.GetGreeting(ctx))
	assert.Nil(t, c.GetAll(ctx))
}
