package edgeconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/carlmjohnson/requests"
)

// DefaultBaseURL is the public Edge Config read endpoint.
const DefaultBaseURL = "https://edge-config.vercel.com"

// HTTPSource reads items from the Edge Config REST API.
//
//	GET {base}/{id}/item/{key}?token={token}   -> JSON value, 404 if absent
//	GET {base}/{id}/items?token={token}        -> JSON object of all items
type HTTPSource struct {
	baseURL string
	id      string
	token   string
	client  *http.Client
}

// NewHTTPSource creates a source for the config store identified by id.
// An empty baseURL selects DefaultBaseURL.
func NewHTTPSource(baseURL, id, token string) (*HTTPSource, error) {
	if id == "" {
		return nil, fmt.Errorf("edge config id cannot be empty")
	}
	if token == "" {
		return nil, fmt.Errorf("edge config token cannot be empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &HTTPSource{
		baseURL: baseURL,
		id:      id,
		token:   token,
		client:  &http.Client{Timeout: 5 * time.Second},
	}, nil
}

// Item fetches a single item. A 404 response means the key is absent.
func (s *HTTPSource) Item(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var raw json.RawMessage
	err := s.request("/" + url.PathEscape(s.id) + "/item/" + url.PathEscape(key)).
		ToJSON(&raw).
		Fetch(ctx)
	if err != nil {
		if requests.HasStatusErr(err, http.StatusNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to fetch item %q: %w", key, err)
	}

	return raw, true, nil
}

// Items fetches every item in the store.
func (s *HTTPSource) Items(ctx context.Context) (map[string]json.RawMessage, error) {
	var items map[string]json.RawMessage
	err := s.request("/" + url.PathEscape(s.id) + "/items").
		ToJSON(&items).
		Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	if items == nil {
		items = map[string]json.RawMessage{}
	}
	return items, nil
}

func (s *HTTPSource) request(path string) *requests.Builder {
	return requests.
		URL(s.baseURL).
		Path(path).
		Param("token", s.token).
		Accept("application/json").
		Client(s.client)
}
