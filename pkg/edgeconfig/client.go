// Package edgeconfig is a read-only gateway to a remote config / feature-flag store.
//
// Lookups never fail from the caller's point of view: any error is logged and
// downgraded to the documented default, so "key absent" and "store unreachable"
// look the same.
package edgeconfig

import (
	"context"
	"encoding/json"
	"log"
	"strings"
)

// DefaultGreeting is returned by GetGreeting when no greeting is configured.
const DefaultGreeting = "Hello from Edge Config!"

// featureFlagPrefix namespaces feature flags inside the store.
const featureFlagPrefix = "feature_flags."

// Source is a backend holding config items as raw JSON values.
type Source interface {
	// Item returns the value stored under key. found is false if the key does not exist.
	Item(ctx context.Context, key string) (value json.RawMessage, found bool, err error)

	// Items returns every stored item.
	Items(ctx context.Context) (map[string]json.RawMessage, error)
}

// Client wraps a Source with typed, failure-tolerant getters.
type Client struct {
	source Source
}

// NewClient creates a client reading from source.
func NewClient(source Source) *Client {
	return &Client{source: source}
}

// Get returns the value stored under key decoded as T, or nil if it is absent or cannot be read.
// Dotted keys ("feature_flags.beta") are looked up literally first, then by
// descending into nested objects.
func Get[T any](ctx context.Context, c *Client, key string) *T {
	raw, found, err := c.lookup(ctx, key)
	if err != nil {
		log.Printf("[EdgeConfig] get %s error: %v", key, err)
		return nil
	}
	if !found {
		return nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Printf("[EdgeConfig] get %s error: failed to decode value: %v", key, err)
		return nil
	}

	return &value
}

// Has reports whether key exists. Returns false on any failure.
func (c *Client) Has(ctx context.Context, key string) bool {
	_, found, err := c.lookup(ctx, key)
	if err != nil {
		log.Printf("[EdgeConfig] has %s error: %v", key, err)
		return false
	}
	return found
}

// GetAll returns every item decoded into plain Go values, or nil on failure.
func (c *Client) GetAll(ctx context.Context) map[string]any {
	items, err := c.source.Items(ctx)
	if err != nil {
		log.Printf("[EdgeConfig] getAll error: %v", err)
		return nil
	}

	all := make(map[string]any, len(items))
	for key, raw := range items {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			log.Printf("[EdgeConfig] getAll error: failed to decode %s: %v", key, err)
			return nil
		}
		all[key] = value
	}

	return all
}

// GetGreeting returns the configured greeting, or DefaultGreeting if it is unset or empty.
func (c *Client) GetGreeting(ctx context.Context) string {
	if greeting := Get[string](ctx, c, "greeting"); greeting != nil && *greeting != "" {
		return *greeting
	}
	return DefaultGreeting
}

// GetFeatureFlag returns the value of feature_flags.<name>, or false if unset.
func (c *Client) GetFeatureFlag(ctx context.Context, name string) bool {
	if enabled := Get[bool](ctx, c, featureFlagPrefix+name); enabled != nil {
		return *enabled
	}
	return false
}

// lookup resolves key, falling back to a walk through nested objects for dotted keys.
func (c *Client) lookup(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, found, err := c.source.Item(ctx, key)
	if err != nil || found || !strings.Contains(key, ".") {
		return raw, found, err
	}

	segments := strings.Split(key, ".")
	raw, found, err = c.source.Item(ctx, segments[0])
	if err != nil || !found {
		return nil, false, err
	}

	for _, segment := range segments[1:] {
		var object map[string]json.RawMessage
		if err := json.Unmarshal(raw, &object); err != nil {
			// Not an object: the path does not exist
			return nil, false, nil
		}
		raw, found = object[segment]
		if !found {
			return nil, false, nil
		}
	}

	return raw, true, nil
}
