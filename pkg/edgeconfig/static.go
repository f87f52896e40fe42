package edgeconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticSource serves items from an in-memory map.
// Used for local development when no remote store is configured.
type StaticSource struct {
	items map[string]json.RawMessage
}

// NewStaticSource creates a source holding values. Values must be JSON-encodable.
func NewStaticSource(values map[string]any) (*StaticSource, error) {
	items := make(map[string]json.RawMessage, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode item %q: %w", key, err)
		}
		items[key] = raw
	}
	return &StaticSource{items: items}, nil
}

// LoadStaticSource reads a YAML mapping of items from path.
func LoadStaticSource(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return NewStaticSource(values)
}

// Item returns the value stored under key.
func (s *StaticSource) Item(_ context.Context, key string) (json.RawMessage, bool, error) {
	raw, found := s.items[key]
	return raw, found, nil
}

// Items returns a copy of every stored item.
func (s *StaticSource) Items(_ context.Context) (map[string]json.RawMessage, error) {
	items := make(map[string]json.RawMessage, len(s.items))
	for key, raw := range s.items {
		items[key] = raw
	}
	return items, nil
}
