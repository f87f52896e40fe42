// Package kv is the persistence gateway between slate and its remote key-value store.
//
// The gateway never reports failures to its callers: reads fall back to a
// default and writes are dropped. Every failure is logged and, if an error hook
// is installed, reported to it.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dyluth/slate/pkg/board"
	"github.com/redis/go-redis/v9"
)

// ErrorHook receives every failure the gateway swallows.
// op is one of "get", "set", "delete" or "publish".
type ErrorHook func(op, key string, err error)

// Option configures a Gateway.
type Option func(*Gateway)

// WithErrorHook installs a hook that observes swallowed failures.
func WithErrorHook(hook ErrorHook) Option {
	return func(g *Gateway) {
		g.onError = hook
	}
}

// Gateway provides instance-scoped access to the remote key-value store.
// Keys passed to Get, Set and Delete are entity names ("tabs", "theme", ...)
// and are namespaced with the instance name before they reach Redis.
// The gateway is safe for concurrent use.
type Gateway struct {
	rdb          *redis.Client
	instanceName string
	onError      ErrorHook
}

// NewGateway creates a gateway for the specified instance.
// Returns an error if instanceName is empty.
func NewGateway(redisOpts *redis.Options, instanceName string, opts ...Option) (*Gateway, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	g := &Gateway{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (g *Gateway) Close() error {
	return g.rdb.Close()
}

// Ping verifies Redis connectivity. Used by health checks.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.rdb.Ping(ctx).Err()
}

// InstanceName returns the namespace this gateway writes under.
func (g *Gateway) InstanceName() string {
	return g.instanceName
}

// Get reads key and decodes it into a T.
// Returns nil when the key is absent or on any failure; failures are logged, not returned.
func Get[T any](ctx context.Context, g *Gateway, key string) *T {
	raw, err := g.rdb.Get(ctx, board.Key(g.instanceName, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.fail("get", key, err)
		}
		return nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		g.fail("get", key, fmt.Errorf("failed to decode value: %w", err))
		return nil
	}

	return &value
}

// Set JSON-encodes value and stores it under key, then announces the save on
// the instance's board events channel. Failures are logged and dropped.
func (g *Gateway) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		g.fail("set", key, fmt.Errorf("failed to encode value: %w", err))
		return
	}

	if err := g.rdb.Set(ctx, board.Key(g.instanceName, key), data, 0).Err(); err != nil {
		g.fail("set", key, err)
		return
	}

	g.publish(ctx, key)
}

// Delete removes key. Failures are logged and dropped.
func (g *Gateway) Delete(ctx context.Context, key string) {
	if err := g.rdb.Del(ctx, board.Key(g.instanceName, key)).Err(); err != nil {
		g.fail("delete", key, err)
		return
	}

	g.publish(ctx, key)
}

// GetTabs returns the saved tab list, or an empty list if none is saved.
func (g *Gateway) GetTabs(ctx context.Context) []board.Tab {
	if tabs := Get[[]board.Tab](ctx, g, board.EntityTabs); tabs != nil && *tabs != nil {
		return *tabs
	}
	return []board.Tab{}
}

// SaveTabs stores the tab list.
func (g *Gateway) SaveTabs(ctx context.Context, tabs []board.Tab) {
	g.Set(ctx, board.EntityTabs, tabs)
}

// GetBlackboards returns the saved blackboard list, or an empty list if none is saved.
func (g *Gateway) GetBlackboards(ctx context.Context) []board.Blackboard {
	if boards := Get[[]board.Blackboard](ctx, g, board.EntityBlackboards); boards != nil && *boards != nil {
		return *boards
	}
	return []board.Blackboard{}
}

// SaveBlackboards stores the blackboard list.
func (g *Gateway) SaveBlackboards(ctx context.Context, blackboards []board.Blackboard) {
	g.Set(ctx, board.EntityBlackboards, blackboards)
}

// GetTheme returns the saved theme, or light if none (or an unknown value) is saved.
func (g *Gateway) GetTheme(ctx context.Context) board.Theme {
	theme := Get[board.Theme](ctx, g, board.EntityTheme)
	if theme == nil || theme.Validate() != nil {
		return board.ThemeLight
	}
	return *theme
}

// SaveTheme stores the theme.
func (g *Gateway) SaveTheme(ctx context.Context, theme board.Theme) {
	g.Set(ctx, board.EntityTheme, theme)
}

// publish announces a change to key. A failed publish does not undo the write.
func (g *Gateway) publish(ctx context.Context, key string) {
	event, err := json.Marshal(Event{Key: key, AtMs: time.Now().UnixMilli()})
	if err != nil {
		g.fail("publish", key, err)
		return
	}

	channel := board.BoardEventsChannel(g.instanceName)
	if err := g.rdb.Publish(ctx, channel, event).Err(); err != nil {
		g.fail("publish", key, err)
	}
}

func (g *Gateway) fail(op, key string, err error) {
	log.Printf("[KV] %s %s error: %v", op, key, err)
	if g.onError != nil {
		g.onError(op, key, err)
	}
}
