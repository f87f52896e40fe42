package kv

import (
	"context"
	"testing"
	"time"

	"github.com/dyluth/slate/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	g, mr := setupTestGateway(t)
	ctx := context.Background()

	t.Run("receives event after save", func(t *testing.T) {
		sub, err := g.Subscribe(ctx)
		require.NoError(t, err)
		defer sub.Close()

		g.SaveTheme(ctx, board.ThemeDark)

		select {
		case event := <-sub.Events():
			assert.Equal(t, board.EntityTheme, event.Key)
			assert.NotZero(t, event.AtMs)
		case <-time.After(1 * time.Second):
			t.Fatal("timeout waiting for board event")
		}
	})

	t.Run("malformed message goes to errors channel", func(t *testing.T) {
		sub, err := g.Subscribe(ctx)
		require.NoError(t, err)
		defer sub.Close()

		mr.Publish(board.BoardEventsChannel("test-instance"), "not json")

		select {
		case err := <-sub.Errors():
			assert.Contains(t, err.Error(), "failed to unmarshal board event")
		case <-time.After(1 * time.Second):
			t.Fatal("timeout waiting for subscription error")
		}
	})

	t.Run("close is idempotent and closes events", func(t *testing.T) {
		sub, err := g.Subscribe(ctx)
		require.NoError(t, err)

		assert.NoError(t, sub.Close())
		assert.NoError(t, sub.Close())

		select {
		case _, ok := <-sub.Events():
			assert.False(t, ok)
		case <-time.After(1 * time.Second):
			t.Fatal("events channel was not closed")
		}
	})
}
