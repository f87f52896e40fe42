package resolver

import (
	"fmt"
	"testing"

	"github.com/dyluth/slate/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tabs = []board.Tab{
	{ID: "tab-1729850000123", Title: "Notes"},
	{ID: "tab-1729850010123", Title: "Sketch"},
	{ID: "tab-1729850009999", Title: "notes"},
}

func TestResolveTabID(t *testing.T) {
	testCases := []struct {
		name string
		ref  string
		want string
	}{
		{"full id", "tab-1729850010123", "tab-1729850010123"},
		{"position", "2", "tab-1729850010123"},
		{"unique title", "sketch", "tab-1729850010123"},
		{"unique suffix", "9999", "tab-1729850009999"},
		{"longer suffix", "0000123", "tab-1729850000123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveTabID(tabs, tc.ref)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveTabID_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := ResolveTabID(tabs, "")
		assert.EqualError(t, err, "tab reference cannot be empty")
	})

	t.Run("position out of range", func(t *testing.T) {
		_, err := ResolveTabID(tabs, "4")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("position zero", func(t *testing.T) {
		_, err := ResolveTabID(tabs, "0")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("ambiguous title", func(t *testing.T) {
		_, err := ResolveTabID(tabs, "NOTES")
		require.True(t, IsAmbiguousError(err))
		assert.Len(t, err.(*AmbiguousError).Matches, 2)
	})

	t.Run("ambiguous suffix", func(t *testing.T) {
		_, err := ResolveTabID(tabs, "0123")
		require.True(t, IsAmbiguousError(err))
	})

	t.Run("short unknown", func(t *testing.T) {
		_, err := ResolveTabID(tabs, "xyz")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("no match", func(t *testing.T) {
		_, err := ResolveTabID(tabs, "4242")
		assert.True(t, IsNotFoundError(err))
		assert.EqualError(t, err, "no tab matching '4242'")
	})
}

func TestFormatAmbiguousError(t *testing.T) {
	matches := make([]string, 12)
	for i := range matches {
		matches[i] = fmt.Sprintf("tab-%d", i)
	}

	msg := FormatAmbiguousError(&AmbiguousError{Ref: "tab", Matches: matches})
	assert.Contains(t, msg, "matches 12 tabs")
	assert.Contains(t, msg, "  tab-9\n")
	assert.NotContains(t, msg, "  tab-10\n")
	assert.Contains(t, msg, "...and 2 more")
}
