package board

import (
	"strings"
	"testing"
)

// TestEntityKeys tests key generation for the three persisted entities
func TestEntityKeys(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		expected string
	}{
		{"theme", Key("default-1", EntityTheme), "slate:default-1:theme"},
		{"tabs", Key("default-1", EntityTabs), "slate:default-1:tabs"},
		{"blackboards", Key("myproject", EntityBlackboards), "slate:myproject:blackboards"},
		{"generic", Key("x", "custom"), "slate:x:custom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.key != tc.expected {
				t.Errorf("key = %q, expected %q", tc.key, tc.expected)
			}
			if !strings.HasPrefix(tc.key, "slate:") {
				t.Error("key should start with 'slate:'")
			}
		})
	}
}

// TestBoardEventsChannel tests channel name generation
func TestBoardEventsChannel(t *testing.T) {
	channel := BoardEventsChannel("default-1")

	expected := "slate:default-1:board_events"
	if channel != expected {
		t.Errorf("BoardEventsChannel() = %q, expected %q", channel, expected)
	}
}

// TestKeyIsolation verifies that different instances never share keys
func TestKeyIsolation(t *testing.T) {
	if Key("a", EntityTabs) == Key("b", EntityTabs) {
		t.Error("tabs keys for different instances must differ")
	}
	if BoardEventsChannel("a") == BoardEventsChannel("b") {
		t.Error("event channels for different instances must differ")
	}
}
