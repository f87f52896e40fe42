// Package board provides the Go definitions and Redis key schema for slate
// workspaces: tabs, their blackboards and the items drawn on them.
//
// All Redis keys and channels are namespaced by instance name so that several
// slate workspaces can share a single Redis server.
package board

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tab is one open board as shown in the tab strip.
// Ordering is insertion order.
type Tab struct {
	ID      string `json:"id"`      // "tab-<unix-ms>"
	Title   string `json:"title"`   // Display title, "Tab N" by default
	Content string `json:"content"` // Free-form notes (Markdown)
}

// Blackboard is the canvas belonging to a Tab. It shares the Tab's ID.
type Blackboard struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Items []BlackboardItem `json:"items"`
}

// ItemType defines what a BlackboardItem draws.
type ItemType string

const (
	// ItemTypeText is a positioned block of text
	ItemTypeText ItemType = "text"

	// ItemTypeLine is a free-hand or straight line
	ItemTypeLine ItemType = "line"
)

// Position is the top-left corner of an item on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the optional bounding box of an item.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BlackboardItem is a single element drawn on a Blackboard.
// Content is opaque to the server; its shape depends on Type.
type BlackboardItem struct {
	ID       string          `json:"id"`
	Type     ItemType        `json:"type"`
	Content  json.RawMessage `json:"content"`
	Position Position        `json:"position"`
	Size     *Size           `json:"size,omitempty"`
}

// Theme is the workspace colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User describes the current session as reported to clients.
type User struct {
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// AppState is a point-in-time snapshot of the workspace.
// It is never persisted as one record; theme, tabs and blackboards live under separate keys.
type AppState struct {
	Theme        Theme        `json:"theme"`
	CurrentTabID *string      `json:"currentTabId"`
	Tabs         []Tab        `json:"tabs"`
	Blackboards  []Blackboard `json:"blackboards"`
}

// Board pairs a Tab with its Blackboard under a single ID.
// The store keeps an ordered list of boards; tabs and blackboards are projections of it.
type Board struct {
	Tab        Tab
	Blackboard Blackboard
}

// ID returns the shared id of the tab and its blackboard.
func (b Board) ID() string {
	return b.Tab.ID
}

// Toggle returns the opposite theme. Unknown values toggle to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Validate checks if the Theme is a valid enum value.
func (t Theme) Validate() error {
	switch t {
	case ThemeLight, ThemeDark:
		return nil
	default:
		return fmt.Errorf("unknown theme: %q", t)
	}
}

// Validate checks if the ItemType is a valid enum value.
func (it ItemType) Validate() error {
	switch it {
	case ItemTypeText, ItemTypeLine:
		return nil
	default:
		return fmt.Errorf("unknown item type: %q", it)
	}
}

// Validate checks if the Tab has valid field values.
func (t *Tab) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tab ID cannot be empty")
	}
	return nil
}

// Validate checks if the Blackboard and all of its items have valid field values.
func (b *Blackboard) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("blackboard ID cannot be empty")
	}

	for i := range b.Items {
		if err := b.Items[i].Validate(); err != nil {
			return fmt.Errorf("invalid item at index %d: %w", i, err)
		}
	}

	return nil
}

// Validate checks if the BlackboardItem has valid field values.
func (item *BlackboardItem) Validate() error {
	if item.ID == "" {
		return fmt.Errorf("item ID cannot be empty")
	}

	if err := item.Type.Validate(); err != nil {
		return fmt.Errorf("invalid type: %w", err)
	}

	if item.Size != nil && (item.Size.Width < 0 || item.Size.Height < 0) {
		return fmt.Errorf("size cannot be negative")
	}

	return nil
}

// tabIDPrefix is prepended to the creation timestamp to form a tab ID.
const tabIDPrefix = "tab-"

// NewTabID returns the ID for a tab created at now.
// Pattern: tab-{unix_ms}
func NewTabID(now time.Time) string {
	return tabIDPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// TabCreatedAtMs extracts the creation timestamp (Unix ms) from a tab ID.
// Returns 0 if the ID was not produced by NewTabID.
func TabCreatedAtMs(id string) int64 {
	raw, ok := strings.CutPrefix(id, tabIDPrefix)
	if !ok {
		return 0
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// NewItemID returns a fresh ID for a BlackboardItem.
func NewItemID() string {
	return uuid.New().String()
}
