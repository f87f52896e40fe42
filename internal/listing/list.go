package listing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dyluth/slate/internal/timespec"
	"github.com/dyluth/slate/pkg/board"
)

// OutputFormat specifies how to format the tab list output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated content
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete boards as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// Source is the read side of the persistence gateway.
type Source interface {
	GetTabs(ctx context.Context) []board.Tab
	GetBlackboards(ctx context.Context) []board.Blackboard
}

// Criteria defines filtering options for the tab list.
// All filters are ANDed together.
type Criteria struct {
	Created   timespec.Range // Bounds on the creation time encoded in the tab ID
	TitleGlob string         // Glob pattern for the title (case-insensitive), empty = no filter
}

// Matches returns true if the entry satisfies every criterion.
// Tabs whose ID carries no timestamp never match a time filter.
func (c *Criteria) Matches(e Entry) bool {
	if c.Created != (timespec.Range{}) {
		if e.CreatedAtMs == 0 || !c.Created.Contains(e.CreatedAtMs) {
			return false
		}
	}

	if c.TitleGlob != "" {
		matched, err := filepath.Match(strings.ToLower(c.TitleGlob), strings.ToLower(e.Tab.Title))
		if err != nil || !matched {
			return false
		}
	}

	return true
}

// Load reads the tabs and blackboards of a workspace and pairs them by ID,
// in tab order. A tab without a stored blackboard gets an empty one.
func Load(ctx context.Context, src Source) []Entry {
	blackboards := make(map[string]board.Blackboard)
	for _, b := range src.GetBlackboards(ctx) {
		if _, dup := blackboards[b.ID]; !dup {
			blackboards[b.ID] = b
		}
	}

	tabs := src.GetTabs(ctx)
	entries := make([]Entry, 0, len(tabs))
	for _, tab := range tabs {
		b, ok := blackboards[tab.ID]
		if !ok {
			b = board.Blackboard{ID: tab.ID, Title: tab.Title}
		}
		if b.Items == nil {
			b.Items = []board.BlackboardItem{}
		}
		entries = append(entries, Entry{
			Tab:         tab,
			Blackboard:  b,
			CreatedAtMs: board.TabCreatedAtMs(tab.ID),
		})
	}

	return entries
}

// ListTabs writes the tabs of a workspace matching filters to w.
// Tabs keep their stored order, which is the order they appear in the UI.
func ListTabs(ctx context.Context, src Source, instanceName string, format OutputFormat, filters *Criteria, w io.Writer) error {
	var entries []Entry
	for _, e := range Load(ctx, src) {
		if filters != nil && !filters.Matches(e) {
			continue
		}
		entries = append(entries, e)
	}

	switch format {
	case OutputFormatDefault, "":
		FormatTable(w, entries, instanceName, time.Now())
	case OutputFormatJSONL:
		if err := FormatJSONL(w, entries); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	return nil
}
