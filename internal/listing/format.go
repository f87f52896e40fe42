// Package listing renders the persisted tabs of a workspace for the CLI.
package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/slate/pkg/board"
)

// Entry is one listed board.
type Entry struct {
	Tab         board.Tab        `json:"tab"`
	Blackboard  board.Blackboard `json:"blackboard"`
	CreatedAtMs int64            `json:"created_at_ms"`
}

// FormatTable writes entries as a formatted table to the provided writer.
// Columns: ID, TITLE, ITEMS, AGE and CONTENT (first line, truncated).
// Returns the number of entries formatted.
func FormatTable(w io.Writer, entries []Entry, instanceName string, now time.Time) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No tabs found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Tabs for instance '%s':\n\n", instanceName)

	fmt.Fprintf(w, "%-18s %-20s %-5s %-8s %s\n",
		"ID", "TITLE", "ITEMS", "AGE", "CONTENT")
	fmt.Fprintf(w, "%-18s %-20s %-5s %-8s %s\n",
		"------------------", "--------------------", "-----", "--------", "----------------------------------------")

	for _, e := range entries {
		fmt.Fprintf(w, "%-18s %-20s %-5d %-8s %s\n",
			e.Tab.ID,
			formatTitle(e.Tab.Title),
			len(e.Blackboard.Items),
			formatAge(e.CreatedAtMs, now),
			formatContent(e.Tab.Content),
		)
	}

	countMsg := "tab"
	if len(entries) != 1 {
		countMsg = "tabs"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(entries), countMsg)

	return len(entries)
}

// FormatJSONL writes entries as line-delimited JSON, one entry per line.
func FormatJSONL(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal tab to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes a single entry as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, e Entry) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tab to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}

// formatTitle truncates long titles; empty titles show "-".
func formatTitle(title string) string {
	if title == "" {
		return "-"
	}
	if len(title) > 20 {
		return title[:17] + "..."
	}
	return title
}

// formatContent returns the first non-empty line of content, at most 40 characters.
// Empty content returns "-".
func formatContent(content string) string {
	var firstLine string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			firstLine = trimmed
			break
		}
	}

	if firstLine == "" {
		return "-"
	}
	if len(firstLine) > 40 {
		return firstLine[:37] + "..."
	}
	return firstLine
}

// formatAge renders a creation timestamp relative to now ("2m ago").
// Unknown timestamps show "-".
func formatAge(createdAtMs int64, now time.Time) string {
	if createdAtMs == 0 {
		return "-"
	}

	diff := now.Sub(time.UnixMilli(createdAtMs))
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
