package listing

import (
	"context"
	"fmt"
	"io"
)

// GetTab writes the board with tabID as pretty-printed JSON.
// Returns a TabNotFoundError if no such tab is stored.
func GetTab(ctx context.Context, src Source, tabID string, w io.Writer) error {
	for _, e := range Load(ctx, src) {
		if e.Tab.ID != tabID {
			continue
		}
		if err := FormatSingleJSON(w, e); err != nil {
			return fmt.Errorf("failed to format tab: %w", err)
		}
		return nil
	}

	return &TabNotFoundError{TabID: tabID}
}

// TabNotFoundError represents a specific "tab not found" error.
type TabNotFoundError struct {
	TabID string
}

func (e *TabNotFoundError) Error() string {
	return fmt.Sprintf("tab with ID '%s' not found", e.TabID)
}

// IsNotFound returns true if the error is a TabNotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*TabNotFoundError)
	return ok
}
