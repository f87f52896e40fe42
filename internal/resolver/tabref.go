// Package resolver turns the tab reference a user types on the command line
// into a tab ID.
package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dyluth/slate/pkg/board"
)

// MinSuffixLength is the minimum number of trailing ID characters accepted
// as a short reference.
const MinSuffixLength = 4

// ResolveTabID resolves ref against tabs. In order of precedence ref may be:
//  1. a full tab ID ("tab-1729850000123")
//  2. a 1-based position ("2")
//  3. a tab title, case-insensitive ("Notes")
//  4. a unique ID suffix of at least MinSuffixLength characters ("0123")
func ResolveTabID(tabs []board.Tab, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("tab reference cannot be empty")
	}

	for _, tab := range tabs {
		if tab.ID == ref {
			return tab.ID, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil && len(ref) < MinSuffixLength {
		if n < 1 || n > len(tabs) {
			return "", &NotFoundError{Ref: ref}
		}
		return tabs[n-1].ID, nil
	}

	var titled []string
	for _, tab := range tabs {
		if strings.EqualFold(tab.Title, ref) {
			titled = append(titled, tab.ID)
		}
	}
	if match, err := unique(ref, titled); match != "" || err != nil {
		return match, err
	}

	if len(ref) < MinSuffixLength {
		return "", &NotFoundError{Ref: ref}
	}

	var suffixed []string
	for _, tab := range tabs {
		if strings.HasSuffix(tab.ID, ref) {
			suffixed = append(suffixed, tab.ID)
		}
	}
	if match, err := unique(ref, suffixed); match != "" || err != nil {
		return match, err
	}

	return "", &NotFoundError{Ref: ref}
}

// unique returns the single match, an AmbiguousError for several, or "" for none.
func unique(ref string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Ref: ref, Matches: matches}
	}
}

// NotFoundError indicates no tab matched the reference.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no tab matching '%s'", e.Ref)
}

// AmbiguousError indicates multiple tabs matched the reference.
type AmbiguousError struct {
	Ref     string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous tab reference '%s' matches %d tabs", e.Ref, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous references.
// Lists all matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	msg := fmt.Sprintf("Error: ambiguous tab reference '%s' matches %d tabs:\n", err.Ref, len(err.Matches))

	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}

	for i := 0; i < displayCount; i++ {
		msg += fmt.Sprintf("  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		msg += fmt.Sprintf("  ...and %d more\n", len(err.Matches)-10)
	}

	msg += "\nUse the full tab ID or its position instead."
	return msg
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
