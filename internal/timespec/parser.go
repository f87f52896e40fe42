// Package timespec parses the --since / --until flags used to filter tabs by
// creation time.
package timespec

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Parse parses a time specification into a Unix timestamp (milliseconds),
// relative to the current time. See ParseAt.
func Parse(spec string) (int64, error) {
	return ParseAt(spec, time.Now())
}

// ParseAt parses a time specification into a Unix timestamp (milliseconds).
// Supports three formats:
//   - Go duration format: "1h", "30m", "1h30m" (that long before now)
//   - RFC3339 timestamps: "2025-10-29T13:00:00Z"
//   - Dates: "2025-10-29" (midnight UTC)
func ParseAt(spec string, now time.Time) (int64, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.UnixMilli(), nil
	}

	if t, err := time.Parse(dateLayout, spec); err == nil {
		return t.UnixMilli(), nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("invalid time specification: %s (duration must not be negative)", spec)
		}
		return now.Add(-d).UnixMilli(), nil
	}

	return 0, fmt.Errorf("invalid time specification: %s (use duration like '1h30m', RFC3339 like '2025-10-29T13:00:00Z' or a date like '2025-10-29')", spec)
}

// Range is a closed interval of Unix millisecond timestamps.
// A zero bound means that end is open.
type Range struct {
	SinceMs int64
	UntilMs int64
}

// Contains reports whether ms lies within the range.
func (r Range) Contains(ms int64) bool {
	if r.SinceMs > 0 && ms < r.SinceMs {
		return false
	}
	if r.UntilMs > 0 && ms > r.UntilMs {
		return false
	}
	return true
}

// ParseRange parses both --since and --until flags into a time range.
// Validates that since < until if both are specified.
func ParseRange(since, until string, now time.Time) (Range, error) {
	var r Range
	var err error

	if since != "" {
		r.SinceMs, err = ParseAt(since, now)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --since: %w", err)
		}
	}

	if until != "" {
		r.UntilMs, err = ParseAt(until, now)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --until: %w", err)
		}
	}

	if r.SinceMs > 0 && r.UntilMs > 0 && r.SinceMs >= r.UntilMs {
		return Range{}, fmt.Errorf("--since must be before --until")
	}

	return r, nil
}
