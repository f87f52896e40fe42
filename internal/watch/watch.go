// Package watch streams board changes of a workspace as they are persisted.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dyluth/slate/pkg/board"
	"github.com/dyluth/slate/pkg/kv"
)

// OutputFormat specifies how activity is printed.
type OutputFormat string

const (
	// OutputFormatDefault prints one human-readable line per change
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON prints one JSON object per change
	OutputFormatJSON OutputFormat = "json"
)

// Activity is a board event together with a summary of the value written.
type Activity struct {
	Key     string `json:"key"`
	AtMs    int64  `json:"at_ms"`
	Summary string `json:"summary"`
}

// formatter renders activity to an output stream.
type formatter interface {
	FormatActivity(a Activity) error
}

type defaultFormatter struct {
	writer io.Writer
}

// FormatActivity writes "[15:04:05] 🗂  tabs saved: 3 tabs".
func (f *defaultFormatter) FormatActivity(a Activity) error {
	ts := time.UnixMilli(a.AtMs).Format("15:04:05")
	_, err := fmt.Fprintf(f.writer, "[%s] %s %s saved: %s\n", ts, icon(a.Key), a.Key, a.Summary)
	return err
}

type jsonFormatter struct {
	writer io.Writer
}

func (f *jsonFormatter) FormatActivity(a Activity) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal activity: %w", err)
	}
	_, err = fmt.Fprintf(f.writer, "%s\n", data)
	return err
}

func newFormatter(format OutputFormat, w io.Writer) (formatter, error) {
	switch format {
	case OutputFormatDefault, "":
		return &defaultFormatter{writer: w}, nil
	case OutputFormatJSON:
		return &jsonFormatter{writer: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// StreamActivity subscribes to board events and writes one line per change
// until ctx is cancelled. Returns nil on cancellation.
func StreamActivity(ctx context.Context, gw *kv.Gateway, format OutputFormat, w io.Writer) error {
	f, err := newFormatter(format, w)
	if err != nil {
		return err
	}

	sub, err := gw.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	errs := sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			a := Activity{Key: event.Key, AtMs: event.AtMs, Summary: Summarize(ctx, gw, event.Key)}
			if err := f.FormatActivity(a); err != nil {
				return fmt.Errorf("failed to write activity: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(w, "⚠️  %v\n", err)
		}
	}
}

// Summarize describes the value currently stored under entity.
func Summarize(ctx context.Context, gw *kv.Gateway, entity string) string {
	switch entity {
	case board.EntityTheme:
		return fmt.Sprintf("theme=%s", gw.GetTheme(ctx))
	case board.EntityTabs:
		return plural(len(gw.GetTabs(ctx)), "tab")
	case board.EntityBlackboards:
		blackboards := gw.GetBlackboards(ctx)
		items := 0
		for _, b := range blackboards {
			items += len(b.Items)
		}
		return fmt.Sprintf("%s, %s", plural(len(blackboards), "blackboard"), plural(items, "item"))
	default:
		return "-"
	}
}

func icon(entity string) string {
	switch entity {
	case board.EntityTheme:
		return "🎨"
	case board.EntityTabs:
		return "🗂 "
	case board.EntityBlackboards:
		return "🖍 "
	default:
		return "•"
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
