package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/slate/internal/listing"
	"github.com/dyluth/slate/internal/printer"
	"github.com/dyluth/slate/internal/resolver"
	"github.com/dyluth/slate/internal/timespec"
	"github.com/spf13/cobra"
)

var (
	tabsOutputFormat string
	tabsSince        string
	tabsUntil        string
	tabsTitle        string
)

var tabsCmd = &cobra.Command{
	Use:   "tabs [TAB]",
	Short: "Inspect stored tabs with filtering",
	Long: `Inspect the tabs stored for this instance in list or get mode.

List Mode (no TAB):
  Displays tabs matching filters as a table or JSONL stream.

Get Mode (with TAB):
  Displays the tab and its blackboard as pretty-printed JSON.
  TAB may be a full ID, a 1-based position, a title, or the last digits of an ID.

Output Formats (list mode only):
  default - Human-readable table with ID, title, item count and content
  jsonl   - Line-delimited JSON, one board per line

Filters (list mode only):
  --since  - Show tabs created after this time
  --until  - Show tabs created before this time
  --title  - Filter by title (glob pattern, case-insensitive: "meeting*")

Examples:
  # List all tabs
  slate tabs

  # Tabs opened in the last two hours
  slate tabs --since=2h

  # Export as JSONL for jq
  slate tabs --output=jsonl | jq '.blackboard.items | length'

  # Show the second tab
  slate tabs 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTabs,
}

func init() {
	tabsCmd.Flags().StringVarP(&tabsOutputFormat, "output", "o", "default", "Output format: default or jsonl (ignored in get mode)")
	tabsCmd.Flags().StringVar(&tabsSince, "since", "", "Show tabs created after time (duration, RFC3339 or date)")
	tabsCmd.Flags().StringVar(&tabsUntil, "until", "", "Show tabs created before time (duration, RFC3339 or date)")
	tabsCmd.Flags().StringVar(&tabsTitle, "title", "", "Filter by title (glob pattern)")
	rootCmd.AddCommand(tabsCmd)
}

func runTabs(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	isGetMode := len(args) > 0

	var outputFormat listing.OutputFormat
	if !isGetMode {
		switch tabsOutputFormat {
		case "default":
			outputFormat = listing.OutputFormatDefault
		case "jsonl":
			outputFormat = listing.OutputFormatJSONL
		default:
			return printer.Error(
				"invalid output format",
				fmt.Sprintf("Unknown format: %s", tabsOutputFormat),
				[]string{"Valid formats: default, jsonl"},
			)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gw, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	out := cmd.OutOrStdout()

	if isGetMode {
		ref := args[0]

		tabID, err := resolver.ResolveTabID(gw.GetTabs(ctx), ref)
		if err != nil {
			if resolver.IsNotFoundError(err) {
				return printer.Error(
					fmt.Sprintf("tab '%s' not found", ref),
					"No stored tab matches that reference.",
					[]string{"List all tabs:\n  slate tabs"},
				)
			}
			if ambigErr, ok := err.(*resolver.AmbiguousError); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), resolver.FormatAmbiguousError(ambigErr))
				return fmt.Errorf("ambiguous tab reference")
			}
			return fmt.Errorf("failed to resolve tab: %w", err)
		}

		if err := listing.GetTab(ctx, gw, tabID, out); err != nil {
			if listing.IsNotFound(err) {
				return printer.Error(
					fmt.Sprintf("tab '%s' not found", tabID),
					"The tab was resolved but is no longer stored.",
					[]string{"It may have just been closed. Try again."},
				)
			}
			return fmt.Errorf("failed to get tab: %w", err)
		}
		return nil
	}

	created, err := timespec.ParseRange(tabsSince, tabsUntil, time.Now())
	if err != nil {
		return printer.Error(
			"invalid time filter",
			err.Error(),
			[]string{"Use a duration like '1h30m', RFC3339 like '2025-10-29T13:00:00Z', or a date like '2025-10-29'"},
		)
	}

	filters := &listing.Criteria{Created: created, TitleGlob: tabsTitle}
	if err := listing.ListTabs(ctx, gw, cfg.Instance, outputFormat, filters, out); err != nil {
		return fmt.Errorf("failed to list tabs: %w", err)
	}

	return nil
}
