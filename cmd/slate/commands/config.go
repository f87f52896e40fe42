package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dyluth/slate/internal/printer"
	"github.com/dyluth/slate/pkg/edgeconfig"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read items from the edge config source",
}

var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Print an edge config item as JSON",
	Long: `Print an edge config item as JSON, or every item when KEY is omitted.

Dotted keys descend into nested objects: "feature_flags.beta".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigGet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newConfigClient(cfg)
	if err != nil {
		return printer.Error("edge config unavailable", err.Error(), nil)
	}

	var value any
	if len(args) == 0 {
		all := client.GetAll(ctx)
		if all == nil {
			return printer.Error(
				"edge config unavailable",
				"Could not read items from the edge config source.",
				[]string{"Check edge_config in slate.yml"},
			)
		}
		value = all
	} else {
		item := edgeconfig.Get[any](ctx, client, args[0])
		if item == nil {
			return printer.Error(
				fmt.Sprintf("item '%s' not found", args[0]),
				"The key is absent or the edge config source could not be read.",
				[]string{"List every item:\n  slate config get"},
			)
		}
		value = *item
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
