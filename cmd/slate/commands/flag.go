package commands

import (
	"context"

	"github.com/dyluth/slate/internal/printer"
	"github.com/spf13/cobra"
)

var flagCmd = &cobra.Command{
	Use:   "flag NAME",
	Short: "Show whether a feature flag is enabled",
	Long: `Show whether a feature flag is enabled.

Flags are read from feature_flags.NAME in the configured edge config source.
Missing flags, and flags that cannot be read, are reported as disabled.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlag,
}

func init() {
	rootCmd.AddCommand(flagCmd)
}

func runFlag(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newConfigClient(cfg)
	if err != nil {
		return printer.Error("edge config unavailable", err.Error(), nil)
	}

	printer.Field(args[0], client.GetFeatureFlag(context.Background(), args[0]))
	return nil
}
