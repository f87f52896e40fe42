package commands

import (
	"fmt"
	"strings"

	"github.com/dyluth/slate/internal/printer"
	"github.com/dyluth/slate/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter slate.yml",
	Long: `Create a starter workspace configuration.

Creates:
  • slate.yml       - server, Redis, login and limits
  • edge-config.yml - greeting and feature flags served locally

Use --force to overwrite existing files.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	// Note: Cannot use -f shorthand to stay clear of the global --config flag family
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite existing slate.yml and edge-config.yml")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to initialize")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := scaffold.Initialize(initDir, forceInit); err != nil {
		if strings.HasPrefix(err.Error(), "workspace already initialized") {
			return printer.Error("workspace already initialized", err.Error(), nil)
		}
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess(cmd.OutOrStdout())
	return nil
}
