package commands

import (
	"context"

	"github.com/dyluth/slate/internal/printer"
	"github.com/dyluth/slate/pkg/kv"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [toggle]",
	Short: "Show or toggle the stored theme",
	Long: `Show the stored theme, or flip it between light and dark.

A running server keeps its own copy of the theme and picks up the stored
value on its next start.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var saveErr error
	gw, err := connect(ctx, cfg, kv.WithErrorHook(func(op, key string, err error) {
		if op == "set" && saveErr == nil {
			saveErr = err
		}
	}))
	if err != nil {
		return err
	}
	defer gw.Close()

	theme := gw.GetTheme(ctx)
	if len(args) == 0 {
		printer.Field("theme", theme)
		return nil
	}

	theme = theme.Toggle()
	gw.SaveTheme(ctx, theme)
	if saveErr != nil {
		return printer.ErrorWithContext(
			"theme not saved",
			saveErr.Error(),
			map[string]string{"Instance": cfg.Instance},
			[]string{"Check Redis is reachable, then run 'slate theme toggle' again"},
		)
	}
	printer.Success("Theme set to %s\n", theme)
	return nil
}
