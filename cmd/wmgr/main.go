// Package main implements wmgr, a keyboard-driven window placement tool.
// wmgr moves and resizes the focused window by symbolic action names such as
// left_half or top_right_sixth, cycles it across displays and moves it to an
// adjacent virtual desktop.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/1broseidon/wmgr/internal/action"
)

// Version information (set by the release build)
var (
	version = "dev"
	commit  = "none"
)

// Global flags
var (
	configPath string
	debugMode  bool
	dryRun     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s", version, commit)),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wmgr <action>",
		Short: "Place the focused window by action name",
		Long: `wmgr moves and resizes the focused window.

Each invocation applies one action to the focused window: a fraction of the
active display (halves, quarters, sixths, thirds, fourths), a size or
position nudge, a move to the next or previous display, or a move to the
adjacent virtual desktop. Run 'wmgr list' for every action name.`,
		Example: `  # Tile the focused window to the left half of its display
  wmgr left_half

  # Show where the window would go without moving it
  wmgr --dry-run top_right_sixth

  # Send the window to the next display
  wmgr next_display

  # Choose an action from rofi, fuzzel, wofi or dmenu
  wmgr palette`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			a, err := action.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w (run 'wmgr list' for valid names)", err)
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.run(cmd.OutOrStdout(), a, dryRun)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/wmgr/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the planned outcome without changing anything")

	rootCmd.AddCommand(newListCmd(), newDisplaysCmd(), newWorkspacesCmd())
	rootCmd.AddCommand(newPaletteCmd(), newPickCmd(), newListenCmd(), newMCPCmd(), newConfigCmd())
	return rootCmd
}

func completeActions(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	all := action.All()
	names := make([]string, 0, len(all))
	for _, a := range all {
		names = append(names, a.String()+"\t"+a.Title())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
