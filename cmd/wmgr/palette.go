package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/palette"
	"github.com/1broseidon/wmgr/internal/tui"
)

func newPaletteCmd() *cobra.Command {
	var backendName string

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Choose an action from rofi, fuzzel, wofi or dmenu",
		Long: `Show every action in an external launcher and apply the choice.

The launcher comes from --backend, then palette.backend in the config; 'auto'
picks the first of rofi, fuzzel, wofi and dmenu found in PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			name := app.cfg.Palette.Backend
			if backendName != "" {
				name = backendName
			}
			backend, err := palette.NewBackend(name, app.cfg.Palette.FuzzyMatching)
			if err != nil {
				return err
			}
			app.logger.Debug().Str("backend", backend.Name()).Msg("palette backend")

			a, err := palette.PickAction(backend, action.Action(-1))
			if errors.Is(err, palette.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			return app.run(cmd.OutOrStdout(), a, dryRun)
		},
	}
	cmd.Flags().StringVar(&backendName, "backend", "", "Launcher: auto, rofi, fuzzel, wofi or dmenu")
	return cmd
}

func newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose an action in an interactive terminal picker",
		Long: `Browse the actions with a preview of where each one puts a window,
then apply the choice to the focused window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			a, err := tui.Pick(app.cfg.Table())
			if errors.Is(err, tui.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			return app.run(cmd.OutOrStdout(), a, dryRun)
		},
	}
}
