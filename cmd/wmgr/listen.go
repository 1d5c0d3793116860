package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/hotkeys"
	"github.com/1broseidon/wmgr/internal/mainthread"
)

func newListenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Apply actions from global keyboard shortcuts (X11)",
		Long: `Grab the key sequences in x11.bindings and apply the bound action each
time one is pressed. Runs in the foreground until interrupted.`,
		Example: `  # ~/.config/wmgr/config.yaml
  x11:
    bindings:
      Mod4-Mod1-Left: left_half
      Mod4-Mod1-Right: right_half
      Mod4-Mod1-n: next_display`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			bindings, err := hotkeys.ParseBindings(app.cfg.X11.Bindings)
			if err != nil {
				return err
			}
			if err := app.open(); err != nil {
				return err
			}
			handler, err := hotkeys.NewHandler(app.backend, app.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			apply := func(a action.Action) {
				err := mainthread.Call(ctx, func() {
					if _, err := app.engine.Apply(a); err != nil {
						app.logger.Error().Err(err).Str("action", a.String()).Msg("action failed")
					}
				})
				if err != nil {
					app.logger.Debug().Err(err).Str("action", a.String()).Msg("dropped key press")
				}
			}
			if err := handler.Bind(bindings, apply); err != nil {
				return err
			}

			app.logger.Info().Int("bindings", len(bindings)).Msg("listening for key bindings")
			err = mainthread.Loop(ctx, handler.Run)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
