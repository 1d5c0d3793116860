package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/1broseidon/wmgr/internal/action"
	"github.com/1broseidon/wmgr/internal/config"
	"github.com/1broseidon/wmgr/internal/engine"
	"github.com/1broseidon/wmgr/internal/logging"
	"github.com/1broseidon/wmgr/internal/platform"
)

// openBackend connects to the window system. Tests replace it.
var openBackend = platform.Open

// app is the per-invocation state shared by the commands.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	backend platform.Backend
	engine  *engine.Engine
}

// loadApp reads the configuration and builds the logger without touching
// the window system.
func loadApp() (*app, error) {
	res, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	lc := res.Config.LoggerConfig()
	if debugMode {
		lc.Level = zerolog.DebugLevel
	}
	logger := logging.New(lc)
	if res.File != "" {
		logger.Debug().Str("file", res.File).Msg("config loaded")
	}
	return &app{cfg: res.Config, logger: logger}, nil
}

// newApp is loadApp plus an open backend and engine.
func newApp() (*app, error) {
	a, err := loadApp()
	if err != nil {
		return nil, err
	}
	if err := a.open(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) open() error {
	if a.engine != nil {
		return nil
	}
	backend, err := openBackend(a.cfg.PlatformOptions())
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to open the window system")
		return fmt.Errorf("open window system: %w", err)
	}
	a.backend = backend
	a.engine = engine.New(backend, a.cfg.Table(), a.logger)
	return nil
}

// Close releases the backend connection.
func (a *app) Close() {
	if a.backend == nil {
		return
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Debug().Err(err).Msg("close backend")
	}
}

// run applies act, or only prints its outcome when dry is set.
func (a *app) run(w io.Writer, act action.Action, dry bool) error {
	if err := a.open(); err != nil {
		return err
	}
	if dry {
		out, err := a.engine.Plan(act)
		if err != nil {
			a.logger.Error().Err(err).Str("action", act.String()).Msg("plan failed")
			return err
		}
		fmt.Fprintln(w, out)
		for _, ev := range out.Workspace.Events {
			fmt.Fprintf(w, "  %s\n", ev)
		}
		return nil
	}

	out, err := a.engine.Apply(act)
	if err != nil {
		a.logger.Error().Err(err).Str("action", act.String()).Msg("action failed")
		return err
	}
	a.logger.Debug().Str("outcome", out.String()).Msg("action applied")
	return nil
}
