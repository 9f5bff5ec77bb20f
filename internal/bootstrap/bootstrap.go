// Package bootstrap assembles a playable session from settings and content.
package bootstrap

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/younwookim/td/configs"
	"github.com/younwookim/td/internal/application/session"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/infrastructure/config"
	"github.com/younwookim/td/internal/infrastructure/logging"
	"github.com/younwookim/td/internal/infrastructure/persistence"
)

// Options selects where settings and content come from
type Options struct {
	// SettingsPath is a viper settings file; missing means defaults
	SettingsPath string
	// ContentDir overrides the embedded entities.json and levels.json
	ContentDir string
	// LogFile overrides log.file from settings when set
	LogFile string
}

// Runtime is everything a driver needs
type Runtime struct {
	Settings *config.Settings
	Log      zerolog.Logger
	Catalog  *system.Catalog
	Engine   *system.Engine
	Session  *session.Session

	closers []io.Closer
}

// Open loads settings, content and the save backend and builds a session.
// Configuration errors are returned; nothing is left open on failure.
func Open(opts Options) (rt *Runtime, err error) {
	settings, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		return nil, err
	}

	logFile := settings.Log.File
	if opts.LogFile != "" {
		logFile = opts.LogFile
	}

	rt = &Runtime{Settings: settings}
	defer func() {
		if err != nil {
			_ = rt.Close()
			rt = nil
		}
	}()

	log, logCloser, err := logging.Open(logFile, settings.Log.Level)
	if err != nil {
		return rt, err
	}
	rt.Log = log
	rt.closers = append(rt.closers, logCloser)

	loader := config.NewFSLoader(configs.FS)
	if opts.ContentDir != "" {
		loader = config.NewLoader(opts.ContentDir)
	}
	content, err := loader.LoadAll()
	if err != nil {
		return rt, fmt.Errorf("failed to load content: %w", err)
	}

	rt.Catalog, err = system.NewCatalog(content)
	if err != nil {
		return rt, fmt.Errorf("invalid content: %w", err)
	}

	start := settings.Game.StartLevel
	if start < 0 || start >= rt.Catalog.LevelCount() {
		log.Warn().Int("startLevel", start).Msg("start level out of range, using 0")
		start = 0
	}
	rt.Engine, err = system.New(rt.Catalog, system.RulesFromSettings(settings), log, start)
	if err != nil {
		return rt, err
	}

	backend, err := persistence.NewBackend(settings.Save)
	if err != nil {
		return rt, err
	}
	rt.closers = append(rt.closers, backend)

	rt.Session = session.New(rt.Engine, backend, log)
	rt.Session.SetMaxDelta(settings.Display.MaxDeltaTime)

	log.Info().
		Str("save", settings.Save.Backend).
		Int("levels", rt.Catalog.LevelCount()).
		Int("start", start).
		Msg("runtime ready")
	return rt, nil
}

// Close releases the save backend and log file, newest first
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
