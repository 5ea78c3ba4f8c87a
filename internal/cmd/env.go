package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/fitwheel/internal/config"
	fwlog "github.com/runger/fitwheel/internal/log"
	"github.com/runger/fitwheel/internal/measure"
	"github.com/runger/fitwheel/internal/picker"
	"github.com/runger/fitwheel/internal/storage"
)

// errCancelled is returned by runScreens when the user quits a picker.
var errCancelled = errors.New("cancelled")

// env is what every measurement command needs: config, paths, a file
// logger and the store.
type env struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger
	store  storage.Store

	logFile io.Closer
}

// openEnv loads config, opens the log file and the database.
func openEnv(ctx context.Context, command string) (*env, error) {
	paths := config.DefaultPaths()
	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = paths.LogFile()
	}
	logger, logFile, err := fwlog.OpenFile(logPath, fwlog.ParseLevel(cfg.Log.Level))
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStore(paths.DatabaseFile())
	if err != nil {
		fwlog.LogSQLiteError(logger, "open", err)
		_ = logFile.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		fwlog.LogSQLiteError(logger, "schema_version", err)
	}
	fwlog.LogStartup(logger, fwlog.StartupInfo{
		Version:       Version,
		Command:       command,
		ConfigPath:    paths.ConfigFile(),
		DatabasePath:  paths.DatabaseFile(),
		SchemaVersion: version,
		PID:           os.Getpid(),
	})

	return &env{cfg: cfg, paths: paths, logger: logger, store: store, logFile: logFile}, nil
}

// Close releases the store and the log file.
func (e *env) Close() error {
	err := e.store.Close()
	if cerr := e.logFile.Close(); err == nil {
		err = cerr
	}
	return err
}

// runProgram runs a picker model to completion. Tests replace it.
var runProgram = func(m picker.Model) (picker.Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("picker: %w", err)
	}
	fm, ok := final.(picker.Model)
	if !ok {
		return m, errors.New("picker: unexpected model type")
	}
	return fm, nil
}

// runScreens shows screens in one picker session. It returns errCancelled
// when the user backs out.
func (e *env) runScreens(screens []picker.Screen, units measure.UnitSystem, unitsToggle bool) (picker.Model, error) {
	m := picker.NewModel(screens, picker.Options{
		Units:         units,
		UnitsToggle:   unitsToggle,
		FrameInterval: e.cfg.Picker.FrameInterval(),
		Logger:        e.logger,
	})
	final, err := runProgram(m)
	if err != nil {
		return final, err
	}
	if !final.Done() {
		return final, errCancelled
	}
	return final, nil
}

// units returns the stored profile's unit system, falling back to config.
func (e *env) units(ctx context.Context) measure.UnitSystem {
	p, err := e.store.GetProfile(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			e.logger.Warn("failed to read profile", "error", err)
		}
		return e.cfg.UnitSystem()
	}
	u, err := measure.ParseUnitSystem(p.UnitSystem)
	if err != nil {
		return e.cfg.UnitSystem()
	}
	return u
}
