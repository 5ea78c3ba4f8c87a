// Package config provides configuration management for fitwheel.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names every per-user directory.
const appName = "fitwheel"

// Paths holds all the path configurations for fitwheel.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/fitwheel)
	ConfigDir string

	// DataDir is the directory for the database and logs (~/.local/share/fitwheel)
	DataDir string

	// CacheDir is the directory for lock files (~/.cache/fitwheel)
	CacheDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, appName),
			DataDir:   filepath.Join(localAppData, appName),
			CacheDir:  filepath.Join(localAppData, appName, "cache"),
		}
	}

	return &Paths{
		ConfigDir: filepath.Join(xdgDir("XDG_CONFIG_HOME", home, ".config"), appName),
		DataDir:   filepath.Join(xdgDir("XDG_DATA_HOME", home, ".local", "share"), appName),
		CacheDir:  filepath.Join(xdgDir("XDG_CACHE_HOME", home, ".cache"), appName),
	}
}

func xdgDir(env, home string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// DatabaseFile returns the path to the SQLite database.
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "state.db")
}

// LogDir returns the path to the log directory.
func (p *Paths) LogDir() string {
	return filepath.Join(p.DataDir, "logs")
}

// LogFile returns the path to the TUI log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogDir(), "fitwheel.log")
}

// PickerLockFile returns the advisory lock held by a running wheelpick.
func (p *Paths) PickerLockFile() string {
	return filepath.Join(p.CacheDir, "wheelpick.lock")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir, p.LogDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
