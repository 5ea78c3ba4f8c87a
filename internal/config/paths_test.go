package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths()

	for name, dir := range map[string]string{
		"ConfigDir": paths.ConfigDir,
		"DataDir":   paths.DataDir,
		"CacheDir":  paths.CacheDir,
	} {
		if dir == "" {
			t.Errorf("%s is empty", name)
			continue
		}
		if !filepath.IsAbs(dir) {
			t.Errorf("%s should be absolute: %s", name, dir)
		}
		if !strings.Contains(dir, "fitwheel") {
			t.Errorf("%s should contain 'fitwheel': %s", name, dir)
		}
	}
}

func TestDefaultPaths_XDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}

	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")

	paths := DefaultPaths()

	if paths.ConfigDir != "/custom/config/fitwheel" {
		t.Errorf("ConfigDir should respect XDG_CONFIG_HOME: %s", paths.ConfigDir)
	}
	if paths.DataDir != "/custom/data/fitwheel" {
		t.Errorf("DataDir should respect XDG_DATA_HOME: %s", paths.DataDir)
	}
	if paths.CacheDir != "/custom/cache/fitwheel" {
		t.Errorf("CacheDir should respect XDG_CACHE_HOME: %s", paths.CacheDir)
	}
}

func TestPaths_Files(t *testing.T) {
	p := &Paths{ConfigDir: "/c", DataDir: "/d", CacheDir: "/k"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigFile", p.ConfigFile(), "/c/config.yaml"},
		{"DatabaseFile", p.DatabaseFile(), "/d/state.db"},
		{"LogDir", p.LogDir(), "/d/logs"},
		{"LogFile", p.LogFile(), "/d/logs/fitwheel.log"},
		{"PickerLockFile", p.PickerLockFile(), "/k/wheelpick.lock"},
	}
	for _, tt := range tests {
		if filepath.ToSlash(tt.got) != tt.want {
			t.Errorf("%s() = %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	p := &Paths{
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
		CacheDir:  filepath.Join(root, "cache"),
	}
	if err := p.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir, p.LogDir()} {
		if !dirExists(dir) {
			t.Errorf("directory %s was not created", dir)
		}
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
