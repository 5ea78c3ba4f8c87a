package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/fitwheel/internal/config"
	"github.com/runger/fitwheel/internal/picker"
)

// withTestDirs points every XDG directory at a fresh temp dir, turns
// colored output off and returns the resulting paths.
func withTestDirs(t *testing.T) *config.Paths {
	t.Helper()
	withoutColors(t)
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root+"/config")
	t.Setenv("XDG_DATA_HOME", root+"/data")
	t.Setenv("XDG_CACHE_HOME", root+"/cache")
	t.Setenv("FITWHEEL_UNITS", "")
	t.Setenv("FITWHEEL_LOG_LEVEL", "")
	t.Setenv("FITWHEEL_DEBUG", "")
	return config.DefaultPaths()
}

// withoutColors pins plain output so assertions do not depend on test order.
func withoutColors(t *testing.T) {
	t.Helper()
	saveColors(t)
	colorMode = "never"
	disableColors()
}

// withClock fixes the command clock.
func withClock(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

// withPicker replaces the TUI with a scripted session: keys are fed to the
// model in order. Enter settles running animations just as it does live.
func withPicker(t *testing.T, keys ...tea.KeyMsg) *[]picker.Model {
	t.Helper()
	var seen []picker.Model
	old := runProgram
	runProgram = func(m picker.Model) (picker.Model, error) {
		seen = append(seen, m)
		var next tea.Model = m
		for _, k := range keys {
			next, _ = next.Update(k)
		}
		return next.(picker.Model), nil
	}
	t.Cleanup(func() { runProgram = old })
	return &seen
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()
	_ = w.Close()
	os.Stdout = old
	out := <-outC
	_ = r.Close()
	return out
}
