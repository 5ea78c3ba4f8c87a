package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/fitwheel/internal/picker"
)

// --- Flag parsing ---

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.start != "" || opts.projection || opts.limit != 0 || opts.unique {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.title != "Pick one" {
		t.Errorf("title: expected %q, got %q", "Pick one", opts.title)
	}
}

func TestParseFlags_All(t *testing.T) {
	args := []string{"--start", "b", "--3d", "--title", "Branch", "--limit", "10", "--unique"}
	opts, err := parseFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.start != "b" || !opts.projection || opts.title != "Branch" || opts.limit != 10 || !opts.unique {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := map[string][]string{
		"unknown flag":   {"--unknown"},
		"positional":     {"extra"},
		"negative limit": {"--limit", "-1"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseFlags(args, io.Discard); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}

// --- run ---

// harness isolates run from the terminal and the user's files.
type harness struct {
	seen []picker.Model
}

func newHarness(t *testing.T, keys ...tea.KeyMsg) *harness {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root+"/config")
	t.Setenv("XDG_DATA_HOME", root+"/data")
	t.Setenv("XDG_CACHE_HOME", root+"/cache")
	t.Setenv("FITWHEEL_UNITS", "")
	t.Setenv("FITWHEEL_LOG_LEVEL", "")
	t.Setenv("FITWHEEL_DEBUG", "")

	h := &harness{}
	oldPreflight, oldTUI := preflight, runTUI
	preflight = func() error { return nil }
	runTUI = func(m picker.Model) (picker.Model, error) {
		h.seen = append(h.seen, m)
		var next tea.Model = m
		for _, k := range keys {
			next, _ = next.Update(k)
		}
		return next.(picker.Model), nil
	}
	t.Cleanup(func() { preflight, runTUI = oldPreflight, oldTUI })
	return h
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runWith(args []string, input string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(input), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_SelectsLine(t *testing.T) {
	newHarness(t, key(tea.KeyDown), key(tea.KeyEnter))

	code, out, _ := runWith(nil, "alpha\nbeta\ngamma\n")
	if code != exitSuccess {
		t.Fatalf("exit code: expected %d, got %d", exitSuccess, code)
	}
	if out != "beta\n" {
		t.Errorf("stdout: expected %q, got %q", "beta\n", out)
	}
}

func TestRun_StartValue(t *testing.T) {
	newHarness(t, key(tea.KeyEnter))

	_, out, _ := runWith([]string{"--start", "gamma"}, "alpha\nbeta\ngamma\n")
	if out != "gamma\n" {
		t.Errorf("stdout: expected %q, got %q", "gamma\n", out)
	}
}

func TestRun_UnknownStartSelectsFirst(t *testing.T) {
	newHarness(t, key(tea.KeyEnter))

	_, out, _ := runWith([]string{"--start", "delta"}, "alpha\nbeta\n")
	if out != "alpha\n" {
		t.Errorf("stdout: expected %q, got %q", "alpha\n", out)
	}
}

func TestRun_PrintsFullLongLine(t *testing.T) {
	newHarness(t, key(tea.KeyEnter))
	long := strings.Repeat("x", 200)

	_, out, _ := runWith(nil, long+"\n")
	if out != long+"\n" {
		t.Errorf("expected the untruncated line, got %d bytes", len(out))
	}
}

func TestRun_Cancelled(t *testing.T) {
	newHarness(t, key(tea.KeyEsc))

	code, out, _ := runWith(nil, "alpha\n")
	if code != exitCancelled {
		t.Fatalf("exit code: expected %d, got %d", exitCancelled, code)
	}
	if out != "" {
		t.Errorf("stdout should be empty on cancel, got %q", out)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := runWith(nil, "\n  \n")
	if code != exitFallback {
		t.Fatalf("exit code: expected %d, got %d", exitFallback, code)
	}
	if !strings.Contains(errOut, "no input") {
		t.Errorf("stderr: expected 'no input', got %q", errOut)
	}
	if len(h.seen) != 0 {
		t.Error("TUI should not start without input")
	}
}

func TestRun_PreflightFails(t *testing.T) {
	h := newHarness(t)
	preflight = func() error { return errors.New("no TTY available") }

	code, _, errOut := runWith(nil, "alpha\n")
	if code != exitFallback {
		t.Fatalf("exit code: expected %d, got %d", exitFallback, code)
	}
	if !strings.Contains(errOut, "no TTY") {
		t.Errorf("stderr: expected preflight error, got %q", errOut)
	}
	if len(h.seen) != 0 {
		t.Error("TUI should not start after a failed preflight")
	}
}

func TestRun_TUIError(t *testing.T) {
	newHarness(t)
	runTUI = func(m picker.Model) (picker.Model, error) { return m, errors.New("boom") }

	code, _, errOut := runWith(nil, "alpha\n")
	if code != exitFallback {
		t.Fatalf("exit code: expected %d, got %d", exitFallback, code)
	}
	if !strings.Contains(errOut, "boom") {
		t.Errorf("stderr: expected TUI error, got %q", errOut)
	}
}

func TestRun_Projection(t *testing.T) {
	h := newHarness(t, key(tea.KeyEnter))

	runWith([]string{"--3d"}, "alpha\nbeta\n")
	if len(h.seen) != 1 {
		t.Fatalf("expected one TUI run, got %d", len(h.seen))
	}
	cfg := h.seen[0].Screens()[0].Columns()[0].Wheel().Config()
	if !cfg.Projection.Enabled {
		t.Error("--3d should enable projection")
	}
}

func TestRun_UniqueAndLimit(t *testing.T) {
	h := newHarness(t, key(tea.KeyEnter))

	runWith([]string{"--unique", "--limit", "2"}, "a\nb\na\nc\n")
	col := h.seen[0].Screens()[0].Columns()[0]
	if n := col.Wheel().Registry().Size(); n != 2 {
		t.Errorf("expected 2 items after --unique --limit 2, got %d", n)
	}
}

func TestRun_VersionAndHelp(t *testing.T) {
	h := newHarness(t)

	code, out, _ := runWith([]string{"--version"}, "")
	if code != exitSuccess || !strings.HasPrefix(out, "wheelpick ") {
		t.Errorf("--version: code %d, stdout %q", code, out)
	}

	code, _, errOut := runWith([]string{"--help"}, "")
	if code != exitSuccess || !strings.Contains(errOut, "Exit codes") {
		t.Errorf("--help: code %d, stderr %q", code, errOut)
	}
	if len(h.seen) != 0 {
		t.Error("--version and --help should not start the TUI")
	}
}

func TestRun_BadFlag(t *testing.T) {
	newHarness(t)
	code, _, _ := runWith([]string{"--nope"}, "alpha\n")
	if code != exitFallback {
		t.Errorf("exit code: expected %d, got %d", exitFallback, code)
	}
}

// --- Color profile ---

// A pipe has no color capabilities, which is why the TUI detects the
// profile from /dev/tty instead of stdout.
func TestColorProfile_PipeDetectsAscii(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if p := termenv.NewOutput(w).ColorProfile(); p != termenv.Ascii {
		t.Errorf("expected Ascii profile for pipe, got %v", p)
	}
}

func TestColorProfile_ModifiesDefaultRenderer(t *testing.T) {
	orig := lipgloss.DefaultRenderer().ColorProfile()
	defer lipgloss.SetColorProfile(orig)

	lipgloss.SetColorProfile(termenv.Ascii)
	s := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	if got := s.Render("hello"); got != "hello" {
		t.Errorf("Ascii profile should render plain text, got %q", got)
	}

	lipgloss.SetColorProfile(termenv.TrueColor)
	if got := s.Render("hello"); got == "hello" {
		t.Error("TrueColor profile should render ANSI codes")
	}
}
