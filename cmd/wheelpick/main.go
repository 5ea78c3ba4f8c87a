package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/fitwheel/internal/config"
	fwlog "github.com/runger/fitwheel/internal/log"
	"github.com/runger/fitwheel/internal/picker"
)

// Version information (set via ldflags during build).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
// These match the expectations of shell scripts:
//
//	0 = selection made (use the result)
//	1 = cancelled by user
//	2 = fallback (no TTY, empty input, error, etc.)
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFallback  = 2
)

// pickOpts holds the parsed command-line options.
type pickOpts struct {
	start      string
	title      string
	projection bool
	limit      int
	unique     bool
	version    bool
}

// preflight checks the terminal before anything is read. Replaced in tests.
var preflight = func() error {
	if err := checkTTY(); err != nil {
		return err
	}
	if err := checkTERM(); err != nil {
		return err
	}
	return checkTermWidth()
}

// runTUI runs the picker on /dev/tty. Replaced in tests.
var runTUI = func(m picker.Model) (picker.Model, error) {
	// stdin and stdout carry data, so the TUI talks to the terminal directly.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return m, fmt.Errorf("cannot open /dev/tty: %w", err)
	}
	defer tty.Close()

	// Under $(wheelpick ...) stdout is a pipe and lipgloss would pick Ascii.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("TUI error: %w", err)
	}
	fm, ok := final.(picker.Model)
	if !ok {
		return m, errors.New("unexpected model type")
	}
	return fm, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the main entry point, returning an exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "wheelpick: %v\n", err)
		return exitFallback
	}
	if opts.version {
		printVersion(stdout)
		return exitSuccess
	}

	if err := preflight(); err != nil {
		fmt.Fprintf(stderr, "wheelpick: %v\n", err)
		return exitFallback
	}

	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(stderr, "wheelpick: failed to create directories: %v\n", err)
		return exitFallback
	}
	lockFd, err := acquireLock(paths.PickerLockFile())
	if err != nil {
		fmt.Fprintf(stderr, "wheelpick: %v\n", err)
		return exitFallback
	}
	defer releaseLock(lockFd)

	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		fmt.Fprintf(stderr, "wheelpick: failed to load config: %v\n", err)
		return exitFallback
	}

	logger, closer := openLog(cfg, paths)
	defer closer.Close()

	src := &picker.ReaderSource{R: stdin, Limit: opts.limit, Unique: opts.unique}
	lines, err := src.Lines(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "wheelpick: reading input: %v\n", err)
		return exitFallback
	}
	if len(lines) == 0 {
		fmt.Fprintln(stderr, "wheelpick: no input")
		return exitFallback
	}

	wcfg := cfg.Picker.WheelConfig()
	if opts.projection {
		wcfg.Projection.Enabled = true
	}
	screen, err := picker.NewListScreen(opts.title, lines, opts.start, wcfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "wheelpick: %v\n", err)
		return exitFallback
	}
	logger.Info("picker opened", "items", len(lines), "start", opts.start, "projection", wcfg.Projection.Enabled)

	final, err := runTUI(picker.NewModel([]picker.Screen{screen}, picker.Options{
		Units:         cfg.UnitSystem(),
		FrameInterval: cfg.Picker.FrameInterval(),
		Logger:        logger,
	}))
	if err != nil {
		logger.Error("picker failed", "error", err)
		fmt.Fprintf(stderr, "wheelpick: %v\n", err)
		return exitFallback
	}
	if !final.Done() {
		return exitCancelled
	}

	i, line, ok := screen.Selected()
	if !ok {
		return exitCancelled
	}
	logger.Info("picker selected", "index", i)
	fmt.Fprintln(stdout, line)
	return exitSuccess
}

// parseFlags parses the command line.
func parseFlags(args []string, stderr io.Writer) (*pickOpts, error) {
	fs := flag.NewFlagSet("wheelpick", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &pickOpts{}
	fs.StringVar(&opts.start, "start", "", "line to select initially")
	fs.StringVar(&opts.title, "title", "Pick one", "header text")
	fs.BoolVar(&opts.projection, "3d", false, "render the wheel as a cylinder")
	fs.IntVar(&opts.limit, "limit", 0, "keep only the last N input lines (0 = all)")
	fs.BoolVar(&opts.unique, "unique", false, "drop repeated lines, keeping the last")
	fs.BoolVar(&opts.version, "version", false, "print version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: wheelpick [flags] < items

Reads one item per line from stdin and opens a wheel picker on the terminal.
The chosen line is printed to stdout.

Exit codes: 0 selected, 1 cancelled, 2 no terminal or no input.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if opts.limit < 0 {
		return nil, fmt.Errorf("--limit must not be negative (got %d)", opts.limit)
	}
	return opts, nil
}

// openLog opens the configured log file. Logging is best effort: the picker
// still runs when the file cannot be opened.
func openLog(cfg *config.Config, paths *config.Paths) (*slog.Logger, io.Closer) {
	path := cfg.Log.File
	if path == "" {
		path = paths.LogFile()
	}
	logger, closer, err := fwlog.OpenFile(path, fwlog.ParseLevel(cfg.Log.Level))
	if err != nil {
		return fwlog.Discard(), io.NopCloser(nil)
	}
	fwlog.LogStartup(logger, fwlog.StartupInfo{
		Version:    Version,
		Command:    "wheelpick",
		ConfigPath: paths.ConfigFile(),
		PID:        os.Getpid(),
	})
	return logger, closer
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "wheelpick %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  built:  %s\n", BuildDate)
}
