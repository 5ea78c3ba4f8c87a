package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/fitwheel/internal/config"
	fwlog "github.com/runger/fitwheel/internal/log"
	"github.com/runger/fitwheel/internal/wheel"
)

// maxSimFrames stops a simulation that somehow never settles.
const maxSimFrames = 100_000

var (
	simItems    int
	simVelocity float64
	simStart    int
	simEvery    int
)

var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Short:   "Fling a wheel without a terminal and print its trajectory",
	GroupID: groupSetup,
	Long: `Release a wheel of --items entries at --velocity (offset units per second,
one item is 50 units; negative moves toward later items) and step it frame
by frame with the configured picker settings until it settles.

Examples:
  fitwheel simulate --items 100 --velocity -3000
  fitwheel simulate --items 10 --velocity 15 --start 4   # below threshold: snaps`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simItems, "items", 50, "Number of items on the wheel")
	simulateCmd.Flags().Float64Var(&simVelocity, "velocity", -2000, "Release velocity in units per second")
	simulateCmd.Flags().IntVar(&simStart, "start", 0, "Index selected before the fling")
	simulateCmd.Flags().IntVar(&simEvery, "every", 5, "Print every Nth frame")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simItems < 0 {
		return fmt.Errorf("--items must not be negative (got %d)", simItems)
	}
	if simEvery < 1 {
		simEvery = 1
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := fwlog.New(&fwlog.Config{Output: os.Stderr, Level: fwlog.ParseLevel(cfg.Log.Level)})
	return simulate(cmd.OutOrStdout(), cfg.Picker.WheelConfig(), cfg.Picker.FrameInterval(), simItems, simStart, simVelocity, simEvery, logger)
}

// simResult is what a simulation ends with.
type simResult struct {
	Index   int
	Frames  int
	Elapsed time.Duration
	Settles int
}

func simulate(out io.Writer, wcfg wheel.Config, frame time.Duration, n, start int, velocity float64, every int, logger *slog.Logger) error {
	if n == 0 {
		fmt.Fprintln(out, "empty wheel: nothing to settle")
		return nil
	}
	res, err := runFling(out, wcfg, frame, n, start, velocity, every)
	if err != nil {
		return err
	}
	logger.Debug("simulation finished", "index", res.Index, "frames", res.Frames, "settles", res.Settles)
	fmt.Fprintf(out, "settled at index %d after %d frames (%s), %d settle event(s)\n",
		res.Index, res.Frames, res.Elapsed.Round(time.Millisecond), res.Settles)
	return nil
}

func runFling(out io.Writer, wcfg wheel.Config, frame time.Duration, n, start int, velocity float64, every int) (simResult, error) {
	res := simResult{Index: -1}
	items := wheel.Range(0, n-1, 1, strconv.Itoa)
	p, err := wheel.New(items, wcfg,
		wheel.WithInitialIndex[int](start),
		wheel.WithOnValueChanged(func(_ int, i int) {
			res.Settles++
			res.Index = i
		}),
	)
	if err != nil {
		return res, err
	}
	// The construction settle is not part of the fling.
	res.Settles = 0

	fmt.Fprintf(out, "%8s  %-9s  %10s  %10s  %5s\n", "t", "mode", "offset", "velocity", "index")
	row := func() {
		st := p.State()
		_, idx := p.Geometry().Resolve(st.Offset)
		fmt.Fprintf(out, "%8s  %-9s  %10.1f  %10.1f  %5d\n",
			res.Elapsed.Round(time.Millisecond), st.Mode, st.Offset, st.Velocity, idx)
	}

	p.DragStart()
	p.DragEnd(velocity)
	row()
	for p.Animating() && res.Frames < maxSimFrames {
		p.Tick(frame)
		res.Frames++
		res.Elapsed += frame
		if res.Frames%every == 0 || !p.Animating() {
			row()
		}
	}
	if p.Animating() {
		return res, fmt.Errorf("wheel still moving after %d frames", res.Frames)
	}
	res.Index = p.Index()
	return res, nil
}
