package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/fitwheel/internal/measure"
	"github.com/runger/fitwheel/internal/picker"
	"github.com/runger/fitwheel/internal/storage"
)

var (
	weightHistoryLimit int
	goalCheckpoints    int
)

var weightCmd = &cobra.Command{
	Use:     "weight",
	Short:   "Log weight, show history and set goals",
	GroupID: groupCore,
}

var weightLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Pick today's weight and save it",
	Long: `Open a weight picker seeded with the last logged weight and save the
selection as today's entry. Logging twice on one day replaces the entry.`,
	Args: cobra.NoArgs,
	RunE: runWeightLog,
}

var weightHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show logged weights",
	Long: `Show the most recent weight entries, newest first, with the change
from the previous entry and progress toward the active goal.

Examples:
  fitwheel weight history          # Last 14 entries
  fitwheel weight history -n 60    # Last 60 entries`,
	Args: cobra.NoArgs,
	RunE: runWeightHistory,
}

var weightGoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Pick a target weight",
	Long: `Open a weight picker for the target weight. The latest logged weight is
the starting point; setting a new goal retires the previous one.`,
	Args: cobra.NoArgs,
	RunE: runWeightGoal,
}

func init() {
	weightHistoryCmd.Flags().IntVarP(&weightHistoryLimit, "limit", "n", 14, "Maximum number of entries to show")
	weightGoalCmd.Flags().IntVar(&goalCheckpoints, "checkpoints", measure.DefaultCheckpoints, "Number of intermediate targets")

	weightCmd.AddCommand(weightLogCmd)
	weightCmd.AddCommand(weightHistoryCmd)
	weightCmd.AddCommand(weightGoalCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runWeightLog(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	e, err := openEnv(ctx, "weight log")
	if err != nil {
		return err
	}
	defer e.Close()

	units := e.units(ctx)
	initial, err := latestWeight(ctx, e.store, units)
	if err != nil {
		return err
	}
	ws, err := picker.NewWeightScreen("Today's weight", e.cfg.Picker.WheelConfig(), units, initial, e.logger)
	if err != nil {
		return err
	}
	if _, err := e.runScreens([]picker.Screen{ws}, units, true); err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Println("Cancelled, nothing saved.")
			return nil
		}
		return err
	}

	w := ws.Weight()
	entry := &storage.WeightEntry{
		WeightKg:       w.Kg(),
		Unit:           string(w.Unit),
		LoggedAtUnixMs: now().UnixMilli(),
	}
	if err := e.store.LogWeight(ctx, entry); err != nil {
		return err
	}
	e.logger.Info("weight logged", "kg", entry.WeightKg, "date", entry.LoggedDate)
	fmt.Printf("Logged %s%s%s for %s\n", colorBold, w, colorReset, entry.LoggedDate)
	return nil
}

func runWeightHistory(cmd *cobra.Command, args []string) error {
	if weightHistoryLimit <= 0 {
		return fmt.Errorf("--limit must be positive (got %d)", weightHistoryLimit)
	}
	ctx := commandContext(cmd)
	e, err := openEnv(ctx, "weight history")
	if err != nil {
		return err
	}
	defer e.Close()

	units := e.units(ctx)
	// Streaks need the whole log; the table shows the newest entries.
	entries, err := e.store.ListWeights(ctx, 0)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No weights logged yet. Run 'fitwheel weight log' to add one.")
		return nil
	}

	goal, err := e.store.ActiveWeightGoal(ctx)
	if err != nil && !errors.Is(err, storage.ErrGoalNotFound) {
		return err
	}
	var heightCm float64
	if p, err := e.store.GetProfile(ctx); err == nil {
		heightCm = p.HeightCm
	} else if !errors.Is(err, storage.ErrProfileNotFound) {
		return err
	}

	shown := entries[:min(len(entries), weightHistoryLimit+1)]
	fmt.Print(formatHistory(shown, weightHistoryLimit, units.WeightUnit(), goal, terminalWidth()))
	fmt.Print(formatStats(entries, heightCm))
	return nil
}

// formatStats renders the logging streaks and, when the height is known, the
// BMI of the newest entry.
func formatStats(entries []storage.WeightEntry, heightCm float64) string {
	dates := make([]string, len(entries))
	for i, en := range entries {
		dates[i] = en.LoggedDate
	}
	st := measure.Streaks(dates)

	var b strings.Builder
	fmt.Fprintf(&b, "\nStreak: %s%s%s active, longest %s\n", colorBold, days(st.Active), colorReset, days(st.Longest))
	if bmi, ok := measure.BMI(entries[0].WeightKg, heightCm); ok {
		fmt.Fprintf(&b, "BMI: %.1f\n", bmi)
	}
	return b.String()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// formatHistory renders up to limit entries, newest first. Entries past the
// limit are used only for the last row's change.
func formatHistory(entries []storage.WeightEntry, limit int, u measure.WeightUnit, goal *storage.WeightGoal, width int) string {
	var b strings.Builder
	shown := min(limit, len(entries))

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, en := range entries[:shown] {
		lo, hi = math.Min(lo, en.WeightKg), math.Max(hi, en.WeightKg)
	}
	// date (10) + weight (10) + change (8) + gaps
	barWidth := max(0, min(40, width-34))

	fmt.Fprintf(&b, "%s%-10s  %10s  %8s%s\n", colorBold, "Date", "Weight", "Change", colorReset)
	for i, en := range entries[:shown] {
		w := measure.Weight{Value: en.WeightKg, Unit: measure.Kilograms}.In(u)
		change := ""
		if i+1 < len(entries) {
			prev := measure.Weight{Value: entries[i+1].WeightKg, Unit: measure.Kilograms}.In(u)
			change = formatChange(w.Value - prev.Value)
		}
		fmt.Fprintf(&b, "%-10s  %10s  %8s", en.LoggedDate, w, change)
		if barWidth > 0 {
			b.WriteString("  ")
			b.WriteString(colorCyan)
			b.WriteString(strings.Repeat("▇", barLength(en.WeightKg, lo, hi, barWidth)))
			b.WriteString(colorReset)
		}
		b.WriteByte('\n')
	}

	if goal != nil {
		p := measure.GoalProgress(goal.StartWeightKg, goal.TargetWeightKg, entries[0].WeightKg, goal.Checkpoints)
		target := measure.Weight{Value: goal.TargetWeightKg, Unit: measure.Kilograms}.In(u)
		next := measure.Weight{Value: p.NextKg, Unit: measure.Kilograms}.In(u)
		fmt.Fprintf(&b, "\nGoal %s: %s%.0f%%%s done, checkpoint %d/%d, next %s\n",
			target, colorGreen, p.Fraction*100, colorReset, p.Passed, len(p.Checkpoints), next)
	}
	return b.String()
}

func formatChange(d float64) string {
	d = math.Round(d*10) / 10
	switch {
	case d > 0:
		return fmt.Sprintf("+%.1f", d)
	case d < 0:
		return fmt.Sprintf("%.1f", d)
	default:
		return "±0.0"
	}
}

// barLength scales v within [lo, hi] to 1..width.
func barLength(v, lo, hi float64, width int) int {
	if hi <= lo {
		return width
	}
	return 1 + int(math.Round((v-lo)/(hi-lo)*float64(width-1)))
}

func runWeightGoal(cmd *cobra.Command, args []string) error {
	if goalCheckpoints < 1 {
		return fmt.Errorf("--checkpoints must be at least 1 (got %d)", goalCheckpoints)
	}
	ctx := commandContext(cmd)
	e, err := openEnv(ctx, "weight goal")
	if err != nil {
		return err
	}
	defer e.Close()

	latest, err := e.store.LatestWeight(ctx)
	if errors.Is(err, storage.ErrWeightNotFound) {
		return errors.New("log a weight first: the goal starts from the latest entry")
	}
	if err != nil {
		return err
	}

	units := e.units(ctx)
	wu := units.WeightUnit()
	initial := measure.Weight{Value: latest.WeightKg, Unit: measure.Kilograms}.In(wu)
	if g, err := e.store.ActiveWeightGoal(ctx); err == nil {
		initial = measure.Weight{Value: g.TargetWeightKg, Unit: measure.Kilograms}.In(wu)
	} else if !errors.Is(err, storage.ErrGoalNotFound) {
		return err
	}

	ws, err := picker.NewWeightScreen("Goal weight", e.cfg.Picker.WheelConfig(), units, initial, e.logger)
	if err != nil {
		return err
	}
	if _, err := e.runScreens([]picker.Screen{ws}, units, true); err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Println("Cancelled, goal unchanged.")
			return nil
		}
		return err
	}

	target := ws.Weight()
	goal := &storage.WeightGoal{
		StartWeightKg:   latest.WeightKg,
		TargetWeightKg:  target.Kg(),
		Unit:            string(target.Unit),
		Checkpoints:     goalCheckpoints,
		CreatedAtUnixMs: now().UnixMilli(),
	}
	if err := e.store.SetWeightGoal(ctx, goal); err != nil {
		return err
	}
	e.logger.Info("weight goal set", "start_kg", goal.StartWeightKg, "target_kg", goal.TargetWeightKg)

	start := measure.Weight{Value: latest.WeightKg, Unit: measure.Kilograms}.In(target.Unit)
	fmt.Printf("Goal set: %s → %s%s%s in %d checkpoints (since %s)\n",
		start, colorBold, target, colorReset, goal.Checkpoints, time.UnixMilli(goal.CreatedAtUnixMs).Format(time.DateOnly))
	return nil
}
