package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/fitwheel/internal/measure"
	"github.com/runger/fitwheel/internal/picker"
	"github.com/runger/fitwheel/internal/storage"
)

var measureCmd = &cobra.Command{
	Use:     "measure",
	Short:   "Record weight, height and birthday",
	GroupID: groupCore,
	Long: `Walk through weight, height and birthday pickers and save the result.

Each wheel can be dragged with the mouse, flung for momentum, scrolled, or
moved with the arrow keys. Press u to switch between metric and imperial,
enter to confirm a step, backspace to go back and esc to cancel.

The weight is stored as today's entry in the weight log.`,
	Args: cobra.NoArgs,
	RunE: runMeasure,
}

// now is the clock used for log dates and ages.
var now = time.Now

func runMeasure(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	e, err := openEnv(ctx, "measure")
	if err != nil {
		return err
	}
	defer e.Close()

	units := e.units(ctx)
	wcfg := e.cfg.Picker.WheelConfig()

	height := measure.DefaultHeight(units.HeightUnit())
	birthday := measure.DefaultBirthday
	if p, err := e.store.GetProfile(ctx); err == nil {
		if p.HeightCm > 0 {
			height = measure.Height{Cm: p.HeightCm}
		}
		if t, err := time.Parse(time.DateOnly, p.Birthday); err == nil {
			birthday = measure.DateOf(t)
		}
	} else if !errors.Is(err, storage.ErrProfileNotFound) {
		return err
	}

	weight, err := latestWeight(ctx, e.store, units)
	if err != nil {
		return err
	}

	ws, err := picker.NewWeightScreen("Weight", wcfg, units, weight, e.logger)
	if err != nil {
		return err
	}
	hs, err := picker.NewHeightScreen("Height", wcfg, units, height, e.logger)
	if err != nil {
		return err
	}
	bs, err := picker.NewBirthdayScreen("Birthday", wcfg, birthday, e.logger)
	if err != nil {
		return err
	}

	final, err := e.runScreens([]picker.Screen{ws, hs, bs}, units, true)
	if errors.Is(err, errCancelled) {
		fmt.Println("Cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}

	units = final.Units()
	profile := &storage.Profile{
		UnitSystem: string(units),
		HeightCm:   hs.Height().Cm,
		Birthday:   bs.Date().String(),
	}
	if err := e.store.SaveProfile(ctx, profile); err != nil {
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
	e.logger.Info("profile saved", "units", string(units), "height_cm", profile.HeightCm, "weight_kg", entry.WeightKg)

	fmt.Printf("%sSaved%s\n", colorGreen, colorReset)
	fmt.Printf("  Weight:   %s\n", w)
	fmt.Printf("  Height:   %s\n", hs.Summary())
	fmt.Printf("  Birthday: %s (age %d)\n", bs.Date(), bs.Date().Age(now()))
	return nil
}

// latestWeight returns the newest logged weight in the display unit, or the
// unit's default when nothing has been logged.
func latestWeight(ctx context.Context, store storage.Store, units measure.UnitSystem) (measure.Weight, error) {
	wu := units.WeightUnit()
	latest, err := store.LatestWeight(ctx)
	if errors.Is(err, storage.ErrWeightNotFound) {
		return measure.DefaultWeight(wu), nil
	}
	if err != nil {
		return measure.Weight{}, err
	}
	return measure.Weight{Value: latest.WeightKg, Unit: measure.Kilograms}.In(wu), nil
}
