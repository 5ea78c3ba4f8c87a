package measure

import (
	"fmt"
	"strconv"

	"github.com/runger/fitwheel/internal/wheel"
)

// WeightUnit is kg or lb.
type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lb"
)

// ParseWeightUnit accepts "kg" or "lb".
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch WeightUnit(s) {
	case Kilograms, Pounds:
		return WeightUnit(s), nil
	default:
		return "", fmt.Errorf("weight unit %q: %w", s, ErrUnknownUnit)
	}
}

// Limits is an inclusive whole-number range.
type Limits struct {
	Min, Max int
}

// WeightLimits are the whole-unit bounds of the integer weight column.
var WeightLimits = map[WeightUnit]Limits{
	Kilograms: {Min: 20, Max: 250},
	Pounds:    {Min: 45, Max: 550},
}

// Weight is a body weight with one decimal of precision.
type Weight struct {
	Value float64
	Unit  WeightUnit
}

// String formats the weight as "72.5 kg".
func (w Weight) String() string {
	return strconv.FormatFloat(roundTenth(w.Value), 'f', 1, 64) + " " + string(w.Unit)
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	if w.Unit == Pounds {
		return w.Value * KgPerLb
	}
	return w.Value
}

// In converts the weight to unit u, rounded to a tenth.
func (w Weight) In(u WeightUnit) Weight {
	if u == w.Unit {
		return Weight{Value: roundTenth(w.Value), Unit: u}
	}
	kg := w.Kg()
	if u == Pounds {
		return Weight{Value: roundTenth(kg / KgPerLb), Unit: Pounds}
	}
	return Weight{Value: roundTenth(kg), Unit: Kilograms}
}

// Split returns the integer and tenth columns for w, clamped to the unit's
// limits.
func (w Weight) Split() (whole, tenth int) {
	lim := WeightLimits[w.Unit]
	tenths := int(roundTenth(w.Value)*10 + 0.5)
	whole, tenth = tenths/10, tenths%10
	if whole < lim.Min {
		return lim.Min, 0
	}
	if whole > lim.Max {
		return lim.Max, 0
	}
	return whole, tenth
}

// CombineWeight joins the two column values into a weight.
func CombineWeight(whole, tenth int, u WeightUnit) Weight {
	return Weight{Value: float64(whole) + float64(tenth)/10, Unit: u}
}

// DefaultWeight is the starting selection when nothing has been recorded.
func DefaultWeight(u WeightUnit) Weight {
	return Weight{Value: float64(WeightLimits[u].Min), Unit: u}
}

// WeightColumns returns the integer column for unit u and the shared tenth
// column.
func WeightColumns(u WeightUnit) (whole, tenth []wheel.Item[int]) {
	lim := WeightLimits[u]
	return wheel.Range(lim.Min, lim.Max, 1, strconv.Itoa), wheel.Range(0, 9, 1, strconv.Itoa)
}
