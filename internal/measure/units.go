// Package measure builds the item lists behind the measurement pickers and
// converts values between the metric and imperial unit systems.
package measure

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownUnit is returned when a unit or unit system name is not recognized.
var ErrUnknownUnit = errors.New("unknown unit")

// UnitSystem selects the units every picker screen displays.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// ParseUnitSystem accepts "metric" or "imperial" in any case.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unit system %q: %w", s, ErrUnknownUnit)
	}
}

// Toggle returns the other unit system.
func (u UnitSystem) Toggle() UnitSystem {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// WeightUnit returns the weight unit shown under u.
func (u UnitSystem) WeightUnit() WeightUnit {
	if u == Imperial {
		return Pounds
	}
	return Kilograms
}

// HeightUnit returns the height unit shown under u.
func (u UnitSystem) HeightUnit() HeightUnit {
	if u == Imperial {
		return FeetInches
	}
	return Centimeters
}

// Conversion factors.
const (
	KgPerLb     = 0.45359237
	CmPerInch   = 2.54
	InchesPerFt = 12
)

// roundTenth rounds to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
