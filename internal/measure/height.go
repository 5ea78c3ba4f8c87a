package measure

import (
	"fmt"
	"math"
	"strconv"

	"github.com/runger/fitwheel/internal/wheel"
)

// HeightUnit is cm or ft (feet and inches).
type HeightUnit string

const (
	Centimeters HeightUnit = "cm"
	FeetInches  HeightUnit = "ft"
)

// Height column bounds.
var (
	CmLimits     = Limits{Min: 100, Max: 250}
	FeetLimits   = Limits{Min: 3, Max: 8}
	InchesLimits = Limits{Min: 0, Max: 11}
)

// Height is stored in centimeters regardless of the display unit.
type Height struct {
	Cm float64
}

// HeightFromFeetInches converts a feet and inches reading.
func HeightFromFeetInches(ft, in int) Height {
	return Height{Cm: float64(ft*InchesPerFt+in) * CmPerInch}
}

// Centimeters returns the whole-centimeter column value, clamped.
func (h Height) Centimeters() int {
	return clampInt(int(math.Round(h.Cm)), CmLimits.Min, CmLimits.Max)
}

// FeetInches returns the feet and inches column values, clamped.
func (h Height) FeetInches() (ft, in int) {
	total := int(math.Round(h.Cm / CmPerInch))
	ft, in = total/InchesPerFt, total%InchesPerFt
	switch {
	case ft < FeetLimits.Min:
		return FeetLimits.Min, InchesLimits.Min
	case ft > FeetLimits.Max:
		return FeetLimits.Max, InchesLimits.Max
	}
	return ft, in
}

// Format renders the height in unit u, e.g. "180 cm" or "5'11\"".
func (h Height) Format(u HeightUnit) string {
	if u == FeetInches {
		ft, in := h.FeetInches()
		return fmt.Sprintf("%d'%d\"", ft, in)
	}
	return fmt.Sprintf("%d cm", h.Centimeters())
}

// DefaultHeight is the starting selection when nothing has been recorded.
func DefaultHeight(u HeightUnit) Height {
	if u == FeetInches {
		return HeightFromFeetInches(FeetLimits.Min, 3)
	}
	return Height{Cm: float64(CmLimits.Min)}
}

// HeightColumns returns one column for cm, or feet and inches columns.
func HeightColumns(u HeightUnit) [][]wheel.Item[int] {
	if u == FeetInches {
		feet := wheel.Range(FeetLimits.Min, FeetLimits.Max, 1, func(v int) string {
			return strconv.Itoa(v) + "'"
		})
		inches := wheel.Range(InchesLimits.Min, InchesLimits.Max, 1, func(v int) string {
			return strconv.Itoa(v) + "\""
		})
		return [][]wheel.Item[int]{feet, inches}
	}
	return [][]wheel.Item[int]{wheel.Range(CmLimits.Min, CmLimits.Max, 1, strconv.Itoa)}
}

// HeightFromColumns combines column values produced by HeightColumns.
func HeightFromColumns(u HeightUnit, values []int) (Height, error) {
	switch {
	case u == Centimeters && len(values) == 1:
		return Height{Cm: float64(values[0])}, nil
	case u == FeetInches && len(values) == 2:
		return HeightFromFeetInches(values[0], values[1]), nil
	default:
		return Height{}, fmt.Errorf("height %s from %d columns: %w", u, len(values), ErrUnknownUnit)
	}
}

// HeightValues returns the column values selecting h in unit u.
func HeightValues(h Height, u HeightUnit) []int {
	if u == FeetInches {
		ft, in := h.FeetInches()
		return []int{ft, in}
	}
	return []int{h.Centimeters()}
}
