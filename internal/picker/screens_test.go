package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/fitwheel/internal/measure"
	"github.com/runger/fitwheel/internal/wheel"
)

// instantConfig settles every selection change synchronously.
func instantConfig() wheel.Config {
	cfg := wheel.DefaultConfig()
	cfg.DisableAnimations = true
	return cfg
}

func TestWeightScreen_SplitsInitialValue(t *testing.T) {
	s, err := NewWeightScreen("Weight", instantConfig(), measure.Metric, measure.Weight{Value: 72.5, Unit: measure.Kilograms}, nil)
	require.NoError(t, err)

	cols := s.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, 72, cols[0].Value())
	assert.Equal(t, 5, cols[1].Value())
	assert.Equal(t, "72.5 kg", s.Summary())
}

func TestWeightScreen_ConvertsInitialToDisplayUnit(t *testing.T) {
	s, err := NewWeightScreen("Weight", instantConfig(), measure.Imperial, measure.Weight{Value: 72.5, Unit: measure.Kilograms}, nil)
	require.NoError(t, err)
	assert.Equal(t, "159.8 lb", s.Summary())
	assert.Equal(t, "lb", s.Columns()[0].Title)
}

func TestWeightScreen_SetUnitsRoundTrip(t *testing.T) {
	s, err := NewWeightScreen("Weight", instantConfig(), measure.Metric, measure.Weight{Value: 72.5, Unit: measure.Kilograms}, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetUnits(measure.Imperial))
	assert.Equal(t, measure.Weight{Value: 159.8, Unit: measure.Pounds}, s.Weight())
	assert.Equal(t, 45, s.Columns()[0].Wheel().Registry().Items()[0].Value)

	require.NoError(t, s.SetUnits(measure.Metric))
	assert.Equal(t, "72.5 kg", s.Summary())

	// Same unit is a no-op.
	settles := s.Columns()[0].Settles()
	require.NoError(t, s.SetUnits(measure.Metric))
	assert.Equal(t, settles, s.Columns()[0].Settles())
}

func TestWeightScreen_ClampsOutOfRange(t *testing.T) {
	s, err := NewWeightScreen("Weight", instantConfig(), measure.Metric, measure.Weight{Value: 400, Unit: measure.Kilograms}, nil)
	require.NoError(t, err)
	assert.Equal(t, "250.0 kg", s.Summary())
}

func TestHeightScreen_ColumnsFollowUnit(t *testing.T) {
	s, err := NewHeightScreen("Height", instantConfig(), measure.Metric, measure.Height{Cm: 180}, nil)
	require.NoError(t, err)
	require.Len(t, s.Columns(), 1)
	assert.Equal(t, "180 cm", s.Summary())

	require.NoError(t, s.SetUnits(measure.Imperial))
	require.Len(t, s.Columns(), 2)
	assert.Equal(t, measure.FeetInches, s.Unit())
	assert.Equal(t, `5'11"`, s.Summary())

	require.NoError(t, s.SetUnits(measure.Metric))
	require.Len(t, s.Columns(), 1)
	assert.Equal(t, "180 cm", s.Summary())
}

func TestHeightScreen_StepInches(t *testing.T) {
	s, err := NewHeightScreen("Height", instantConfig(), measure.Imperial, measure.HeightFromFeetInches(5, 10), nil)
	require.NoError(t, err)
	s.Columns()[1].Step(1)
	assert.Equal(t, `5'11"`, s.Summary())
	// Inches stop at 11; feet do not roll over.
	s.Columns()[1].Step(1)
	assert.Equal(t, `5'11"`, s.Summary())
}

func TestBirthdayScreen_DayListFollowsMonth(t *testing.T) {
	s, err := NewBirthdayScreen("Birthday", instantConfig(), measure.Date{Year: 2001, Month: time.January, Day: 31}, nil)
	require.NoError(t, err)
	cols := s.Columns()
	day, month := cols[0], cols[1]
	assert.Equal(t, 31, day.Wheel().Registry().Size())

	month.Step(1) // February 2001
	assert.Equal(t, 28, day.Wheel().Registry().Size())
	assert.Equal(t, measure.Date{Year: 2001, Month: time.February, Day: 28}, s.Date())

	month.Step(1) // March keeps day 28
	assert.Equal(t, 31, day.Wheel().Registry().Size())
	assert.Equal(t, 28, day.Value())
}

func TestBirthdayScreen_LeapYear(t *testing.T) {
	s, err := NewBirthdayScreen("Birthday", instantConfig(), measure.Date{Year: 2000, Month: time.February, Day: 29}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2000-02-29", s.Summary())

	s.Columns()[2].Step(1) // 2001 has no Feb 29
	assert.Equal(t, "2001-02-28", s.Summary())
}

func TestBirthdayScreen_ClampsInitial(t *testing.T) {
	s, err := NewBirthdayScreen("Birthday", instantConfig(), measure.Date{Year: 1800, Month: time.April, Day: 31}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1920-04-30", s.Summary())
}

func TestListScreen_StartSelectsMatch(t *testing.T) {
	s, err := NewListScreen("Pick", []string{"alpha", "beta", "gamma"}, "beta", instantConfig(), nil)
	require.NoError(t, err)
	i, line, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "beta", line)
	assert.Equal(t, "beta", s.Summary())
}

func TestListScreen_DuplicatesStayDistinct(t *testing.T) {
	s, err := NewListScreen("Pick", []string{"x", "x", "y"}, "", instantConfig(), nil)
	require.NoError(t, err)
	s.Columns()[0].Step(1)
	i, _, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestListScreen_Empty(t *testing.T) {
	s, err := NewListScreen("Pick", nil, "", instantConfig(), nil)
	require.NoError(t, err)
	_, _, ok := s.Selected()
	assert.False(t, ok)
	assert.Empty(t, s.Summary())
}
