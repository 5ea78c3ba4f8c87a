package picker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/runger/fitwheel/internal/measure"
	"github.com/runger/fitwheel/internal/wheel"
)

// Screen is one page of pickers shown side by side. Columns settle
// independently; Summary combines their current values.
type Screen interface {
	Title() string
	Columns() []*Column
	Summary() string
	// SetUnits switches the displayed unit system, replacing item lists and
	// re-resolving each column to the converted value. Screens without
	// units ignore it.
	SetUnits(u measure.UnitSystem) error
}

// --- Weight ---

// WeightScreen picks a weight as an integer column and a tenths column.
type WeightScreen struct {
	title  string
	unit   measure.WeightUnit
	whole  *Column
	tenth  *Column
	cfg    wheel.Config
	logger *slog.Logger
}

// NewWeightScreen builds a weight picker showing initial converted to u.
func NewWeightScreen(title string, cfg wheel.Config, u measure.UnitSystem, initial measure.Weight, logger *slog.Logger) (*WeightScreen, error) {
	s := &WeightScreen{title: title, unit: u.WeightUnit(), cfg: cfg, logger: orDiscard(logger)}
	whole, tenth := initial.In(s.unit).Split()
	wholeItems, tenthItems := measure.WeightColumns(s.unit)

	var err error
	if s.whole, err = NewColumn(string(s.unit), wholeItems, cfg, whole, logger, nil); err != nil {
		return nil, fmt.Errorf("weight column: %w", err)
	}
	if s.tenth, err = NewColumn(".", tenthItems, cfg, tenth, logger, nil); err != nil {
		return nil, fmt.Errorf("weight tenths column: %w", err)
	}
	return s, nil
}

func (s *WeightScreen) Title() string      { return s.title }
func (s *WeightScreen) Columns() []*Column { return []*Column{s.whole, s.tenth} }
func (s *WeightScreen) Summary() string    { return s.Weight().String() }

// Weight combines the two columns.
func (s *WeightScreen) Weight() measure.Weight {
	return measure.CombineWeight(s.whole.Value(), s.tenth.Value(), s.unit)
}

// SetUnits converts the selection to u's weight unit.
func (s *WeightScreen) SetUnits(u measure.UnitSystem) error {
	next := u.WeightUnit()
	if next == s.unit {
		return nil
	}
	whole, tenth := s.Weight().In(next).Split()
	wholeItems, tenthItems := measure.WeightColumns(next)
	s.unit = next
	s.whole.Title = string(next)
	s.whole.Wheel().SetItemsValue(wholeItems, whole)
	s.tenth.Wheel().SetItemsValue(tenthItems, tenth)
	s.logger.Debug("weight units switched", "unit", string(next), "weight", s.Weight().String())
	return nil
}

// --- Height ---

// HeightScreen picks a height in cm, or in feet and inches.
type HeightScreen struct {
	title  string
	unit   measure.HeightUnit
	cols   []*Column
	cfg    wheel.Config
	logger *slog.Logger
}

// NewHeightScreen builds a height picker showing initial in u.
func NewHeightScreen(title string, cfg wheel.Config, u measure.UnitSystem, initial measure.Height, logger *slog.Logger) (*HeightScreen, error) {
	s := &HeightScreen{title: title, cfg: cfg, logger: orDiscard(logger)}
	if err := s.build(u.HeightUnit(), initial); err != nil {
		return nil, err
	}
	return s, nil
}

// build replaces the columns; the column count differs between units.
func (s *HeightScreen) build(u measure.HeightUnit, h measure.Height) error {
	titles := []string{"cm"}
	if u == measure.FeetInches {
		titles = []string{"ft", "in"}
	}
	values := measure.HeightValues(h, u)
	cols := make([]*Column, 0, len(titles))
	for i, items := range measure.HeightColumns(u) {
		c, err := NewColumn(titles[i], items, s.cfg, values[i], s.logger, nil)
		if err != nil {
			return fmt.Errorf("height column %s: %w", titles[i], err)
		}
		cols = append(cols, c)
	}
	s.unit = u
	s.cols = cols
	return nil
}

func (s *HeightScreen) Title() string      { return s.title }
func (s *HeightScreen) Columns() []*Column { return s.cols }
func (s *HeightScreen) Summary() string    { return s.Height().Format(s.unit) }

// Unit returns the displayed height unit.
func (s *HeightScreen) Unit() measure.HeightUnit {
	return s.unit
}

// Height combines the columns.
func (s *HeightScreen) Height() measure.Height {
	values := make([]int, len(s.cols))
	for i, c := range s.cols {
		values[i] = c.Value()
	}
	h, err := measure.HeightFromColumns(s.unit, values)
	if err != nil {
		return measure.DefaultHeight(s.unit)
	}
	return h
}

// SetUnits rebuilds the columns for u's height unit.
func (s *HeightScreen) SetUnits(u measure.UnitSystem) error {
	next := u.HeightUnit()
	if next == s.unit {
		return nil
	}
	h := s.Height()
	if err := s.build(next, h); err != nil {
		return err
	}
	s.logger.Debug("height units switched", "unit", string(next), "height", s.Summary())
	return nil
}

// --- Birthday ---

// BirthdayScreen picks day, month and year. The day list follows the
// selected month and year.
type BirthdayScreen struct {
	title  string
	day    *Column
	month  *Column
	year   *Column
	logger *slog.Logger
}

// NewBirthdayScreen builds a birthday picker starting at initial.
func NewBirthdayScreen(title string, cfg wheel.Config, initial measure.Date, logger *slog.Logger) (*BirthdayScreen, error) {
	logger = orDiscard(logger)
	d := initial.Clamp()
	s := &BirthdayScreen{title: title, logger: logger}

	var err error
	if s.day, err = NewColumn("Day", measure.DayItems(d.Year, d.Month), cfg, d.Day, logger, nil); err != nil {
		return nil, fmt.Errorf("day column: %w", err)
	}
	if s.month, err = NewColumn("Month", measure.MonthItems(), cfg, int(d.Month), logger, s.calendarChanged); err != nil {
		return nil, fmt.Errorf("month column: %w", err)
	}
	if s.year, err = NewColumn("Year", measure.YearItems(), cfg, d.Year, logger, s.calendarChanged); err != nil {
		return nil, fmt.Errorf("year column: %w", err)
	}
	return s, nil
}

// calendarChanged refreshes the day list after month or year settles.
func (s *BirthdayScreen) calendarChanged(int, int) {
	if s.day == nil || s.month == nil || s.year == nil {
		return // still constructing
	}
	y, m := s.year.Value(), time.Month(s.month.Value())
	n := measure.DaysIn(y, m)
	if s.day.Wheel().Registry().Size() == n {
		return
	}
	s.day.Wheel().SetItems(measure.DayItems(y, m))
	s.logger.Debug("day list resized", "year", y, "month", m.String(), "days", n)
}

func (s *BirthdayScreen) Title() string                     { return s.title }
func (s *BirthdayScreen) Columns() []*Column                { return []*Column{s.day, s.month, s.year} }
func (s *BirthdayScreen) Summary() string                   { return s.Date().String() }
func (s *BirthdayScreen) SetUnits(measure.UnitSystem) error { return nil }

// Date combines the columns.
func (s *BirthdayScreen) Date() measure.Date {
	return measure.Date{Year: s.year.Value(), Month: time.Month(s.month.Value()), Day: s.day.Value()}
}

// --- Free-form list ---

// ListScreen picks one line out of arbitrary text items. Column values are
// item indexes so duplicate lines stay distinct.
type ListScreen struct {
	title string
	items []string
	col   *Column
}

// NewListScreen builds a single-column picker. start selects the first item
// equal to it, if any.
func NewListScreen(title string, items []string, start string, cfg wheel.Config, logger *slog.Logger) (*ListScreen, error) {
	s := &ListScreen{title: title, items: items}
	wi := make([]wheel.Item[int], len(items))
	initial := 0
	found := false
	for i, line := range items {
		wi[i] = wheel.Item[int]{Value: i, Label: MiddleTruncate(line, maxLabelWidth)}
		if !found && start != "" && line == start {
			initial, found = i, true
		}
	}
	col, err := NewColumn(title, wi, cfg, initial, logger, nil)
	if err != nil {
		return nil, err
	}
	s.col = col
	return s, nil
}

// maxLabelWidth bounds list labels so one long line cannot widen the column
// past the terminal.
const maxLabelWidth = 60

func (s *ListScreen) Title() string                     { return s.title }
func (s *ListScreen) Columns() []*Column                { return []*Column{s.col} }
func (s *ListScreen) SetUnits(measure.UnitSystem) error { return nil }

func (s *ListScreen) Summary() string {
	_, line, ok := s.Selected()
	if !ok {
		return ""
	}
	return MiddleTruncate(line, maxLabelWidth)
}

// Selected returns the settled item's index and full text.
func (s *ListScreen) Selected() (int, string, bool) {
	i := s.col.Wheel().Index()
	if i < 0 || i >= len(s.items) {
		return -1, "", false
	}
	return i, s.items[i], true
}
