package measure

import (
	"strconv"
	"time"

	"github.com/runger/fitwheel/internal/wheel"
)

// Year bounds of the birthday picker.
var YearLimits = Limits{Min: 1920, Max: 2017}

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DefaultBirthday is the starting selection of the birthday picker.
var DefaultBirthday = Date{Year: 1998, Month: time.January, Day: 1}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as 2006-01-02.
func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

// Clamp moves the year into YearLimits and the day into the month.
func (d Date) Clamp() Date {
	d.Year = clampInt(d.Year, YearLimits.Min, YearLimits.Max)
	d.Month = time.Month(clampInt(int(d.Month), 1, 12))
	d.Day = clampInt(d.Day, 1, DaysIn(d.Year, d.Month))
	return d
}

// Age returns completed years at now.
func (d Date) Age(now time.Time) int {
	y, m, day := now.Date()
	age := y - d.Year
	if m < d.Month || (m == d.Month && day < d.Day) {
		age--
	}
	return age
}

// DaysIn returns the number of days in month m of year y.
func DaysIn(y int, m time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayItems lists the days of month m in year y.
func DayItems(y int, m time.Month) []wheel.Item[int] {
	return wheel.Range(1, DaysIn(y, m), 1, strconv.Itoa)
}

// MonthItems lists the months with short names.
func MonthItems() []wheel.Item[int] {
	return wheel.Range(1, 12, 1, func(v int) string {
		return time.Month(v).String()[:3]
	})
}

// YearItems lists the selectable birth years.
func YearItems() []wheel.Item[int] {
	return wheel.Range(YearLimits.Min, YearLimits.Max, 1, strconv.Itoa)
}
