package measure

import (
	"slices"
	"time"
)

// Streak counts runs of consecutive logged days.
type Streak struct {
	// Active is the run ending on the most recent logged day.
	Active int
	// Longest is the longest run anywhere in the log.
	Longest int
}

// Streaks measures runs of consecutive calendar days in dates, given as
// YYYY-MM-DD in any order. Repeated days count once and unparsable dates are
// skipped.
func Streaks(dates []string) Streak {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(time.DateOnly, d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return Streak{}
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	days = slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })

	s := Streak{Active: 1, Longest: 1}
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			s.Active++
		} else {
			s.Active = 1
		}
		s.Longest = max(s.Longest, s.Active)
	}
	return s
}

// BMI returns weight over height squared in kg/m², rounded to a tenth. ok is
// false when the height is unknown.
func BMI(kg, cm float64) (bmi float64, ok bool) {
	if cm <= 0 || kg <= 0 {
		return 0, false
	}
	m := cm / 100
	return roundTenth(kg / (m * m)), true
}
