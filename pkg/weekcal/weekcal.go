package weekcal

import (
	"fmt"
	"time"
)

// Day is a canonical full English weekday name. All weekly bucket documents
// use these names as stable keys, never locale-dependent strings.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// MondayFirst is the fixed iteration order for the days of a weekly bucket.
// Every store normalizes to this order regardless of locale conventions.
var MondayFirst = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// sundayIndexed maps time.Weekday values (0 = Sunday) to canonical names.
var sundayIndexed = [7]Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Clock supplies the current time. Domain services take a Clock instead of
// calling time.Now directly so tests can pin "now" deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// WeekID returns the week identifier for t in "YYYY-Www" form, computed by
// day-of-year arithmetic with a Monday-start week. The id is stable for every
// instant of the same Monday..Sunday week and changes exactly at the Monday
// boundary.
func WeekID(t time.Time) string {
	year := t.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	// Days of the partial week before Jan 1, Monday-indexed.
	offset := (int(jan1.Weekday()) + 6) % 7
	week := (t.YearDay()-1+offset)/7 + 1
	return fmt.Sprintf("%d-W%02d", year, week)
}

// PreviousWeekID returns the WeekID of the week seven days before t.
func PreviousWeekID(t time.Time) string {
	return WeekID(t.AddDate(0, 0, -7))
}

// DayName returns the canonical weekday name for t.
func DayName(t time.Time) Day {
	return sundayIndexed[int(t.Weekday())]
}

// DayIndex returns the position of d in the Monday-first order, or -1 when d
// is not one of the seven canonical names.
func DayIndex(d Day) int {
	for i, day := range MondayFirst {
		if day == d {
			return i
		}
	}
	return -1
}

// MonthWeekIDs returns the ids of every week overlapping t's calendar month,
// in chronological order. Weeks straddling a month boundary are included once.
func MonthWeekIDs(t time.Time) []string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)

	// Back up to the Monday of the first overlapping week.
	start := first.AddDate(0, 0, -((int(first.Weekday()) + 6) % 7))

	var ids []string
	for cur := start; !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		ids = append(ids, WeekID(cur))
	}
	return ids
}
