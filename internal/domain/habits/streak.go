package habits

import (
	"time"

	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// DayStanding is one day's goal standing inside the current week.
type DayStanding struct {
	Day   weekcal.Day `json:"day"`
	Met   bool        `json:"met"`
	Total float64     `json:"total"`
	Goal  float64     `json:"goal"`
}

// Standings reports, for every day of the bucket in Monday-first order,
// whether the day's total reached its goal.
func Standings(b *WeekBucket) []DayStanding {
	out := make([]DayStanding, 0, len(b.Days))
	for _, d := range b.Days {
		out = append(out, DayStanding{
			Day:   d.Day,
			Met:   d.Goal > 0 && d.Total >= d.Goal,
			Total: d.Total,
			Goal:  d.Goal,
		})
	}
	return out
}

// Streak counts consecutive met days ending at now's weekday, walking
// backwards through the bucket. Today is counted when met but never breaks
// the run while it is still in progress; any earlier unmet day ends the
// count. The result is bounded by the current week, so it never exceeds 7.
func Streak(b *WeekBucket, now time.Time) int {
	today := weekcal.DayIndex(weekcal.DayName(now))
	if today < 0 || len(b.Days) != len(weekcal.MondayFirst) {
		return 0
	}

	streak := 0
	for i := today; i >= 0; i-- {
		d := b.Days[i]
		met := d.Goal > 0 && d.Total >= d.Goal
		if met {
			streak++
			continue
		}
		if i == today {
			// The day is not over yet; an unmet today is skipped, not broken.
			continue
		}
		break
	}
	return streak
}
