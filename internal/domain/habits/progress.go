package habits

import (
	"math"

	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// DayCompletion is the per-day slice of a weekly completion chart.
type DayCompletion struct {
	Day       weekcal.Day `json:"day"`
	Completed bool        `json:"completed"`
	Percent   int         `json:"percent"`
}

// ProgressPercent converts a total against a goal to a whole percentage,
// clamped to [0, 100]. A non-positive goal always reads as 0 so an
// unconfigured day never shows as complete.
func ProgressPercent(total, goal float64) int {
	if goal <= 0 {
		return 0
	}
	pct := int(math.Round(total / goal * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Remaining reports how much is left until the goal, never negative.
func Remaining(total, goal float64) float64 {
	if r := goal - total; r > 0 {
		return r
	}
	return 0
}

// WeeklyTotal sums every day's total across the bucket.
func WeeklyTotal(b *WeekBucket) float64 {
	var sum float64
	for _, d := range b.Days {
		sum += d.Total
	}
	return sum
}

// WeeklyCompletion builds the Monday-first completion chart for the bucket.
func WeeklyCompletion(b *WeekBucket) []DayCompletion {
	out := make([]DayCompletion, 0, len(b.Days))
	for _, d := range b.Days {
		out = append(out, DayCompletion{
			Day:       d.Day,
			Completed: d.Goal > 0 && d.Total >= d.Goal,
			Percent:   ProgressPercent(d.Total, d.Goal),
		})
	}
	return out
}

// WeeklyGoalPercent reports the bucket's whole-week total against a weekly
// target, clamped the same way as the daily percentage.
func WeeklyGoalPercent(b *WeekBucket, weeklyGoal float64) int {
	return ProgressPercent(WeeklyTotal(b), weeklyGoal)
}
