package habits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// friday June 14 2024 falls in week 2024-W24.
var friday = time.Date(2024, time.June, 14, 18, 30, 0, 0, time.UTC)

func bucketWithTotals(totals map[weekcal.Day]float64, goal float64) *WeekBucket {
	b := NewWeekBucket("user-1", "meditation", "2024-W24", goal)
	for day, total := range totals {
		b.DayRecordFor(day).Total = total
	}
	return b
}

func TestStreakBreaksOnGapBeforeToday(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Monday:   15,
		weekcal.Tuesday:  20,
		weekcal.Thursday: 15,
		weekcal.Friday:   30,
	}, 15)

	// Wednesday was missed, so only Thursday and Friday count.
	assert.Equal(t, 2, Streak(b, friday))
}

func TestStreakSkipsUnmetToday(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Monday:    15,
		weekcal.Tuesday:   15,
		weekcal.Wednesday: 15,
		weekcal.Thursday:  15,
		weekcal.Friday:    5,
	}, 15)

	// Friday is still in progress; the run through Thursday stands.
	assert.Equal(t, 4, Streak(b, friday))
}

func TestStreakCountsMetToday(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Thursday: 15,
		weekcal.Friday:   15,
	}, 15)

	assert.Equal(t, 2, Streak(b, friday))
}

func TestStreakEmptyWeek(t *testing.T) {
	b := NewWeekBucket("user-1", "meditation", "2024-W24", 15)
	assert.Equal(t, 0, Streak(b, friday))
}

func TestStreakFullWeekOnSunday(t *testing.T) {
	totals := map[weekcal.Day]float64{}
	for _, d := range weekcal.MondayFirst {
		totals[d] = 15
	}
	b := bucketWithTotals(totals, 15)

	sunday := time.Date(2024, time.June, 16, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, Streak(b, sunday))
}

func TestStreakZeroGoalNeverMet(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Thursday: 100,
		weekcal.Friday:   100,
	}, 0)

	assert.Equal(t, 0, Streak(b, friday))
}

func TestStandingsOrderAndMet(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Monday: 15,
		weekcal.Friday: 7,
	}, 15)

	standings := Standings(b)
	assert.Len(t, standings, 7)
	assert.Equal(t, weekcal.Monday, standings[0].Day)
	assert.Equal(t, weekcal.Sunday, standings[6].Day)
	assert.True(t, standings[0].Met)
	assert.False(t, standings[4].Met)
}
