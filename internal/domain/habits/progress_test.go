package habits

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		goal  float64
		want  int
	}{
		{"zero total", 0, 15, 0},
		{"half way", 7.5, 15, 50},
		{"exactly met", 15, 15, 100},
		{"overshoot clamps", 45, 15, 100},
		{"rounds to nearest", 10, 15, 67},
		{"zero goal reads zero", 100, 0, 0},
		{"negative goal reads zero", 100, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercent(tt.total, tt.goal))
		})
	}
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 10.0, Remaining(5, 15))
	assert.Zero(t, Remaining(20, 15))
	assert.Zero(t, Remaining(15, 15))
}

func TestWeeklyTotal(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Monday:    1.5,
		weekcal.Wednesday: 2,
		weekcal.Saturday:  0.5,
	}, 1)

	assert.InDelta(t, 4.0, WeeklyTotal(b), 1e-9)
}

func TestWeeklyCompletionChart(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Monday:  15,
		weekcal.Tuesday: 5,
	}, 15)

	chart := WeeklyCompletion(b)
	assert.Len(t, chart, 7)
	assert.True(t, chart[0].Completed)
	assert.Equal(t, 100, chart[0].Percent)
	assert.False(t, chart[1].Completed)
	assert.Equal(t, 33, chart[1].Percent)
	assert.Equal(t, 0, chart[6].Percent)
}

func TestWeeklyGoalPercent(t *testing.T) {
	b := bucketWithTotals(map[weekcal.Day]float64{
		weekcal.Monday:   2,
		weekcal.Thursday: 1,
	}, 1)

	assert.Equal(t, 60, WeeklyGoalPercent(b, 5))
	assert.Equal(t, 0, WeeklyGoalPercent(b, 0))
}
