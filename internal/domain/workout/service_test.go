package workout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/docstore"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

// wednesday June 12 2024, week 2024-W24.
var wednesday = time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *docstore.Memory, *fixedClock) {
	t.Helper()
	store := docstore.NewMemory()
	clock := &fixedClock{t: wednesday}
	log := &logger.Logger{Logger: zap.NewNop()}
	return NewService(store, clock, nil, log), store, clock
}

// checkFirstN marks the first n exercises of the plan as completed, walking
// the days in order.
func checkFirstN(w *WorkoutWeek, n int) {
	for i := range w.Workouts {
		for _, e := range w.Workouts[i].Exercises {
			if n == 0 {
				return
			}
			w.toggle(e.ID)
			n--
		}
	}
}

func TestWeekCreatesDefaultPlan(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	w, err := svc.Week(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-W24", w.WeekID)
	assert.Empty(t, w.Completed)
	require.Len(t, w.Workouts, 7)

	var total int
	for i, d := range w.Workouts {
		assert.Equal(t, weekcal.MondayFirst[i], d.Day)
		for _, e := range d.Exercises {
			assert.NotEmpty(t, e.ID)
			assert.NotEmpty(t, e.Name)
			assert.NotEmpty(t, e.Sets)
			assert.NotEmpty(t, e.Reps)
		}
		total += len(d.Exercises)
	}
	assert.Equal(t, 28, total)

	var stored WorkoutWeek
	require.NoError(t, store.Get(ctx, Collection, "user-1_2024-W24", &stored))
	assert.Equal(t, "user-1", stored.UserID)
}

func TestToggleChecksAndUnchecks(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	w, err := svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-1")
	require.NoError(t, err)
	assert.True(t, w.IsCompleted("mon-1"))

	w, err = svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-1")
	require.NoError(t, err)
	assert.False(t, w.IsCompleted("mon-1"))
	assert.Empty(t, w.Completed)
}

func TestToggleKeepsCompletedSortedAndUnique(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-4")
	require.NoError(t, err)
	w, err := svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"mon-1", "mon-4"}, w.Completed)
}

func TestTogglePersistsCompletedSetWithCatalogIntact(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-1")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "user-1", weekcal.Tuesday, "tue-2")
	require.NoError(t, err)

	var stored WorkoutWeek
	require.NoError(t, store.Get(ctx, Collection, "user-1_2024-W24", &stored))
	assert.Equal(t, []string{"mon-1", "tue-2"}, stored.Completed)

	// The exercise catalog survives the field update untouched.
	require.Len(t, stored.Workouts, 7)
	mon := stored.DayFor(weekcal.Monday)
	require.NotNil(t, mon)
	assert.Equal(t, "Bench Press", mon.Exercises[0].Name)
	assert.Equal(t, "4", mon.Exercises[0].Sets)
}

func TestToggleUnknownExercise(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "user-1", weekcal.Monday, "juggling")
	assert.ErrorIs(t, err, ErrUnknownExercise)

	// A real exercise on the wrong day is just as unknown.
	_, err = svc.Toggle(ctx, "user-1", weekcal.Tuesday, "mon-1")
	assert.ErrorIs(t, err, ErrUnknownExercise)

	_, err = svc.Toggle(ctx, "user-1", "Caturday", "mon-1")
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func TestWeeklyProgressQuarterDone(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// 7 of 28 exercises: all of Monday plus three of Tuesday.
	for _, e := range DefaultPlan[0].Exercises {
		_, err := svc.Toggle(ctx, "user-1", weekcal.Monday, e.ID)
		require.NoError(t, err)
	}
	for _, e := range DefaultPlan[1].Exercises[:3] {
		_, err := svc.Toggle(ctx, "user-1", weekcal.Tuesday, e.ID)
		require.NoError(t, err)
	}

	pct, err := svc.WeeklyProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 25, pct)
}

func TestDailyProgressZeroesFutureDays(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-1")
	require.NoError(t, err)
	// Checked ahead of time; Thursday is after "today" (Wednesday).
	_, err = svc.Toggle(ctx, "user-1", weekcal.Thursday, "thu-4")
	require.NoError(t, err)

	chart, err := svc.DailyProgress(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, chart, 7)
	assert.Equal(t, 25, chart[0].Percent)
	assert.Equal(t, 1, chart[0].Done)
	assert.Zero(t, chart[3].Percent)
	assert.Zero(t, chart[3].Done)
	assert.Zero(t, chart[6].Percent)
}

func TestTodayWorkout(t *testing.T) {
	svc, _, _ := newTestService(t)

	today, err := svc.TodayWorkout(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, weekcal.Wednesday, today.Day)
	assert.Equal(t, "Legs", today.Focus)
	require.Len(t, today.Exercises, 4)
	assert.Equal(t, "Squat", today.Exercises[0].Name)
}

func TestResetWeekClearsCompleted(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-1")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "user-1", weekcal.Wednesday, "wed-1")
	require.NoError(t, err)

	w, err := svc.ResetWeek(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, w.Completed)

	var stored WorkoutWeek
	require.NoError(t, store.Get(ctx, Collection, "user-1_2024-W24", &stored))
	assert.Empty(t, stored.Completed)
}

func TestPreviousWeekNeverCreates(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	prev, err := svc.PreviousWeek(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, prev)

	var stored WorkoutWeek
	err = store.Get(ctx, Collection, "user-1_2024-W23", &stored)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMonthlyProgressSynthesizesMissingWeeks(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	// Two recorded past weeks at 25% each.
	for _, weekID := range []string{"2024-W22", "2024-W23"} {
		past := NewWorkoutWeek("user-1", weekID)
		checkFirstN(past, 7)
		require.NoError(t, store.Set(ctx, Collection, "user-1_"+weekID, past))
	}
	// Current week at 25%.
	for _, e := range DefaultPlan[0].Exercises {
		_, err := svc.Toggle(ctx, "user-1", weekcal.Monday, e.ID)
		require.NoError(t, err)
	}
	for _, e := range DefaultPlan[1].Exercises[:3] {
		_, err := svc.Toggle(ctx, "user-1", weekcal.Tuesday, e.ID)
		require.NoError(t, err)
	}

	report, err := svc.MonthlyProgress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", report.Month)
	// June 2024 overlaps weeks W22 through W26.
	require.Len(t, report.Weeks, 5)
	for i, want := range []int{7, 7, 7, 0, 0} {
		assert.Equal(t, want, report.Weeks[i].Done)
		assert.Equal(t, 28, report.Weeks[i].Total)
	}
	assert.Equal(t, 25, report.Weeks[0].Percent)
	assert.Zero(t, report.Weeks[4].Percent)

	// Grand total is the ratio of summed counts.
	assert.Equal(t, 21, report.Done)
	assert.Equal(t, 140, report.Total)
	assert.Equal(t, 15, report.Percent)

	// The synthesized empty weeks were not written back.
	var stored WorkoutWeek
	err = store.Get(ctx, Collection, "user-1_2024-W25", &stored)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestToggleWriteFailureReconciles(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Week(ctx, "user-1")
	require.NoError(t, err)

	store.FailNextWrite(errors.New("connection reset"))
	_, err = svc.Toggle(ctx, "user-1", weekcal.Monday, "mon-1")
	require.ErrorIs(t, err, ErrRemoteWrite)

	w, err := svc.Week(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, w.Completed)
}
