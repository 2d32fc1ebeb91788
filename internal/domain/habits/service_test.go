package habits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/events"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/docstore"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
)

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

type capturePublisher struct {
	published []*events.DashboardEvent
}

func (p *capturePublisher) PublishDashboardEvent(_ context.Context, e *events.DashboardEvent) error {
	p.published = append(p.published, e)
	return nil
}

func nopLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func newTestService(t *testing.T) (Service, *docstore.Memory, *fixedClock, *capturePublisher) {
	t.Helper()
	store := docstore.NewMemory()
	clock := &fixedClock{t: friday}
	pub := &capturePublisher{}
	return NewService(store, clock, pub, nopLogger()), store, clock, pub
}

func TestWeekCreatesBucketOnce(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Week(ctx, "user-1", "meditation")
	require.NoError(t, err)
	assert.Equal(t, "2024-W24", b.WeekID)
	assert.Equal(t, "meditation", b.HabitID)
	assert.Len(t, b.Days, 7)
	for _, d := range b.Days {
		assert.Zero(t, d.Total)
		assert.Empty(t, d.Logs)
		assert.Equal(t, 15.0, d.Goal)
	}

	// The document is persisted under the composite key.
	var stored WeekBucket
	require.NoError(t, store.Get(ctx, Collection, "user-1_meditation_2024-W24", &stored))
	assert.Equal(t, b.WeekID, stored.WeekID)

	again, err := svc.Week(ctx, "user-1", "meditation")
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestWeekUnknownMetric(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Week(context.Background(), "user-1", "juggling")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestAddLogKeepsTotalEqualToSum(t *testing.T) {
	svc, _, _, pub := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLog(ctx, "user-1", "running", "Morning Run", 2.5)
	require.NoError(t, err)
	b, err := svc.AddLog(ctx, "user-1", "running", "Evening Run", 1.5)
	require.NoError(t, err)

	today := b.DayRecordFor("Friday")
	require.NotNil(t, today)
	require.Len(t, today.Logs, 2)
	// Newest entry first.
	assert.Equal(t, "Evening Run", today.Logs[0].Name)
	assert.Equal(t, "km", today.Logs[0].Unit)
	assert.Equal(t, "6:30 PM", today.Logs[0].Time)

	var sum float64
	for _, l := range today.Logs {
		sum += l.Amount
	}
	assert.InDelta(t, sum, today.Total, 1e-9)
	assert.Len(t, pub.published, 2)
	assert.Equal(t, events.DashboardEventMetricsUpdate, pub.published[0].EventType)
}

func TestAddLogRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLog(ctx, "user-1", "work", "Deep Work", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.AddLog(ctx, "user-1", "work", "Deep Work", -30)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAddLogPersistsToStore(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLog(ctx, "user-1", "meditation", "Evening Sit", 20)
	require.NoError(t, err)

	var stored WeekBucket
	require.NoError(t, store.Get(ctx, Collection, "user-1_meditation_2024-W24", &stored))
	today := stored.DayRecordFor("Friday")
	require.NotNil(t, today)
	assert.Equal(t, 20.0, today.Total)
	require.Len(t, today.Logs, 1)
	assert.NotEmpty(t, today.Logs[0].ID)
	assert.Equal(t, friday.UnixMilli(), today.Logs[0].Timestamp)
}

func TestDeleteLogRemovesEntryAndLowersTotal(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.AddLog(ctx, "user-1", "meditation", "Morning Sit", 10)
	require.NoError(t, err)
	logID := b.DayRecordFor("Friday").Logs[0].ID

	b, err = svc.DeleteLog(ctx, "user-1", "meditation", logID)
	require.NoError(t, err)
	today := b.DayRecordFor("Friday")
	assert.Empty(t, today.Logs)
	assert.Zero(t, today.Total)
}

func TestDeleteLogUnknownID(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLog(ctx, "user-1", "meditation", "Morning Sit", 10)
	require.NoError(t, err)

	_, err = svc.DeleteLog(ctx, "user-1", "meditation", "no-such-log")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestPreviousWeekNeverCreates(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	prev, err := svc.PreviousWeek(ctx, "user-1", "meditation")
	require.NoError(t, err)
	assert.Nil(t, prev)

	var stored WeekBucket
	err = store.Get(ctx, Collection, "user-1_meditation_2024-W23", &stored)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPreviousWeekReturnsRecordedBucket(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	old := NewWeekBucket("user-1", "meditation", "2024-W23", 15)
	old.DayRecordFor("Tuesday").Total = 25
	require.NoError(t, store.Set(ctx, Collection, "user-1_meditation_2024-W23", old))

	prev, err := svc.PreviousWeek(ctx, "user-1", "meditation")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "2024-W23", prev.WeekID)
	assert.Equal(t, 25.0, prev.DayRecordFor("Tuesday").Total)
}

func TestFailedWriteReconcilesMirror(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Week(ctx, "user-1", "meditation")
	require.NoError(t, err)

	store.FailNextWrite(errors.New("connection reset"))
	_, err = svc.AddLog(ctx, "user-1", "meditation", "Morning Sit", 10)
	require.ErrorIs(t, err, ErrRemoteWrite)

	// The mirror was reset to the canonical copy; the failed entry is gone.
	b, err := svc.Week(ctx, "user-1", "meditation")
	require.NoError(t, err)
	today := b.DayRecordFor("Friday")
	assert.Empty(t, today.Logs)
	assert.Zero(t, today.Total)
}

func TestCurrentStreakThroughService(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	streak, err := svc.CurrentStreak(ctx, "user-1", "meditation")
	require.NoError(t, err)
	assert.Zero(t, streak)

	_, err = svc.AddLog(ctx, "user-1", "meditation", "Morning Sit", 15)
	require.NoError(t, err)

	streak, err = svc.CurrentStreak(ctx, "user-1", "meditation")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestWeeklySummary(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLog(ctx, "user-1", "running", "Morning Run", 2)
	require.NoError(t, err)
	_, err = svc.AddLog(ctx, "user-1", "running", "Evening Run", 1)
	require.NoError(t, err)

	summary, err := svc.WeeklySummary(ctx, "user-1", "running")
	require.NoError(t, err)
	assert.Equal(t, "running", summary.Metric.ID)
	assert.Equal(t, "2024-W24", summary.WeekID)
	assert.Equal(t, 3.0, summary.TodayTotal)
	assert.Equal(t, 100, summary.TodayPercent)
	assert.Equal(t, 3.0, summary.WeeklyTotal)
	assert.Equal(t, 60, summary.WeeklyPercent)
	assert.Equal(t, 1, summary.Streak)
	assert.Len(t, summary.Days, 7)
}

func TestServiceInstancesAreIndependent(t *testing.T) {
	store := docstore.NewMemory()
	clock := &fixedClock{t: friday}
	a := NewService(store, clock, nil, nopLogger())
	b := NewService(store, clock, nil, nopLogger())
	ctx := context.Background()

	_, err := a.AddLog(ctx, "user-1", "work", "Review", 60)
	require.NoError(t, err)

	// The second instance has no shared mirror but reads the same store.
	week, err := b.Week(ctx, "user-1", "work")
	require.NoError(t, err)
	assert.Equal(t, 60.0, week.DayRecordFor("Friday").Total)
}
