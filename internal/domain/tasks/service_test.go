package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/docstore"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
)

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

func newTestService(t *testing.T) (Service, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory()
	clock := &fixedClock{t: time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)}
	log := &logger.Logger{Logger: zap.NewNop()}
	return NewService(store, clock, log), store
}

func TestCreateAssignsIncreasingOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "user-1", "Write report", PriorityHigh, "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "user-1", "Buy groceries", "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, a.Order)
	assert.Equal(t, 2, b.Order)
	assert.Equal(t, PriorityMedium, b.Priority)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.Completed)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", "", PriorityLow, "")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Create(ctx, "user-1", "Stretch", "urgent", "")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestListReturnsOnlyOwnTasksInOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", "First", PriorityLow, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-1", "Second", PriorityLow, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", "Other user", PriorityLow, "")
	require.NoError(t, err)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)
}

func TestToggleCompleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", "Meditate", PriorityLow, "")
	require.NoError(t, err)

	toggled, err := svc.ToggleCompleted(ctx, "user-1", task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.ToggleCompleted(ctx, "user-1", task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestUpdateFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", "Draft email", PriorityLow, "")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-1", task.ID, "Send email", PriorityHigh, "")
	require.NoError(t, err)
	assert.Equal(t, "Send email", updated.Title)
	assert.Equal(t, PriorityHigh, updated.Priority)

	_, err = svc.Update(ctx, "user-1", task.ID, "", "whenever", "")
	assert.ErrorIs(t, err, ErrInvalidPriority)

	_, err = svc.Update(ctx, "user-1", "missing", "X", "", "")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDueDatePersists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", "File taxes", PriorityHigh, "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", task.DueDate)

	got, err := svc.Get(ctx, "user-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", got.DueDate)

	// Updating other fields leaves the deadline alone; a new date replaces it.
	updated, err := svc.Update(ctx, "user-1", task.ID, "File taxes early", "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", updated.DueDate)

	updated, err = svc.Update(ctx, "user-1", task.ID, "", "", "2024-07-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-15", updated.DueDate)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", "Tidy desk", PriorityLow, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1", task.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "user-1", task.ID), ErrTaskNotFound)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReorderRewritesPositions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "user-1", "A", PriorityLow, "")
	b, _ := svc.Create(ctx, "user-1", "B", PriorityLow, "")
	c, _ := svc.Create(ctx, "user-1", "C", PriorityLow, "")

	list, err := svc.Reorder(ctx, "user-1", []string{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0].Title)
	assert.Equal(t, "A", list[1].Title)
	assert.Equal(t, "B", list[2].Title)

	// Positions were persisted, not just returned.
	list, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].Order, list[1].Order, list[2].Order})
	assert.Equal(t, "C", list[0].Title)
}

func TestReorderRejectsIncompleteOrUnknownIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "user-1", "A", PriorityLow, "")
	_, err := svc.Create(ctx, "user-1", "B", PriorityLow, "")
	require.NoError(t, err)

	_, err = svc.Reorder(ctx, "user-1", []string{a.ID})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.Reorder(ctx, "user-1", []string{a.ID, "ghost"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestReorderIsAtomic(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "user-1", "A", PriorityLow, "")
	b, _ := svc.Create(ctx, "user-1", "B", PriorityLow, "")

	store.FailNextWrite(errors.New("connection reset"))
	_, err := svc.Reorder(ctx, "user-1", []string{b.ID, a.ID})
	require.Error(t, err)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "A", list[0].Title)
	assert.Equal(t, "B", list[1].Title)
}
