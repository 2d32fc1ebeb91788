package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	m := NewMemory()
	var out record
	err := m.Get(context.Background(), "c", "k", &out)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSetIfAbsentReportsWinner(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.SetIfAbsent(ctx, "c", "k", record{Name: "first"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = m.SetIfAbsent(ctx, "c", "k", record{Name: "second"})
	require.NoError(t, err)
	assert.False(t, created)

	var out record
	require.NoError(t, m.Get(ctx, "c", "k", &out))
	assert.Equal(t, "first", out.Name)
}

func TestUpdateFieldOverwritesOneField(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "c", "k", record{Name: "keep", Count: 1}))
	require.NoError(t, m.UpdateField(ctx, "c", "k", "count", 9))

	var out record
	require.NoError(t, m.Get(ctx, "c", "k", &out))
	assert.Equal(t, "keep", out.Name)
	assert.Equal(t, 9, out.Count)

	err := m.UpdateField(ctx, "c", "missing", "count", 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestBatchUpdateFieldIsAllOrNothing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "c", "a", record{Count: 1}))
	require.NoError(t, m.Set(ctx, "c", "b", record{Count: 2}))

	err := m.BatchUpdateField(ctx, "c", []ports.FieldUpdate{
		{Key: "a", Field: "count", Value: 10},
		{Key: "missing", Field: "count", Value: 20},
	})
	assert.ErrorIs(t, err, ports.ErrNotFound)

	var out record
	require.NoError(t, m.Get(ctx, "c", "a", &out))
	assert.Equal(t, 1, out.Count)

	require.NoError(t, m.BatchUpdateField(ctx, "c", []ports.FieldUpdate{
		{Key: "a", Field: "count", Value: 10},
		{Key: "b", Field: "count", Value: 20},
	}))
	require.NoError(t, m.Get(ctx, "c", "b", &out))
	assert.Equal(t, 20, out.Count)
}

func TestListStreamsByPrefixInKeyOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "c", "u1_b", record{Name: "b"}))
	require.NoError(t, m.Set(ctx, "c", "u1_a", record{Name: "a"}))
	require.NoError(t, m.Set(ctx, "c", "u2_c", record{Name: "other"}))

	var names []string
	err := m.List(ctx, "c", "u1_", func(raw []byte) error {
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		names = append(names, r.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestFailNextWriteAffectsOnlyOneCall(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.FailNextWrite(errors.New("boom"))
	err := m.Set(ctx, "c", "k", record{})
	require.Error(t, err)

	require.NoError(t, m.Set(ctx, "c", "k", record{Name: "ok"}))
}

func TestDeleteMissing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "c", "k", record{}))
	require.NoError(t, m.Delete(ctx, "c", "k"))
	assert.ErrorIs(t, m.Delete(ctx, "c", "k"), ports.ErrNotFound)
}
