package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// Collection is where task documents are stored, one per task, keyed
// "{userId}_{taskId}" so a prefix scan lists one user's tasks.
const Collection = "tasks"

// Service manages the user's to-do list.
type Service interface {
	Create(ctx context.Context, userID, title, priority, dueDate string) (*Task, error)
	List(ctx context.Context, userID string) ([]Task, error)
	Get(ctx context.Context, userID, taskID string) (*Task, error)
	Update(ctx context.Context, userID, taskID, title, priority, dueDate string) (*Task, error)
	ToggleCompleted(ctx context.Context, userID, taskID string) (*Task, error)
	Delete(ctx context.Context, userID, taskID string) error

	// Reorder rewrites every listed task's position in one atomic batch. The
	// id list must name the user's tasks exactly once each.
	Reorder(ctx context.Context, userID string, orderedIDs []string) ([]Task, error)
}

type service struct {
	store ports.DocumentStore
	clock weekcal.Clock
	log   *logger.Logger
}

func NewService(store ports.DocumentStore, clock weekcal.Clock, log *logger.Logger) Service {
	return &service{store: store, clock: clock, log: log}
}

func docKey(userID, taskID string) string {
	return fmt.Sprintf("%s_%s", userID, taskID)
}

func (s *service) Create(ctx context.Context, userID, title, priority, dueDate string) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	existing, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	maxOrder := 0
	for _, t := range existing {
		if t.Order > maxOrder {
			maxOrder = t.Order
		}
	}

	now := s.clock.Now().UnixMilli()
	task := &Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Priority:  priority,
		DueDate:   dueDate,
		Order:     maxOrder + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Set(ctx, Collection, docKey(userID, task.ID), task); err != nil {
		return nil, err
	}
	s.log.Info("task created", zap.String("user_id", userID), zap.String("task_id", task.ID))
	return task, nil
}

func (s *service) List(ctx context.Context, userID string) ([]Task, error) {
	var out []Task
	err := s.store.List(ctx, Collection, userID+"_", func(raw []byte) error {
		var t Task
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, taskID string) (*Task, error) {
	var t Task
	err := s.store.Get(ctx, Collection, docKey(userID, taskID), &t)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *service) Update(ctx context.Context, userID, taskID, title, priority, dueDate string) (*Task, error) {
	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if title != "" {
		t.Title = title
	}
	if priority != "" {
		if !ValidPriority(priority) {
			return nil, ErrInvalidPriority
		}
		t.Priority = priority
	}
	if dueDate != "" {
		t.DueDate = dueDate
	}
	t.UpdatedAt = s.clock.Now().UnixMilli()

	if err := s.store.Set(ctx, Collection, docKey(userID, taskID), t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) ToggleCompleted(ctx context.Context, userID, taskID string) (*Task, error) {
	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	t.UpdatedAt = s.clock.Now().UnixMilli()

	if err := s.store.Set(ctx, Collection, docKey(userID, taskID), t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, userID, taskID string) error {
	err := s.store.Delete(ctx, Collection, docKey(userID, taskID))
	if errors.Is(err, ports.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func (s *service) Reorder(ctx context.Context, userID string, orderedIDs []string) ([]Task, error) {
	existing, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*Task, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	if len(orderedIDs) != len(existing) {
		return nil, fmt.Errorf("%w: order must list all %d tasks", ErrTaskNotFound, len(existing))
	}
	seen := make(map[string]bool, len(orderedIDs))
	updates := make([]ports.FieldUpdate, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		t, ok := byID[id]
		if !ok || seen[id] {
			return nil, ErrTaskNotFound
		}
		seen[id] = true
		t.Order = i + 1
		updates = append(updates, ports.FieldUpdate{
			Key:   docKey(userID, id),
			Field: "order",
			Value: i + 1,
		})
	}

	if err := s.store.BatchUpdateField(ctx, Collection, updates); err != nil {
		return nil, err
	}
	sort.SliceStable(existing, func(i, j int) bool { return existing[i].Order < existing[j].Order })
	return existing, nil
}
