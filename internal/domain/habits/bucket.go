package habits

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/events"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/optimistic"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// clockTimeLayout renders log times the way they are shown in the UI.
const clockTimeLayout = "3:04 PM"

// EventPublisher receives best-effort notifications after successful writes.
// A nil publisher disables them.
type EventPublisher interface {
	PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error
}

// BucketStore manages the weekly buckets of one collection. It keeps an
// in-memory mirror of every bucket it has touched and applies writes
// optimistically: the mirror mutates first, the document store persists
// second, and a failed persist re-fetches the canonical copy so the mirror
// never drifts.
//
// All public methods are safe for concurrent use; the mirror is guarded by a
// single mutex per store instance.
type BucketStore struct {
	store      ports.DocumentStore
	clock      weekcal.Clock
	log        *logger.Logger
	publisher  EventPublisher
	collection string
	habitID    string
	goal       float64

	mu     sync.Mutex
	mirror map[string]*WeekBucket
}

// NewBucketStore builds a store for one collection. habitID may be empty for
// collections keyed only by user and week (water logs).
func NewBucketStore(store ports.DocumentStore, clock weekcal.Clock, log *logger.Logger, publisher EventPublisher, collection, habitID string, goal float64) *BucketStore {
	return &BucketStore{
		store:      store,
		clock:      clock,
		log:        log,
		publisher:  publisher,
		collection: collection,
		habitID:    habitID,
		goal:       goal,
		mirror:     make(map[string]*WeekBucket),
	}
}

// Key returns the document key for a user and week id.
func (s *BucketStore) Key(userID, weekID string) string {
	if s.habitID == "" {
		return fmt.Sprintf("%s_%s", userID, weekID)
	}
	return fmt.Sprintf("%s_%s_%s", userID, s.habitID, weekID)
}

// Fetch returns the current week's bucket for the user, creating a fresh one
// in the document store on first access. Repeated calls within the same week
// return the same document.
func (s *BucketStore) Fetch(ctx context.Context, userID string) (*WeekBucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.fetchLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

func (s *BucketStore) fetchLocked(ctx context.Context, userID string) (*WeekBucket, error) {
	weekID := weekcal.WeekID(s.clock.Now())
	key := s.Key(userID, weekID)

	if b, ok := s.mirror[key]; ok {
		return b, nil
	}

	var b WeekBucket
	err := s.store.Get(ctx, s.collection, key, &b)
	if err == nil {
		s.mirror[key] = &b
		return &b, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}

	fresh := NewWeekBucket(userID, s.habitID, weekID, s.goal)
	created, err := s.store.SetIfAbsent(ctx, s.collection, key, fresh)
	if err != nil {
		return nil, err
	}
	if !created {
		// Another writer won the race; take their copy.
		if err := s.store.Get(ctx, s.collection, key, &b); err != nil {
			return nil, err
		}
		s.mirror[key] = &b
		return &b, nil
	}

	s.log.Info("created weekly bucket",
		zap.String("collection", s.collection),
		zap.String("key", key))
	s.mirror[key] = fresh
	return fresh, nil
}

// FetchPrevious returns last week's bucket, or nil when the user has no
// record for that week. It never creates a document.
func (s *BucketStore) FetchPrevious(ctx context.Context, userID string) (*WeekBucket, error) {
	weekID := weekcal.PreviousWeekID(s.clock.Now())
	return s.FetchWeek(ctx, userID, weekID)
}

// FetchWeek returns the bucket for an arbitrary week id, or nil when absent.
// Like FetchPrevious it is a read-only lookup.
func (s *BucketStore) FetchWeek(ctx context.Context, userID, weekID string) (*WeekBucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.Key(userID, weekID)
	if b, ok := s.mirror[key]; ok {
		return b.Clone(), nil
	}

	var b WeekBucket
	err := s.store.Get(ctx, s.collection, key, &b)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// AddLog appends a log entry to today's record and persists the whole days
// field. The entry's amount must be positive; the bucket returned reflects
// the state after the write (or after reconciliation when the write failed).
func (s *BucketStore) AddLog(ctx context.Context, userID, name string, amount float64, unit string) (*WeekBucket, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.fetchLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rec := b.DayRecordFor(weekcal.DayName(now))
	if rec == nil {
		return nil, fmt.Errorf("bucket %s has no record for %s", b.WeekID, weekcal.DayName(now))
	}

	entry := LogEntry{
		ID:        uuid.NewString(),
		Name:      name,
		Time:      now.Format(clockTimeLayout),
		Amount:    amount,
		Unit:      unit,
		Timestamp: now.UnixMilli(),
	}

	key := s.Key(userID, b.WeekID)
	err = optimistic.Apply(
		func() {
			rec.Logs = append([]LogEntry{entry}, rec.Logs...)
			rec.Total += amount
		},
		func() error {
			return s.store.UpdateField(ctx, s.collection, key, "days", b.Days)
		},
		func() error {
			return s.reconcileLocked(ctx, key)
		},
	)
	if err != nil {
		s.log.Error("log write failed, mirror reconciled",
			zap.String("collection", s.collection),
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}

	s.publish(ctx, userID, entry.ID)
	return s.mirror[key].Clone(), nil
}

// DeleteLog removes one of today's log entries and lowers the day total,
// which never goes below zero. Entries from earlier days cannot be removed.
func (s *BucketStore) DeleteLog(ctx context.Context, userID, logID string) (*WeekBucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.fetchLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := b.DayRecordFor(weekcal.DayName(s.clock.Now()))
	if rec == nil {
		return nil, ErrLogNotFound
	}

	idx := -1
	for i, l := range rec.Logs {
		if l.ID == logID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrLogNotFound
	}
	removed := rec.Logs[idx]

	key := s.Key(userID, b.WeekID)
	err = optimistic.Apply(
		func() {
			rec.Logs = append(rec.Logs[:idx], rec.Logs[idx+1:]...)
			rec.Total = math.Max(0, rec.Total-removed.Amount)
		},
		func() error {
			return s.store.UpdateField(ctx, s.collection, key, "days", b.Days)
		},
		func() error {
			return s.reconcileLocked(ctx, key)
		},
	)
	if err != nil {
		s.log.Error("log delete failed, mirror reconciled",
			zap.String("collection", s.collection),
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}

	s.publish(ctx, userID, logID)
	return s.mirror[key].Clone(), nil
}

// reconcileLocked drops the mirrored copy and reloads the canonical document.
// A missing document simply leaves the mirror empty.
func (s *BucketStore) reconcileLocked(ctx context.Context, key string) error {
	delete(s.mirror, key)

	var b WeekBucket
	err := s.store.Get(ctx, s.collection, key, &b)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mirror[key] = &b
	return nil
}

func (s *BucketStore) publish(ctx context.Context, userID, entityID string) {
	if s.publisher == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: events.DashboardEventMetricsUpdate,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: s.clock.Now(),
		Details:   map[string]string{"collection": s.collection, "habit": s.habitID},
	}
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.log.Warn("dashboard event publish failed",
			zap.String("collection", s.collection),
			zap.Error(err))
	}
}
