package water

import (
	"context"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/habits"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

const (
	// Collection is where hydration buckets are stored.
	Collection = "water_logs"

	// DefaultGoal is the daily hydration target in milliliters.
	DefaultGoal = 2500

	// Unit for every hydration log entry.
	Unit = "ml"
)

// quick-add presets matched by amount; anything else is a plain "Water" log.
const (
	smallCupAmount = 250
	glassAmount    = 500
)

// LabelFor names a hydration entry from its amount.
func LabelFor(amount float64) string {
	switch amount {
	case smallCupAmount:
		return "Small Cup"
	case glassAmount:
		return "Glass of Water"
	default:
		return "Water"
	}
}

// Service tracks daily water intake in weekly buckets keyed by user and week
// only; there is no per-habit dimension.
type Service interface {
	Week(ctx context.Context, userID string) (*habits.WeekBucket, error)
	PreviousWeek(ctx context.Context, userID string) (*habits.WeekBucket, error)

	// AddIntake records a drink against today. The label is derived from the
	// amount unless a custom name is given.
	AddIntake(ctx context.Context, userID, name string, amount float64) (*habits.WeekBucket, error)

	DeleteIntake(ctx context.Context, userID, logID string) (*habits.WeekBucket, error)

	// TodayProgress reports today's intake against the daily goal.
	TodayProgress(ctx context.Context, userID string) (total float64, percent int, err error)
}

type service struct {
	store *habits.BucketStore
	clock weekcal.Clock
}

func NewService(store ports.DocumentStore, clock weekcal.Clock, publisher habits.EventPublisher, log *logger.Logger) Service {
	return &service{
		store: habits.NewBucketStore(store, clock, log, publisher, Collection, "", DefaultGoal),
		clock: clock,
	}
}

func (s *service) Week(ctx context.Context, userID string) (*habits.WeekBucket, error) {
	return s.store.Fetch(ctx, userID)
}

func (s *service) PreviousWeek(ctx context.Context, userID string) (*habits.WeekBucket, error) {
	return s.store.FetchPrevious(ctx, userID)
}

func (s *service) AddIntake(ctx context.Context, userID, name string, amount float64) (*habits.WeekBucket, error) {
	if name == "" {
		name = LabelFor(amount)
	}
	return s.store.AddLog(ctx, userID, name, amount, Unit)
}

func (s *service) DeleteIntake(ctx context.Context, userID, logID string) (*habits.WeekBucket, error) {
	return s.store.DeleteLog(ctx, userID, logID)
}

func (s *service) TodayProgress(ctx context.Context, userID string) (float64, int, error) {
	b, err := s.store.Fetch(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	today := b.DayRecordFor(weekcal.DayName(s.clock.Now()))
	if today == nil {
		return 0, 0, nil
	}
	return today.Total, habits.ProgressPercent(today.Total, today.Goal), nil
}
