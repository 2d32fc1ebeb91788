package habits

import (
	"context"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// Collection is where habit buckets are stored.
const Collection = "habit_logs"

// Service exposes the tracked-metric operations. Every instance owns its own
// bucket mirrors; nothing here is process-global.
type Service interface {
	// Metrics lists the tracked metrics in registry order.
	Metrics() []Metric

	// Week returns the current week's bucket for a metric, creating it on
	// first access.
	Week(ctx context.Context, userID, metricID string) (*WeekBucket, error)

	// PreviousWeek returns last week's bucket, or nil when none was recorded.
	PreviousWeek(ctx context.Context, userID, metricID string) (*WeekBucket, error)

	// AddLog records an activity against today and returns the updated bucket.
	AddLog(ctx context.Context, userID, metricID, name string, amount float64) (*WeekBucket, error)

	// DeleteLog removes one of today's entries and returns the updated bucket.
	DeleteLog(ctx context.Context, userID, metricID, logID string) (*WeekBucket, error)

	// CurrentStreak reports the consecutive-met-days streak within this week.
	CurrentStreak(ctx context.Context, userID, metricID string) (int, error)

	// WeeklySummary reports progress figures for one metric's current week.
	WeeklySummary(ctx context.Context, userID, metricID string) (*WeeklySummary, error)
}

// WeeklySummary aggregates one metric's current week for dashboard views.
type WeeklySummary struct {
	Metric         Metric          `json:"metric"`
	WeekID         string          `json:"weekId"`
	Streak         int             `json:"streak"`
	TodayTotal     float64         `json:"todayTotal"`
	TodayPercent   int             `json:"todayPercent"`
	TodayRemaining float64         `json:"todayRemaining"`
	WeeklyTotal    float64         `json:"weeklyTotal"`
	WeeklyPercent  int             `json:"weeklyPercent,omitempty"`
	Days           []DayCompletion `json:"days"`
}

type service struct {
	stores map[string]*BucketStore
	clock  weekcal.Clock
	logger *logger.Logger
}

// NewService builds a service with one bucket store per registered metric.
func NewService(store ports.DocumentStore, clock weekcal.Clock, publisher EventPublisher, log *logger.Logger) Service {
	stores := make(map[string]*BucketStore, len(Metrics))
	for _, m := range Metrics {
		stores[m.ID] = NewBucketStore(store, clock, log, publisher, Collection, m.ID, m.DailyGoal)
	}
	return &service{
		stores: stores,
		clock:  clock,
		logger: log,
	}
}

func (s *service) Metrics() []Metric {
	out := make([]Metric, len(Metrics))
	copy(out, Metrics)
	return out
}

func (s *service) storeFor(metricID string) (*BucketStore, error) {
	st, ok := s.stores[metricID]
	if !ok {
		return nil, ErrUnknownMetric
	}
	return st, nil
}

func (s *service) Week(ctx context.Context, userID, metricID string) (*WeekBucket, error) {
	st, err := s.storeFor(metricID)
	if err != nil {
		return nil, err
	}
	return st.Fetch(ctx, userID)
}

func (s *service) PreviousWeek(ctx context.Context, userID, metricID string) (*WeekBucket, error) {
	st, err := s.storeFor(metricID)
	if err != nil {
		return nil, err
	}
	return st.FetchPrevious(ctx, userID)
}

func (s *service) AddLog(ctx context.Context, userID, metricID, name string, amount float64) (*WeekBucket, error) {
	st, err := s.storeFor(metricID)
	if err != nil {
		return nil, err
	}
	m, _ := MetricByID(metricID)
	if name == "" {
		name = m.Name
	}
	return st.AddLog(ctx, userID, name, amount, m.Unit)
}

func (s *service) DeleteLog(ctx context.Context, userID, metricID, logID string) (*WeekBucket, error) {
	st, err := s.storeFor(metricID)
	if err != nil {
		return nil, err
	}
	return st.DeleteLog(ctx, userID, logID)
}

func (s *service) CurrentStreak(ctx context.Context, userID, metricID string) (int, error) {
	b, err := s.Week(ctx, userID, metricID)
	if err != nil {
		return 0, err
	}
	return Streak(b, s.clock.Now()), nil
}

func (s *service) WeeklySummary(ctx context.Context, userID, metricID string) (*WeeklySummary, error) {
	b, err := s.Week(ctx, userID, metricID)
	if err != nil {
		return nil, err
	}
	m, _ := MetricByID(metricID)

	now := s.clock.Now()
	summary := &WeeklySummary{
		Metric:      m,
		WeekID:      b.WeekID,
		Streak:      Streak(b, now),
		WeeklyTotal: WeeklyTotal(b),
		Days:        WeeklyCompletion(b),
	}
	if today := b.DayRecordFor(weekcal.DayName(now)); today != nil {
		summary.TodayTotal = today.Total
		summary.TodayPercent = ProgressPercent(today.Total, today.Goal)
		summary.TodayRemaining = Remaining(today.Total, today.Goal)
	}
	if m.WeeklyGoal > 0 {
		summary.WeeklyPercent = WeeklyGoalPercent(b, m.WeeklyGoal)
	}
	return summary, nil
}
