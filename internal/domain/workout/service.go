package workout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/events"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/habits"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/optimistic"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// Collection is where weekly checklists are stored.
const Collection = "workouts"

// DayProgress is one day's completion slice of the weekly chart. Days after
// "today" always read 0 so the chart never shows future work.
type DayProgress struct {
	Day     weekcal.Day `json:"day"`
	Done    int         `json:"done"`
	Total   int         `json:"total"`
	Percent int         `json:"percent"`
}

// WeekProgress is one week's share of a monthly report.
type WeekProgress struct {
	WeekID  string `json:"weekId"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
}

// MonthlyReport aggregates every week overlapping the current month. Weeks
// with no recorded checklist count as zero; the grand percentage is the
// ratio of the summed counts, not an average of the weekly percentages.
type MonthlyReport struct {
	Month   string         `json:"month"`
	Weeks   []WeekProgress `json:"weeks"`
	Done    int            `json:"done"`
	Total   int            `json:"total"`
	Percent int            `json:"percent"`
}

// Service manages the weekly workout checklist.
type Service interface {
	Week(ctx context.Context, userID string) (*WorkoutWeek, error)
	PreviousWeek(ctx context.Context, userID string) (*WorkoutWeek, error)

	// Toggle flips one exercise's completed state; the day names which
	// catalog the exercise id must belong to.
	Toggle(ctx context.Context, userID string, day weekcal.Day, exerciseID string) (*WorkoutWeek, error)

	// ResetWeek unchecks every exercise of the current week.
	ResetWeek(ctx context.Context, userID string) (*WorkoutWeek, error)

	// TodayWorkout returns today's slice of the checklist.
	TodayWorkout(ctx context.Context, userID string) (*DayWorkout, error)

	// WeeklyProgress reports checked exercises over the whole plan as a
	// percentage.
	WeeklyProgress(ctx context.Context, userID string) (int, error)

	// DailyProgress builds the Monday-first daily chart for the current week.
	DailyProgress(ctx context.Context, userID string) ([]DayProgress, error)

	// MonthlyProgress averages the weekly percentages of every week
	// overlapping the current month. Absent weeks are synthesized as empty
	// and never persisted.
	MonthlyProgress(ctx context.Context, userID string) (*MonthlyReport, error)
}

type service struct {
	store     ports.DocumentStore
	clock     weekcal.Clock
	log       *logger.Logger
	publisher habits.EventPublisher

	mu     sync.Mutex
	mirror map[string]*WorkoutWeek
}

func NewService(store ports.DocumentStore, clock weekcal.Clock, publisher habits.EventPublisher, log *logger.Logger) Service {
	return &service{
		store:     store,
		clock:     clock,
		log:       log,
		publisher: publisher,
		mirror:    make(map[string]*WorkoutWeek),
	}
}

func key(userID, weekID string) string {
	return fmt.Sprintf("%s_%s", userID, weekID)
}

func (s *service) Week(ctx context.Context, userID string) (*WorkoutWeek, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.fetchLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return w.Clone(), nil
}

func (s *service) fetchLocked(ctx context.Context, userID string) (*WorkoutWeek, error) {
	weekID := weekcal.WeekID(s.clock.Now())
	k := key(userID, weekID)

	if w, ok := s.mirror[k]; ok {
		return w, nil
	}

	var w WorkoutWeek
	err := s.store.Get(ctx, Collection, k, &w)
	if err == nil {
		s.mirror[k] = &w
		return &w, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}

	fresh := NewWorkoutWeek(userID, weekID)
	created, err := s.store.SetIfAbsent(ctx, Collection, k, fresh)
	if err != nil {
		return nil, err
	}
	if !created {
		if err := s.store.Get(ctx, Collection, k, &w); err != nil {
			return nil, err
		}
		s.mirror[k] = &w
		return &w, nil
	}

	s.log.Info("created workout checklist", zap.String("key", k))
	s.mirror[k] = fresh
	return fresh, nil
}

func (s *service) PreviousWeek(ctx context.Context, userID string) (*WorkoutWeek, error) {
	return s.weekByID(ctx, userID, weekcal.PreviousWeekID(s.clock.Now()))
}

// weekByID is a read-only lookup; it returns nil when no checklist exists.
func (s *service) weekByID(ctx context.Context, userID, weekID string) (*WorkoutWeek, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(userID, weekID)
	if w, ok := s.mirror[k]; ok {
		return w.Clone(), nil
	}

	var w WorkoutWeek
	err := s.store.Get(ctx, Collection, k, &w)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *service) Toggle(ctx context.Context, userID string, day weekcal.Day, exerciseID string) (*WorkoutWeek, error) {
	if weekcal.DayIndex(day) < 0 {
		return nil, ErrUnknownDay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.fetchLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := w.DayFor(day)
	if rec == nil || !rec.HasExercise(exerciseID) {
		return nil, ErrUnknownExercise
	}

	k := key(userID, w.WeekID)
	err = optimistic.Apply(
		func() {
			w.toggle(exerciseID)
		},
		func() error {
			return s.store.UpdateField(ctx, Collection, k, "completedExercises", w.Completed)
		},
		func() error {
			return s.reconcileLocked(ctx, k)
		},
	)
	if err != nil {
		s.log.Error("checklist write failed, mirror reconciled",
			zap.String("key", k), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}

	s.publish(ctx, userID, exerciseID)
	return s.mirror[k].Clone(), nil
}

func (s *service) ResetWeek(ctx context.Context, userID string) (*WorkoutWeek, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.fetchLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	k := key(userID, w.WeekID)
	err = optimistic.Apply(
		func() {
			w.Completed = []string{}
		},
		func() error {
			return s.store.UpdateField(ctx, Collection, k, "completedExercises", w.Completed)
		},
		func() error {
			return s.reconcileLocked(ctx, k)
		},
	)
	if err != nil {
		s.log.Error("checklist reset failed, mirror reconciled",
			zap.String("key", k), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}

	s.publish(ctx, userID, "reset")
	return s.mirror[k].Clone(), nil
}

func (s *service) reconcileLocked(ctx context.Context, k string) error {
	delete(s.mirror, k)

	var w WorkoutWeek
	err := s.store.Get(ctx, Collection, k, &w)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mirror[k] = &w
	return nil
}

func (s *service) publish(ctx context.Context, userID, entityID string) {
	if s.publisher == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: events.DashboardEventMetricsUpdate,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: s.clock.Now(),
		Details:   map[string]string{"collection": Collection},
	}
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.log.Warn("dashboard event publish failed", zap.Error(err))
	}
}

func (s *service) TodayWorkout(ctx context.Context, userID string) (*DayWorkout, error) {
	w, err := s.Week(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := w.DayFor(weekcal.DayName(s.clock.Now()))
	if today == nil {
		return nil, ErrUnknownDay
	}
	return today, nil
}

// WeekCounts reports checked exercises against the plan size.
func WeekCounts(w *WorkoutWeek) (done, total int) {
	if w == nil {
		return 0, 0
	}
	done = len(w.Completed)
	for _, d := range w.Workouts {
		total += len(d.Exercises)
	}
	return done, total
}

// WeekPercent reports checked exercises over the plan size as a whole
// percentage.
func WeekPercent(w *WorkoutWeek) int {
	done, total := WeekCounts(w)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func (s *service) WeeklyProgress(ctx context.Context, userID string) (int, error) {
	w, err := s.Week(ctx, userID)
	if err != nil {
		return 0, err
	}
	return WeekPercent(w), nil
}

func (s *service) DailyProgress(ctx context.Context, userID string) ([]DayProgress, error) {
	w, err := s.Week(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := weekcal.DayIndex(weekcal.DayName(s.clock.Now()))
	out := make([]DayProgress, 0, len(w.Workouts))
	for i := range w.Workouts {
		d := &w.Workouts[i]
		p := DayProgress{Day: d.Day, Total: len(d.Exercises)}
		if i <= today {
			p.Done = w.doneFor(d)
			if p.Total > 0 {
				p.Percent = int(math.Round(float64(p.Done) / float64(p.Total) * 100))
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *service) MonthlyProgress(ctx context.Context, userID string) (*MonthlyReport, error) {
	now := s.clock.Now()
	currentWeekID := weekcal.WeekID(now)

	report := &MonthlyReport{Month: now.Format("2006-01")}
	for _, weekID := range weekcal.MonthWeekIDs(now) {
		var w *WorkoutWeek
		var err error
		if weekID == currentWeekID {
			w, err = s.Week(ctx, userID)
		} else {
			w, err = s.weekByID(ctx, userID, weekID)
		}
		if err != nil {
			return nil, err
		}
		if w == nil {
			// Synthesized placeholder for a week with no checklist; it is
			// never written back.
			w = NewWorkoutWeek(userID, weekID)
		}

		done, total := WeekCounts(w)
		report.Weeks = append(report.Weeks, WeekProgress{
			WeekID:  weekID,
			Done:    done,
			Total:   total,
			Percent: WeekPercent(w),
		})
		report.Done += done
		report.Total += total
	}
	if report.Total > 0 {
		report.Percent = int(math.Round(float64(report.Done) / float64(report.Total) * 100))
	}
	return report, nil
}
