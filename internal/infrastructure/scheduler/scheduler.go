package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/events"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/cache"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// Scheduler runs the midnight rollover: cached dashboard aggregates become
// stale the moment the day (and possibly the week) changes, so it drops them
// and tells subscribers to re-read.
type Scheduler struct {
	cache  *cache.RedisClient
	clock  weekcal.Clock
	logger *logger.Logger
	stop   chan struct{}
}

func NewScheduler(redisClient *cache.RedisClient, clock weekcal.Clock, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		cache:  redisClient,
		clock:  clock,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	now := s.clock.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	untilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Day rollover scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", untilMidnight),
	)

	go func() {
		timer := time.NewTimer(untilMidnight)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.stop:
			return
		}
		s.runRollover()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runRollover()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the rollover loop.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runRollover() {
	ctx := context.Background()
	start := s.clock.Now()

	s.logger.Info("Starting day rollover", zap.Time("start_time", start))

	if err := s.cache.InvalidatePattern(ctx, "dashboard:*"); err != nil {
		s.logger.Error("Failed to invalidate dashboard cache", zap.Error(err))
	}
	if err := s.cache.InvalidatePattern(ctx, "progress:*"); err != nil {
		s.logger.Error("Failed to invalidate progress cache", zap.Error(err))
	}

	event := &events.DashboardEvent{
		EventType: events.DashboardEventDayRollover,
		Timestamp: start,
		Details: map[string]string{
			"week_id": weekcal.WeekID(start),
			"day":     string(weekcal.DayName(start)),
		},
	}
	if err := s.cache.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish day rollover event", zap.Error(err))
	}

	s.logger.Info("Completed day rollover",
		zap.Duration("duration", time.Since(start)),
	)
}
