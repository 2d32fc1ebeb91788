package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/habits"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/timer"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/water"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/workout"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// DashboardHandler aggregates every tracker into one overview payload
type DashboardHandler struct {
	habitService   habits.Service
	waterService   water.Service
	workoutService workout.Service
	timers         *timer.Manager
	clock          weekcal.Clock
}

func NewDashboardHandler(habitService habits.Service, waterService water.Service, workoutService workout.Service, timers *timer.Manager, clock weekcal.Clock) *DashboardHandler {
	return &DashboardHandler{
		habitService:   habitService,
		waterService:   waterService,
		workoutService: workoutService,
		timers:         timers,
		clock:          clock,
	}
}

// dayScore is one day of the cross-tracker weekly chart.
type dayScore struct {
	Day   weekcal.Day `json:"day"`
	Score int         `json:"score"`
}

// GetDashboard builds the whole overview: per-metric summaries, hydration,
// the workout checklist and the timer, plus a blended daily score.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	ctx := c.Request.Context()

	summaries := make([]*habits.WeeklySummary, 0, len(h.habitService.Metrics()))
	for _, m := range h.habitService.Metrics() {
		summary, err := h.habitService.WeeklySummary(ctx, userID, m.ID)
		if err != nil {
			log.WithFields(logrus.Fields{"user_id": userID, "metric": m.ID}).
				WithError(err).Error("dashboard summary failed")
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		summaries = append(summaries, summary)
	}

	waterWeek, err := h.waterService.Week(ctx, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	waterTotal, waterPercent, err := h.waterService.TodayProgress(ctx, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	workoutChart, err := h.workoutService.DailyProgress(ctx, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	workoutPercent, err := h.workoutService.WeeklyProgress(ctx, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	now := h.clock.Now()
	today := weekcal.DayIndex(weekcal.DayName(now))
	chart := h.weeklyChart(summaries, waterWeek, workoutChart, today)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"weekId":  weekcal.WeekID(now),
		"day":     weekcal.DayName(now),
		"metrics": summaries,
		"water": gin.H{
			"today":   waterTotal,
			"percent": waterPercent,
			"goal":    water.DefaultGoal,
			"week":    waterWeek,
		},
		"workout": gin.H{
			"percent": workoutPercent,
			"days":    workoutChart,
		},
		"timer":       h.timers.Timer(userID).Snapshot(),
		"dailyScore":  chart[today].Score,
		"weeklyChart": chart,
	}})
}

// weeklyChart blends each day's habit, hydration and workout percentages
// into one score per day. Days after today score zero.
func (h *DashboardHandler) weeklyChart(summaries []*habits.WeeklySummary, waterWeek *habits.WeekBucket, workoutChart []workout.DayProgress, today int) []dayScore {
	chart := make([]dayScore, len(weekcal.MondayFirst))
	for i, day := range weekcal.MondayFirst {
		chart[i].Day = day
		if i > today {
			continue
		}

		var sum, n int
		for _, s := range summaries {
			sum += s.Days[i].Percent
			n++
		}
		if i < len(waterWeek.Days) {
			d := waterWeek.Days[i]
			sum += habits.ProgressPercent(d.Total, d.Goal)
			n++
		}
		if i < len(workoutChart) {
			sum += workoutChart[i].Percent
			n++
		}
		if n > 0 {
			chart[i].Score = int(math.Round(float64(sum) / float64(n)))
		}
	}
	return chart
}
