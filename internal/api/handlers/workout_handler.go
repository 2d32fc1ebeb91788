package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/dto"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/workout"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// WorkoutHandler handles HTTP requests for the weekly workout checklist
type WorkoutHandler struct {
	service workout.Service
}

func NewWorkoutHandler(service workout.Service) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

func (h *WorkoutHandler) GetWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	week, err := h.service.Week(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": week})
}

func (h *WorkoutHandler) GetPreviousWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	week, err := h.service.PreviousWeek(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": week})
}

// GetToday returns today's slice of the checklist.
func (h *WorkoutHandler) GetToday(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	day, err := h.service.TodayWorkout(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": day})
}

// ToggleExercise flips one exercise's completed state.
func (h *WorkoutHandler) ToggleExercise(c *gin.Context) {
	var req dto.ToggleExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	week, err := h.service.Toggle(c.Request.Context(), userID, weekcal.Day(req.Day), req.ExerciseID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": week})
}

// ResetWeek unchecks every exercise of the current week.
func (h *WorkoutHandler) ResetWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	week, err := h.service.ResetWeek(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": week})
}

func (h *WorkoutHandler) GetWeeklyProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	pct, err := h.service.WeeklyProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"percent": pct}})
}

func (h *WorkoutHandler) GetDailyProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chart, err := h.service.DailyProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": chart})
}

func (h *WorkoutHandler) GetMonthlyProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	report, err := h.service.MonthlyProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}
