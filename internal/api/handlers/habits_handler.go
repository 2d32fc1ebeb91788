package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/dto"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/habits"
)

// HabitsHandler handles HTTP requests for tracked-metric operations
type HabitsHandler struct {
	service habits.Service
}

// NewHabitsHandler creates a new HabitsHandler instance
func NewHabitsHandler(service habits.Service) *HabitsHandler {
	return &HabitsHandler{service: service}
}

// ListMetrics returns the tracked-metric registry.
func (h *HabitsHandler) ListMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.service.Metrics()})
}

// GetWeek returns the current week's bucket, creating it on first access.
func (h *HabitsHandler) GetWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.Week(c.Request.Context(), userID, c.Param("metric"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bucket})
}

// GetPreviousWeek returns last week's bucket; data is null when the user has
// no record for that week.
func (h *HabitsHandler) GetPreviousWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.PreviousWeek(c.Request.Context(), userID, c.Param("metric"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bucket})
}

// AddLog records an activity against today.
func (h *HabitsHandler) AddLog(c *gin.Context) {
	var req dto.AddLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.AddLog(c.Request.Context(), userID, c.Param("metric"), req.Name, req.Amount)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": bucket})
}

// DeleteLog removes one of today's log entries.
func (h *HabitsHandler) DeleteLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.DeleteLog(c.Request.Context(), userID, c.Param("metric"), c.Param("log_id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bucket})
}

// GetStreak reports the consecutive-met-days streak for this week.
func (h *HabitsHandler) GetStreak(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	streak, err := h.service.CurrentStreak(c.Request.Context(), userID, c.Param("metric"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"streak": streak}})
}

// GetSummary returns the metric's aggregated current week.
func (h *HabitsHandler) GetSummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	summary, err := h.service.WeeklySummary(c.Request.Context(), userID, c.Param("metric"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}
