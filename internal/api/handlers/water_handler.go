package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/dto"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/habits"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/water"
)

// WaterHandler handles HTTP requests for hydration tracking
type WaterHandler struct {
	service water.Service
}

func NewWaterHandler(service water.Service) *WaterHandler {
	return &WaterHandler{service: service}
}

func (h *WaterHandler) GetWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.Week(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bucket})
}

func (h *WaterHandler) GetPreviousWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.PreviousWeek(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bucket})
}

// GetToday reports today's intake against the daily goal.
func (h *WaterHandler) GetToday(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	total, percent, err := h.service.TodayProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"total":     total,
		"percent":   percent,
		"remaining": habits.Remaining(total, water.DefaultGoal),
		"goal":      water.DefaultGoal,
		"unit":      water.Unit,
	}})
}

func (h *WaterHandler) AddIntake(c *gin.Context) {
	var req dto.AddWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.AddIntake(c.Request.Context(), userID, req.Name, req.Amount)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": bucket})
}

func (h *WaterHandler) DeleteIntake(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bucket, err := h.service.DeleteIntake(c.Request.Context(), userID, c.Param("log_id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bucket})
}
