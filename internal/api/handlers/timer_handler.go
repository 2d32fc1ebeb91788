package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/dto"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/timer"
)

// TimerHandler handles HTTP requests for the per-user focus timer
type TimerHandler struct {
	manager *timer.Manager
}

func NewTimerHandler(manager *timer.Manager) *TimerHandler {
	return &TimerHandler{manager: manager}
}

func (h *TimerHandler) userTimer(c *gin.Context) (*timer.Timer, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}
	return h.manager.Timer(userID), true
}

func (h *TimerHandler) GetState(c *gin.Context) {
	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.Snapshot()})
}

func (h *TimerHandler) Start(c *gin.Context) {
	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.Start()})
}

func (h *TimerHandler) Pause(c *gin.Context) {
	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.Pause()})
}

func (h *TimerHandler) Reset(c *gin.Context) {
	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.Reset()})
}

// SetDuration replaces the session length; rejected while running.
func (h *TimerHandler) SetDuration(c *gin.Context) {
	var req dto.TimerDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	snap, err := t.SetDuration(req.Minutes)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "data": snap})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snap})
}

// Adjust shifts the session length; rejected while running.
func (h *TimerHandler) Adjust(c *gin.Context) {
	var req dto.TimerAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	snap, err := t.AdjustTime(req.DeltaMinutes, req.DeltaSeconds)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "data": snap})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snap})
}

func (h *TimerHandler) StartBreak(c *gin.Context) {
	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.StartBreak()})
}

func (h *TimerHandler) Snooze(c *gin.Context) {
	// The body is optional; an empty one snoozes for the break length.
	var req dto.TimerSnoozeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.Snooze(req.Minutes)})
}

func (h *TimerHandler) DismissAlarm(c *gin.Context) {
	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.DismissAlarm()})
}

func (h *TimerHandler) LinkTask(c *gin.Context) {
	var req dto.LinkTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, ok := h.userTimer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t.SetLinkedTask(req.TaskID)})
}
