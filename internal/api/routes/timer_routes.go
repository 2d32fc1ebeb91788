package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/handlers"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
)

type TimerRoutes struct {
	handler   *handlers.TimerHandler
	jwtSecret string
}

func NewTimerRoutes(handler *handlers.TimerHandler, jwtSecret string) *TimerRoutes {
	return &TimerRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all focus timer routes. Timer state lives in
// memory, so nothing here touches the cache.
func (r *TimerRoutes) RegisterRoutes(router *gin.Engine) {
	timerGroup := router.Group("/api/timer")
	timerGroup.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	timerGroup.GET("", r.handler.GetState)
	timerGroup.POST("/start", r.handler.Start)
	timerGroup.POST("/pause", r.handler.Pause)
	timerGroup.POST("/reset", r.handler.Reset)
	timerGroup.PUT("/duration", r.handler.SetDuration)
	timerGroup.POST("/adjust", r.handler.Adjust)
	timerGroup.POST("/break", r.handler.StartBreak)
	timerGroup.POST("/snooze", r.handler.Snooze)
	timerGroup.POST("/dismiss", r.handler.DismissAlarm)
	timerGroup.PUT("/task", r.handler.LinkTask)
}
