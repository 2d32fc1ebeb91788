package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/handlers"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
)

type WorkoutRoutes struct {
	handler   *handlers.WorkoutHandler
	jwtSecret string
}

func NewWorkoutRoutes(handler *handlers.WorkoutHandler, jwtSecret string) *WorkoutRoutes {
	return &WorkoutRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all workout checklist routes
func (r *WorkoutRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	workouts := router.Group("/api/workouts")
	workouts.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	workouts.GET("/week", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetWeek)
	workouts.GET("/week/previous", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetPreviousWeek)
	workouts.GET("/today", r.handler.GetToday)
	workouts.POST("/toggle", cache.CacheInvalidate(), r.handler.ToggleExercise)
	workouts.POST("/reset", cache.CacheInvalidate(), r.handler.ResetWeek)

	progress := workouts.Group("/progress")
	progress.GET("/weekly", r.handler.GetWeeklyProgress)
	progress.GET("/daily", r.handler.GetDailyProgress)
	progress.GET("/monthly", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetMonthlyProgress)
}
