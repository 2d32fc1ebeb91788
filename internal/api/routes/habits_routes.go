package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/handlers"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
)

type HabitsRoutes struct {
	handler   *handlers.HabitsHandler
	jwtSecret string
}

func NewHabitsRoutes(handler *handlers.HabitsHandler, jwtSecret string) *HabitsRoutes {
	return &HabitsRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all tracked-metric routes
func (r *HabitsRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	metrics := router.Group("/api/metrics")
	metrics.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	metrics.GET("", r.handler.ListMetrics)
	metrics.GET("/:metric/week", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetWeek)
	metrics.GET("/:metric/week/previous", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetPreviousWeek)
	metrics.GET("/:metric/streak", r.handler.GetStreak)
	metrics.GET("/:metric/summary", cache.CacheResponse(), r.handler.GetSummary)
	metrics.POST("/:metric/logs", cache.CacheInvalidate(), r.handler.AddLog)
	metrics.DELETE("/:metric/logs/:log_id", cache.CacheInvalidate(), r.handler.DeleteLog)
}
