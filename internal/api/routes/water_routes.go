package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/handlers"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
)

type WaterRoutes struct {
	handler   *handlers.WaterHandler
	jwtSecret string
}

func NewWaterRoutes(handler *handlers.WaterHandler, jwtSecret string) *WaterRoutes {
	return &WaterRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all hydration routes
func (r *WaterRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	waterGroup := router.Group("/api/water")
	waterGroup.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	waterGroup.GET("/week", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetWeek)
	waterGroup.GET("/week/previous", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetPreviousWeek)
	waterGroup.GET("/today", r.handler.GetToday)
	waterGroup.POST("/logs", cache.CacheInvalidate(), r.handler.AddIntake)
	waterGroup.DELETE("/logs/:log_id", cache.CacheInvalidate(), r.handler.DeleteIntake)
}
