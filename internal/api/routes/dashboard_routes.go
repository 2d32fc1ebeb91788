package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/handlers"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
)

type DashboardRoutes struct {
	handler   *handlers.DashboardHandler
	jwtSecret string
}

func NewDashboardRoutes(handler *handlers.DashboardHandler, jwtSecret string) *DashboardRoutes {
	return &DashboardRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers the aggregated dashboard route
func (r *DashboardRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	dashboard.GET("", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.GetDashboard)
}
