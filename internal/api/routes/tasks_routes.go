package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/handlers"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
)

type TasksRoutes struct {
	handler   *handlers.TasksHandler
	jwtSecret string
}

func NewTasksRoutes(handler *handlers.TasksHandler, jwtSecret string) *TasksRoutes {
	return &TasksRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all to-do list routes
func (r *TasksRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	tasksGroup := router.Group("/api/tasks")
	tasksGroup.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	tasksGroup.GET("", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.handler.List)
	tasksGroup.POST("", cache.CacheInvalidate(), r.handler.Create)
	tasksGroup.PUT("/reorder", cache.CacheInvalidate(), r.handler.Reorder)
	tasksGroup.GET("/:id", r.handler.Get)
	tasksGroup.PUT("/:id", cache.CacheInvalidate(), r.handler.Update)
	tasksGroup.POST("/:id/toggle", cache.CacheInvalidate(), r.handler.ToggleCompleted)
	tasksGroup.DELETE("/:id", cache.CacheInvalidate(), r.handler.Delete)
}
