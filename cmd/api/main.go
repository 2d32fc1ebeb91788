package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/internal/api/dto"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/handlers"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/middleware"
	"github.com/luewire/DailyFlow-HabitTracker/internal/api/routes"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/habits"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/tasks"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/timer"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/water"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/workout"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/cache"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/docstore"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/persistence/postgres/connection"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/scheduler"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/config"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLoggerWithLevel(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	dto.RegisterCustomValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	metricsMiddleware := middleware.NewMetricsMiddleware()
	router.Use(metricsMiddleware.CollectMetrics())

	// Database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	documents := docstore.NewPostgres(db)
	if err := documents.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Redis is optional; caching and dashboard events degrade gracefully.
	var redisClient *cache.RedisClient
	if cfg.Redis.Host != "" {
		redisClient, err = cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
		if err != nil {
			log.Warn("Redis unavailable, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("Redis connection established")
		}
	}

	var publisher habits.EventPublisher
	if redisClient != nil {
		publisher = redisClient
	}

	// Domain services
	clock := weekcal.SystemClock{}
	habitService := habits.NewService(documents, clock, publisher, log)
	waterService := water.NewService(documents, clock, publisher, log)
	workoutService := workout.NewService(documents, clock, publisher, log)
	taskService := tasks.NewService(documents, clock, log)
	timerManager := timer.NewManager(time.Second)
	defer timerManager.Shutdown()

	if redisClient != nil {
		rolloverScheduler := scheduler.NewScheduler(redisClient, clock, log)
		rolloverScheduler.Start()
		defer rolloverScheduler.Stop()
	}

	// Handlers
	habitsHandler := handlers.NewHabitsHandler(habitService)
	waterHandler := handlers.NewWaterHandler(waterService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	timerHandler := handlers.NewTimerHandler(timerManager)
	tasksHandler := handlers.NewTasksHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(habitService, waterService, workoutService, timerManager, clock)

	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "dashboard", 5*time.Minute)

	routes.NewHabitsRoutes(habitsHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewWaterRoutes(waterHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewWorkoutRoutes(workoutHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewTimerRoutes(timerHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewTasksRoutes(tasksHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewDashboardRoutes(dashboardHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok", "database": "up"}
		if sqlDB, err := db.DB.DB(); err != nil || sqlDB.Ping() != nil {
			status["status"] = "degraded"
			status["database"] = "down"
		}
		if redisClient != nil {
			status["redis"] = "up"
			if redisClient.HealthCheck(c.Request.Context()) != nil {
				status["status"] = "degraded"
				status["redis"] = "down"
			}
		}
		c.JSON(http.StatusOK, status)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
