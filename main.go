package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowtask/internal/cache"
	"flowtask/internal/config"
	"flowtask/internal/database"
	"flowtask/internal/events"
	"flowtask/internal/handlers"
	"flowtask/internal/middleware"
	"flowtask/internal/monitoring"
	"flowtask/internal/realtime"
	"flowtask/internal/services"
	"flowtask/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	layeredCache := cache.NewLayeredCache(cache.NewRedisCacheFromClient(redisClient))

	publisher := events.NewRedisPublisher(redisClient)
	taskService := services.NewCachedTaskService(services.NewTaskService(publisher), layeredCache)
	listService := services.NewListService()
	externalService := services.NewExternalTaskService(taskService)

	jobQueue := worker.NewJobQueue(redisClient)

	var enricher handlers.EnrichmentEnqueuer
	if cfg.Enrichment.PipelineURL != "" {
		enricher = jobQueue
	}

	jobWorker := worker.NewWorker(worker.WorkerConfig{
		RedisClient: redisClient,
		PollTimeout: cfg.Worker.PollTimeout,
	})
	jobWorker.RegisterHandler(worker.JobTypeEnrichmentRequest, worker.NewEnrichmentDispatchHandler(cfg.Enrichment))
	jobWorker.RegisterHandler(worker.JobTypeCompletedCleanup, worker.NewCompletedCleanupHandler(db, taskService, cfg.Scheduler.CleanupRetention))
	jobWorker.Start(cfg.Worker.Concurrency)
	defer jobWorker.Stop()

	scheduler, err := worker.NewScheduler(cfg.Scheduler, db, taskService, jobQueue)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	hub := realtime.NewHub(redisClient)
	if err := hub.Start(events.TasksChannel); err != nil {
		logrus.WithError(err).Fatal("failed to start change feed")
	}
	defer hub.Stop()

	go trackFeedSubscribers(hub)

	router := setupRouter(cfg, db, listService, taskService, externalService, enricher, hub, redisClient)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logrus.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
}

func setupRouter(
	cfg *config.Config,
	db *gorm.DB,
	listService services.ListService,
	taskService services.TaskService,
	externalService services.ExternalTaskService,
	enricher handlers.EnrichmentEnqueuer,
	hub *realtime.Hub,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	healthChecker := monitoring.NewHealthChecker()
	healthChecker.Register("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	healthChecker.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	router.GET("/healthz", healthChecker.Handler())
	router.GET("/metrics", monitoring.MetricsHandler())

	listHandler := handlers.NewListHandler(db, listService)
	taskHandler := handlers.NewTaskHandler(db, taskService, enricher)
	externalHandler := handlers.NewExternalTaskHandler(db, externalService, enricher)
	webhookHandler := handlers.NewEnrichmentWebhookHandler(db, taskService)
	sessionHandler := handlers.NewSessionHandler(cfg.Auth)

	api := router.Group("/api")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit)
		api.Use(limiter.Middleware())
	}

	api.GET("/lists", listHandler.GetLists)
	api.POST("/lists", listHandler.CreateList)

	api.GET("/tasks", taskHandler.GetTasks)
	api.POST("/tasks", taskHandler.CreateTask)
	api.PATCH("/tasks/:id", taskHandler.UpdateTask)
	api.DELETE("/tasks/:id", taskHandler.DeleteTask)

	api.POST("/auth/session", sessionHandler.CreateSession)

	api.POST("/external/tasks", middleware.SharedSecret(cfg.External.APISecret), externalHandler.CreateTask)
	api.POST("/webhooks/enrich-task", middleware.OptionalSharedSecret(cfg.External.WebhookSecret), webhookHandler.EnrichTask)

	api.GET("/realtime/tasks", middleware.SessionRequired(cfg.Auth.SessionSecret), hub.Handle)

	return router
}

func trackFeedSubscribers(hub *realtime.Hub) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		monitoring.SetFeedSubscribers(hub.ConnCount())
	}
}
