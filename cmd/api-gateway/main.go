package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/guardia-api/api/swagger"
	"github.com/noah-isme/guardia-api/internal/handler"
	"github.com/noah-isme/guardia-api/internal/middleware"
	"github.com/noah-isme/guardia-api/internal/repository"
	"github.com/noah-isme/guardia-api/internal/roster"
	"github.com/noah-isme/guardia-api/internal/service"
	"github.com/noah-isme/guardia-api/pkg/cache"
	"github.com/noah-isme/guardia-api/pkg/config"
	"github.com/noah-isme/guardia-api/pkg/database"
	"github.com/noah-isme/guardia-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/guardia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/guardia-api/pkg/middleware/requestid"
	"github.com/noah-isme/guardia-api/pkg/storage"
)

// @title Guardia API
// @version 1.0.0
// @description Substitute coverage engine for teacher absences
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var healthRedis *redis.Client
	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, roster caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			healthRedis = redisClient
			defer redisClient.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	rosterClient := roster.NewClient(roster.Options{
		BaseURL:       cfg.Roster.BaseURL,
		Timeout:       cfg.Roster.Timeout,
		DutyCacheTTL:  cfg.Roster.DutyCacheTTL,
		GroupCacheTTL: cfg.Roster.GroupCacheTTL,
		Cache:         cacheRepo,
		Logger:        logr,
	})

	absenceRepo := repository.NewAbsenceRepository(db)
	coverageRepo := repository.NewCoverageRepository(db)
	counterRepo := repository.NewCounterRepository(db)

	assignmentSvc := service.NewAssignmentService(
		absenceRepo, coverageRepo, counterRepo, rosterClient, validate, logr, metrics)
	lifecycleSvc := service.NewLifecycleService(
		coverageRepo, counterRepo, assignmentSvc, logr, metrics)
	counterSvc := service.NewCounterService(counterRepo, logr)
	authSvc := service.NewAuthService(cfg.Auth)

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("export storage init failed", zap.Error(err))
	}
	exportSvc := service.NewExportService(coverageRepo, exportStore, cfg.Exports, validate, logr)
	exportSvc.Start()
	defer exportSvc.Stop()

	absenceHandler := handler.NewAbsenceHandler(assignmentSvc)
	coverageHandler := handler.NewCoverageHandler(lifecycleSvc, assignmentSvc)
	counterHandler := handler.NewCounterHandler(counterSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	healthHandler := handler.NewHealthHandler(db, healthRedis)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")
	api.Use(middleware.JWT(authSvc))
	{
		absences := api.Group("/absences")
		{
			absences.GET("", absenceHandler.ListByDate)
			absences.GET("/history", absenceHandler.History)
			absences.GET("/teacher/:email", absenceHandler.HistoryByTeacher)
			absences.GET("/:id", absenceHandler.Get)
			absences.POST("", middleware.RequireAdmin(), absenceHandler.Register)
			absences.DELETE("/:id", middleware.RequireAdmin(), absenceHandler.Delete)
		}

		coverages := api.Group("/coverages")
		{
			coverages.GET("", coverageHandler.List)
			coverages.GET("/pending", coverageHandler.ListPending)
			coverages.GET("/stats", coverageHandler.Stats)
			coverages.GET("/teacher/:email", coverageHandler.ListByTeacher)
			coverages.GET("/supervision/preview", coverageHandler.SupervisionPreview)
			coverages.GET("/:id", coverageHandler.Get)
			coverages.POST("/:id/validate", middleware.RequireAdmin(), coverageHandler.Validate)
			coverages.POST("/:id/cancel", middleware.RequireAdmin(), coverageHandler.Cancel)
			coverages.POST("/validate-day", middleware.RequireAdmin(), coverageHandler.ValidateDay)
			coverages.POST("/redistribute", middleware.RequireAdmin(), coverageHandler.Redistribute)
		}

		counters := api.Group("/counters")
		{
			counters.GET("/:email", counterHandler.ListByTeacher)
			counters.GET("/:email/slot", counterHandler.GetSlot)
			counters.DELETE("/:email", middleware.RequireAdmin(), counterHandler.Reset)
		}

		exports := api.Group("/exports")
		{
			exports.POST("/coverage-sheet", middleware.RequireAdmin(), exportHandler.Enqueue)
			exports.GET("/coverage-sheet/status", exportHandler.Status)
			exports.GET("/coverage-sheet/download", exportHandler.Download)
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
