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
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-exam-planner/api/swagger"
	"github.com/noah-isme/sma-exam-planner/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-exam-planner/internal/middleware"
	"github.com/noah-isme/sma-exam-planner/internal/repository"
	"github.com/noah-isme/sma-exam-planner/internal/service"
	"github.com/noah-isme/sma-exam-planner/pkg/cache"
	"github.com/noah-isme/sma-exam-planner/pkg/config"
	"github.com/noah-isme/sma-exam-planner/pkg/database"
	"github.com/noah-isme/sma-exam-planner/pkg/jobs"
	"github.com/noah-isme/sma-exam-planner/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-exam-planner/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-exam-planner/pkg/middleware/requestid"
	"github.com/noah-isme/sma-exam-planner/pkg/storage"
)

// @title Exam Planner API
// @version 1.0.0
// @description Exam period planner: periods, slots, subject catalog and the assignment board
// @BasePath /
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()
	board := repository.NewBoardRepository(service.DefaultBoard(time.Now()))

	var cacheRepo service.CacheRepository
	if cfg.Exports.CacheEnabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, export cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(redisClient)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Exports.CacheTTL, logr, cacheRepo != nil)

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SigningSecret, cfg.Exports.LinkTTL)

	snapshotCfg := service.SnapshotConfig{MaxBytes: cfg.Snapshot.MaxImportBytes, FetchTimeout: cfg.Snapshot.PresetFetchTimeout}
	var archives *repository.SnapshotArchiveRepository
	if cfg.Snapshot.ArchiveEnabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect database", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		archives = repository.NewSnapshotArchiveRepository(db)
		if err := archives.EnsureSchema(ctx); err != nil {
			logr.Fatal("failed to prepare snapshot archive table", zap.Error(err))
		}
	}
	snapshotSvc := newSnapshotService(board, archives, logr, snapshotCfg)

	if cfg.Snapshot.PresetSource != "" {
		result, err := snapshotSvc.LoadPreset(ctx, cfg.Snapshot.PresetSource)
		if err != nil {
			logr.Warn("preset not applied", zap.Error(err))
		} else {
			logr.Info("preset applied", zap.Strings("fields", result.Applied), zap.Strings("ignored", result.Ignored))
		}
	}

	engine := service.NewAssignmentService(board, metricsSvc, logr)
	exportSvc := service.NewExportService(board, cacheSvc, exportStorage, signer, service.ExportConfig{
		CacheTTL:       cfg.Exports.CacheTTL,
		CacheNamespace: uuid.NewString(),
		Retention:      cfg.Exports.Retention,
	}, logr)

	retention := jobs.NewQueue("export-retention", exportSvc.SweepSaved, jobs.QueueConfig{Logger: logr})
	retention.Start(ctx)
	defer retention.Stop()
	retention.Every(cfg.Exports.SweepInterval, "export-retention")

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	handlers := handler.Handlers{
		Board:    handler.NewBoardHandler(engine, service.NewCommandService(engine, nil)),
		Period:   handler.NewPeriodHandler(service.NewPeriodService(board, nil, logr), engine),
		Subject:  handler.NewSubjectHandler(service.NewSubjectService(board, nil, logr), cfg.Snapshot.MaxImportBytes),
		Snapshot: handler.NewSnapshotHandler(snapshotSvc),
		Export:   handler.NewExportHandler(exportSvc),
		Metrics:  metricsHandler,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
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

// newSnapshotService keeps a nil archive repository from reaching the
// service as a typed nil interface.
func newSnapshotService(board *repository.BoardRepository, archives *repository.SnapshotArchiveRepository, logr *zap.Logger, cfg service.SnapshotConfig) *service.SnapshotService {
	if archives == nil {
		return service.NewSnapshotService(board, nil, nil, nil, logr, cfg)
	}
	return service.NewSnapshotService(board, archives, nil, nil, logr, cfg)
}
