package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/meeting-seatmap/internal/cache"
	"github.com/iliyamo/meeting-seatmap/internal/config"
	"github.com/iliyamo/meeting-seatmap/internal/database"
	"github.com/iliyamo/meeting-seatmap/internal/handler"
	"github.com/iliyamo/meeting-seatmap/internal/middleware"
	"github.com/iliyamo/meeting-seatmap/internal/queue"
	"github.com/iliyamo/meeting-seatmap/internal/repository"
	"github.com/iliyamo/meeting-seatmap/internal/router"
	"github.com/iliyamo/meeting-seatmap/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := service.Options{
		DefaultLocale:  cfg.Locale,
		MaxSeatsPerRow: cfg.MaxSeatsPerRow,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
	}

	rdb := config.NewRedisClient(logger)
	if rdb != nil {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()
	if rdb != nil && cacheCfg.Enabled {
		opts.Cache = cache.NewStore(rdb, cacheCfg.Prefix, cacheCfg.DocumentTTL)
	}

	// The export audit is optional; without a database the history routes
	// answer 503.
	var exports handler.ExportLister
	if cfg.DBEnabled() {
		db, err := database.Open(ctx, cfg)
		if err != nil {
			logger.Fatal("database unavailable", zap.Error(err))
		}
		defer db.Close()
		repo := repository.NewExportRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatal("export schema", zap.Error(err))
		}
		opts.Exports = repo
		exports = repo
	}

	if cfg.AMQPURL != "" {
		opts.Events = queue.NewPublisher(cfg.AMQPURL, logger)
		consumer := &queue.Consumer{URL: cfg.AMQPURL, LogDir: cfg.LogDir, Logger: logger.Named("consumer")}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("event consumer stopped", zap.Error(err))
			}
		}()
	}

	svc := service.New(opts)
	h := handler.NewSeatmapHandler(svc, exports, cfg.MaxSeatsPerRow, cfg.MaxUploadBytes, logger)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	router.RegisterRoutes(e)
	router.RegisterSeatmap(e, h, router.Middlewares{
		RateLimit:     middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger),
		ResponseCache: middleware.NewRedisCache(cacheCfg, rdb),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.Bool("audit", exports != nil), zap.Bool("events", cfg.AMQPURL != ""))

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	svc.Wait()
}
