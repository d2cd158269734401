package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rileysklar/BookNook/internal/api"
	"github.com/rileysklar/BookNook/internal/auth"
	"github.com/rileysklar/BookNook/internal/config"
	"github.com/rileysklar/BookNook/internal/redis"
	"github.com/rileysklar/BookNook/internal/service"
	"github.com/rileysklar/BookNook/internal/storage/postgres"
	"github.com/rileysklar/BookNook/internal/workers"
	"github.com/rileysklar/BookNook/pkg/logger"
)

type Components struct {
	logger           *slog.Logger
	HttpServer       *api.Server
	Postgres         *postgres.Postgres
	Redis            *redis.Redis
	ActivityQueue    *redis.ActivityQueue
	ActivityRecorder *service.ActivityRecorder
	CacheRefresher   *workers.CacheRefresher
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	libraryCache := redis.NewLibraryCache(redisClient)
	activityQueue := redis.NewActivityQueue(redisClient.Client, "activities:queue")

	librarySvc := service.NewLibraryService(
		storage.Libraries(),
		libraryCache,
		activityQueue,
		logger,
		cfg.Cache.ActiveTTL,
	)
	activitySvc := service.NewActivityService(storage.Activities(), logger)

	srv := service.NewService(librarySvc, activitySvc)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)

	httpServer := api.NewServer(cfg, logger, srv, tokens)
	logger.Info("Initialized server")

	recorder := service.NewActivityRecorder(logger, activityQueue, storage.Activities())
	refresher := workers.NewCacheRefresher(
		logger,
		storage.Libraries(),
		libraryCache,
		cfg.Cache.RefreshInterval,
		cfg.Cache.ActiveTTL,
	)

	return &Components{
		logger:           logger,
		HttpServer:       httpServer,
		Postgres:         storage,
		Redis:            redisClient,
		ActivityQueue:    activityQueue,
		ActivityRecorder: recorder,
		CacheRefresher:   refresher,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("component shutdown started")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
