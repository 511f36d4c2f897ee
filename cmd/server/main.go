package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nirmaan-tech/procure-api/cmd"
	"github.com/nirmaan-tech/procure-api/internal/cache"
	"github.com/nirmaan-tech/procure-api/internal/config"
	"github.com/nirmaan-tech/procure-api/internal/platform/logger"
	"github.com/nirmaan-tech/procure-api/internal/platform/otel"
	"github.com/nirmaan-tech/procure-api/internal/server"
	"github.com/nirmaan-tech/procure-api/internal/server/validator"
	"github.com/nirmaan-tech/procure-api/internal/store/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(logger.DefaultConfig())
	log := logger.Get()
	defer logger.Sync()

	validator.Init()

	shutdownTracer, err := otel.InitTracer("procure-api", log, os.Stdout)
	if err != nil {
		log.Fatal("failed to initialise tracer", zap.Error(err))
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.Database.DSN, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer repo.Close()

	policy, err := cache.PolicyFromOverrides(cfg.Cache.TTL)
	if err != nil {
		log.Fatal("invalid cache ttl configuration", zap.Error(err))
	}

	facade := cache.New(newCacheStore(cfg, log), policy, log)
	srv := server.New(cfg, repo, facade, log)

	go cmd.CheckForUpdates(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
}

// newCacheStore prefers redis when enabled and reachable; otherwise the
// service degrades to the in-process store rather than refusing to start.
func newCacheStore(cfg *config.Config, log *zap.Logger) cache.Store {
	if !cfg.Redis.Enabled {
		log.Info("redis disabled, using in-memory cache store")
		return cache.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, falling back to in-memory cache store",
			zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return cache.NewMemoryStore()
	}

	log.Info("using redis cache store", zap.String("addr", cfg.Redis.Addr))
	return cache.NewRedisStore(client, cfg.Redis.OpTimeout)
}
