// Package server assembles the gin engine: middleware stack, route table
// and lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/nirmaan-tech/procure-api/internal/cache"
	"github.com/nirmaan-tech/procure-api/internal/config"
	"github.com/nirmaan-tech/procure-api/internal/server/middleware"
	"github.com/nirmaan-tech/procure-api/internal/store"
)

const serviceName = "procure-api"

type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New builds the engine with the full middleware stack and registers all
// routes. The repository and cache facade are shared by every handler.
func New(cfg *config.Config, repo store.Repository, c *cache.Facade, log *zap.Logger) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(ginzap.Ginzap(log, time.RFC3339, true))
	engine.Use(ginzap.RecoveryWithZap(log, true))
	engine.Use(otelgin.Middleware(serviceName))
	engine.Use(middleware.ErrorHandler(log))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
	engine.Use(limiter.Middleware())

	s := &Server{
		engine: engine,
		log:    log,
		http: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.registerRoutes(repo, c)
	return s
}

// Engine exposes the underlying router for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) Start() error {
	s.log.Info("starting http server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down http server")
	return s.http.Shutdown(ctx)
}
