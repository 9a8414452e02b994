package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-opportunities/internal/api/middleware"
	"github.com/feral-file/ff-opportunities/internal/api/rest"
	"github.com/feral-file/ff-opportunities/internal/api/shared/executor"
	"github.com/feral-file/ff-opportunities/internal/logger"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	Auth           middleware.AuthConfig
}

// Server serves the opportunities REST API
type Server struct {
	config     Config
	httpServer *http.Server
}

// New creates the server; routes are built once so Start and Shutdown may run on different goroutines
func New(cfg Config, exec executor.Executor) *Server {
	s := &Server{config: cfg}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      Router(cfg, exec),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Router builds the gin engine. Logger runs outermost so panics are logged with the request id.
func Router(cfg Config, exec executor.Executor) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.SetupCORS())

	rest.SetupRoutes(router, rest.NewHandler(exec), cfg.Auth, cfg.RequestTimeout)
	return router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	logger.Info("Starting API server", zap.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
