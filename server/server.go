// Package server runs the Gin-backed HTTP surface that exposes the tracker's
// status to callers.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apperrors "github.com/kbukum/regstatus/errors"
	"github.com/kbukum/regstatus/logger"
	"github.com/kbukum/regstatus/server/endpoint"
	"github.com/kbukum/regstatus/server/middleware"
	"github.com/kbukum/regstatus/tracker"
)

// Server is an HTTP server backed by Gin, serving cleartext HTTP/2 as well.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
}

// New creates a new Server. No middleware is applied yet; call
// ApplyDefaults on the config first if needed.
func New(cfg Config, log *logger.Logger) *Server {
	// Gin mode follows the global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}
	handler := h2c.NewHandler(engine, h2s)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// Engine returns the underlying Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ApplyMiddleware applies the standard middleware stack to the Gin engine:
// recovery, request-ID, CORS, and request logging.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.CORS(s.config.CORS))
	s.engine.Use(middleware.RequestLogger())
}

// RegisterDefaultEndpoints registers the standard /health and /metrics
// endpoints and the not-found handler.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/metrics", endpoint.Metrics())
	s.engine.NoRoute(func(c *gin.Context) {
		appErr := apperrors.NotFound("endpoint")
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
	})
}

// RegisterAPIRoutes registers the discovery-facing API under /api.
func (s *Server) RegisterAPIRoutes(t *tracker.Tracker, serviceName string) {
	api := s.engine.Group("/api")
	api.GET("/health", endpoint.APIHealth(serviceName, s.config.Port, t))
	api.GET("/info", endpoint.Info(serviceName, s.config.Port))
	api.GET("/discovery/status", endpoint.DiscoveryStatus(t))
	api.GET("/metadata", endpoint.Metadata(serviceName))
}
