// Package http provides HTTP server implementation and request routing.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/petclinic-auth/internal/auth/http"
	authUseCase "github.com/allisson/petclinic-auth/internal/auth/usecase"
	"github.com/allisson/petclinic-auth/internal/config"
	"github.com/allisson/petclinic-auth/internal/metrics"
)

// Server represents the main API HTTP server.
type Server struct {
	db     *sql.DB
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server. The router must be configured with
// SetupRouter before Start is called.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with all middleware and routes.
//
// Middleware order matters: recovery first, then request IDs so the logger
// and error responses can reference them, then logging, CORS, and metrics.
func (s *Server) SetupRouter(
	cfg *config.Config,
	tokenHandler *authHTTP.TokenHandler,
	tokenUseCase authUseCase.TokenUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Credential endpoints are unauthenticated and rate limited per IP.
	tokenRoutes := v1.Group("/auth")
	if cfg.RateLimitTokenEnabled {
		tokenRoutes.Use(authHTTP.TokenRateLimitMiddleware(
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	tokenRoutes.POST("/token", tokenHandler.IssueTokenHandler)
	tokenRoutes.POST("/refresh", tokenHandler.RefreshTokenHandler)
	tokenRoutes.POST("/logout", tokenHandler.LogoutHandler)

	// Session listing requires a valid access token.
	sessionRoutes := v1.Group("/auth")
	sessionRoutes.Use(authHTTP.AuthenticationMiddleware(tokenUseCase, s.logger))
	sessionRoutes.GET("/sessions", tokenHandler.ListSessionsHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking the
// database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the configured router. Nil until SetupRouter runs.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
