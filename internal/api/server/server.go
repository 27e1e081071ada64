// Package server provides the HTTP server implementation
package server

// @title           Kumpi sähkö API
// @version         1.0
// @description     Compares the cost of metered electricity consumption under spot and fixed pricing.
// @x-skip-model-definitions true
//
// @description.markdown
// API endpoints under /api/v1 are subject to per-IP rate limiting.
//
// When rate limit is exceeded:
// * Status code 429 (Too Many Requests) is returned
// * Headers:
//   - X-RateLimit-Limit: Maximum requests allowed
//   - X-RateLimit-Reset: Unix timestamp when the rate limit resets
//   - Retry-After: Seconds to wait before retrying
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication
//
// @response 429 {object} models.ErrorResponse "Rate limit exceeded"

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kumpisahko/internal/api/routes"
	"kumpisahko/internal/config"
	"kumpisahko/internal/metrics"
	"kumpisahko/internal/repository/postgres"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg     *config.Config
	db      *sql.DB
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// New creates a new server instance
func New(cfg *config.Config, db *sql.DB, logger zerolog.Logger) *Server {
	m := metrics.New()
	m.RegisterDBMetrics(db, logger)

	return &Server{
		cfg:     cfg,
		db:      db,
		metrics: m,
		logger:  logger,
	}
}

// Run serves until ctx is cancelled and then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	port, err := strconv.Atoi(s.cfg.API.Port)
	if err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	done := make(chan struct{})
	defer close(done)

	router := routes.SetupRoutes(s.cfg, routes.Dependencies{
		SpotPrices: postgres.NewSpotPriceRepository(s.db),
		Health:     s.db,
		Metrics:    s.metrics,
		Logger:     s.logger,
		Done:       done,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Int("port", port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
