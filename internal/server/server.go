// Package server exposes partition listing and counting over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/setpart/internal/config"
	apperrors "github.com/agbru/setpart/internal/errors"
	"github.com/agbru/setpart/internal/logging"
	"github.com/agbru/setpart/internal/partition"
	"github.com/agbru/setpart/internal/service"
)

// Server is the setpart HTTP API with graceful shutdown.
type Server struct {
	factory        partition.GeneratorFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer builds a server for the generators of factory, listening on
// cfg.Port.
//
// Parameters:
//   - factory: Source of generators.
//   - cfg: The application configuration.
//   - opts: Functional options (logger, service, timeouts, limits).
//
// Returns:
//   - *Server: The configured server, not yet listening.
func NewServer(factory partition.GeneratorFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.service == nil {
		s.service = service.NewPartitionService(s.factory, s.securityConfig.MaxNValue, s.securityConfig.MaxPartitions)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/partitions", s.wrapWithMiddleware(s.handlePartitions))
	mux.HandleFunc("/count", s.wrapWithMiddleware(s.handleCount))
	mux.HandleFunc("/algorithms", s.wrapWithMiddleware(s.handleAlgorithms))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// Handler returns the root handler, with all middleware applied.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// wrapWithMiddleware applies, outermost first: security headers, rate
// limiting, logging, metrics.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	return SecurityMiddleware(s.securityConfig, wrapped)
}

// Start listens on the configured port and serves until ctx is done or
// SIGINT/SIGTERM arrives, then shuts down gracefully.
//
// Returns:
//   - error: A ServerError if listening or shutdown fails.
func (s *Server) Start(ctx context.Context) error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		s.logger.Printf("Limits: n<=%d, at most %d partitions per response", s.securityConfig.MaxNValue, s.securityConfig.MaxPartitions)
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /partitions?n=<size>&limit=<count>&algo=<generator>")
		s.logger.Println("  GET /count?n=<size>")
		s.logger.Println("  GET /algorithms")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /metrics")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		s.logger.Println("Context done, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.NewServerError("server stopped unexpectedly", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	s.logger.Println("Server stopped gracefully")
	return nil
}
