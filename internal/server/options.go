package server

import (
	"log"
	"time"

	"github.com/agbru/setpart/internal/logging"
	"github.com/agbru/setpart/internal/service"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default JSON logger. nil is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger logs through a standard library logger. nil is ignored.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService injects the service, typically a mock in tests. nil is
// ignored.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithTimeouts overrides the server timeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// WithRateLimiter replaces the default rate limiter. nil is ignored.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		if rl != nil {
			s.rateLimiter = rl
		}
	}
}

// WithLimits bounds the set size and the response size of /partitions.
// Non-positive values keep the defaults.
func WithLimits(maxN int, maxPartitions uint64) Option {
	return func(s *Server) {
		if maxN > 0 {
			s.securityConfig.MaxNValue = maxN
		}
		if maxPartitions > 0 {
			s.securityConfig.MaxPartitions = maxPartitions
		}
	}
}

// Timeouts holds the HTTP server timeouts.
type Timeouts struct {
	// RequestTimeout bounds the enumeration behind one request.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// DefaultServerTimeouts returns the production timeouts.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
