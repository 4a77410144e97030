// Package bridge exposes the state container over HTTP so other front ends
// can drive the same actions the CLI and TUI use.
package bridge

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mobil-koeln/gomate/internal/state"
)

// Server serves the HTTP bridge
type Server struct {
	container      *state.Container
	modes          []string
	allowedOrigins []string
	logger         *slog.Logger
	startTime      time.Time
}

// Option configures a Server
type Option func(*Server)

// WithModes sets the transport modes used by POST /transport/fetch when the
// request names none
func WithModes(modes []string) Option {
	return func(s *Server) {
		s.modes = modes
	}
}

// WithAllowedOrigins sets the CORS origins
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a bridge over the given container
func NewServer(c *state.Container, opts ...Option) *Server {
	s := &Server{
		container:      c,
		allowedOrigins: []string{"*"},
		logger:         slog.Default(),
		startTime:      time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with all routes and middleware
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(recovery(s.logger))
	r.Use(logging(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Correlation-ID"},
		AllowCredentials: false,
	}))

	r.Get("/health", s.health)
	r.Get("/state", s.getState)

	r.Post("/transport/fetch", s.fetchTransport)
	r.Get("/arrivals/{lineID}", s.getArrivals)
	r.Delete("/arrivals", s.clearArrivals)

	r.Post("/auth/login", s.login)
	r.Post("/auth/logout", s.logout)

	r.Post("/favorites/toggle", s.toggleFavorite)
	r.Put("/search", s.setSearch)
	r.Post("/theme/toggle", s.toggleTheme)

	return r
}

// HTTPServer wraps the handler with the timeouts used in production
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
