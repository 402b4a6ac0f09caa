package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/dishes/internal/metrics"
)

// menuService is the subset of *menu.Service the handlers use.
type menuService interface {
	List() []string
	Count() int
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) error
	Sample(count int) ([]string, error)
}

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server is the HTTP front end of the menu service.
type Server struct {
	echo *echo.Echo
	addr string
	menu menuService

	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck
	startTime    time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithHealthChecks adds checks run by the readiness probe.
func WithHealthChecks(checks ...HealthCheck) Option {
	return func(s *Server) { s.healthChecks = append(s.healthChecks, checks...) }
}

// WithRegistry serves /metrics from reg and records HTTP metrics on it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// NewServer builds a Server listening on addr once Start is called.
func NewServer(addr string, menu menuService, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:      e,
		addr:      addr,
		menu:      menu,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.registry != nil {
		srv.httpMetrics = metrics.NewHTTPMetrics(srv.registry)
	}

	srv.registerRoutes()
	return srv
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	slog.Info("Starting server", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
