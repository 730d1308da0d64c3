// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/spektr-org/orderlens/engine"
	"github.com/spektr-org/orderlens/observability"
	"github.com/spektr-org/orderlens/schema"
	"github.com/spektr-org/orderlens/store"
)

// ServiceName identifies the server in traces.
const ServiceName = "orderlens"

const shutdownTimeout = 10 * time.Second

// Server serves dashboards computed from one loaded store.
type Server struct {
	store    *store.Store
	facets   schema.Config
	options  []engine.Option
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	router   *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithEngineOptions passes opts to every dashboard computation.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Server) { s.options = append(s.options, opts...) }
}

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds the router for st. Metrics are recorded on m and exposed from g
// on /metrics.
func New(st *store.Store, m *observability.Metrics, g prometheus.Gatherer, opts ...Option) *Server {
	s := &Server{
		store:    st,
		facets:   st.Describe(),
		metrics:  m,
		gatherer: g,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	m.DatasetRows.Set(float64(st.Len()))

	s.router = gin.New()
	s.router.Use(
		gin.Recovery(),
		otelgin.Middleware(ServiceName),
		requestID(),
		requestLogger(s.logger),
		instrument(m),
	)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/v1")
	{
		v1.GET("/facets", s.facetsHandler)
		v1.GET("/dashboard", s.dashboard)
		v1.GET("/metrics", s.metricCards)
		v1.GET("/tables/:name", s.table)
		v1.GET("/charts/:name", s.chart)
	}
}

// Router returns the configured gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr, "rows", s.store.Len(), "source", s.store.Source())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
