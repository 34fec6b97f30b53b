// Package server is the HTTP and WebSocket front door over the classifier.
//
// Routes:
//
//	POST /api/classify        {"query": "..."}      -> classification result
//	POST /api/classify/batch  {"queries": [...]}    -> results in input order
//	GET  /api/diagnose?q=...                        -> stage-by-stage trace
//	GET  /api/stats                                 -> metrics snapshot and journal summary
//	GET  /api/history?limit=N                       -> recent journal entries
//	GET  /metrics                                   -> Prometheus exposition
//	GET  /health                                    -> liveness and build info
//	GET  /ws                                        -> text frame in, JSON result out; contract drafts
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/contractq/am"
	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/journal"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/metrics"
	"github.com/teranos/contractq/nlq"
	"github.com/teranos/contractq/sym"
	"github.com/teranos/contractq/version"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// Server serves a classifier over HTTP
type Server struct {
	classifier *nlq.Classifier
	metrics    *metrics.Metrics
	journal    *journal.Journal // nil when journal.enabled = false
	cfg        am.ServerConfig
	logger     *zap.SugaredLogger

	limiter  *rate.Limiter
	validate *validator.Validate
	registry *prometheus.Registry
	upgrader websocket.Upgrader
	handler  http.Handler
}

// Option configures optional dependencies of a Server
type Option func(*Server)

// WithJournal records every classification served
func WithJournal(j *journal.Journal) Option {
	return func(s *Server) { s.journal = j }
}

// WithLogger sets the request logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server. Metrics come from the classifier when it records
// any, otherwise a fresh set is used for the Prometheus endpoint.
func New(c *nlq.Classifier, cfg am.ServerConfig, opts ...Option) *Server {
	s := &Server{
		classifier: c,
		metrics:    c.Metrics(),
		cfg:        cfg,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		registry:   prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.ComponentLogger("server")
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	limit := rate.Inf
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(limit, burst)

	s.registry.MustRegister(metrics.NewCollector(s.metrics))
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     s.checkOrigin,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on port until ctx is cancelled, then drains in-flight
// requests
func (s *Server) Start(ctx context.Context, port int) error {
	if port <= 0 {
		port = am.DefaultServerPort
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	info := version.Get()
	s.logger.Infow(fmt.Sprintf("%s contractq server listening on port %d", sym.Server, port),
		append([]interface{}{logger.FieldPort, port}, info.LogFields()...)...,
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on port %d", port)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown server")
	}
	s.logger.Infow(fmt.Sprintf("%s contractq server stopped", sym.Stopped))
	return nil
}
