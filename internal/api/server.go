// Package api serves the solver over HTTP.
//
// Routes:
//
//	POST /v1/solve      solve one query; ?format=json|dot|svg
//	GET  /v1/diameter   diameter table, or one row with ?n=
//	GET  /v1/scramble   random starting stack
//	GET  /healthz       liveness and build info
//	GET  /metrics       Prometheus metrics, when enabled
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// {"code": ..., "message": ...} with a status derived from the code.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flipstack/pkg/config"
	"github.com/matzehuels/flipstack/pkg/solver"
)

// Server holds the HTTP dependencies. It is immutable after New.
type Server struct {
	solver  *solver.Solver
	logger  *log.Logger
	cfg     config.ServerConfig
	metrics http.Handler
	mPath   string
}

// Options configures a Server.
type Options struct {
	Solver *solver.Solver
	Logger *log.Logger
	Config config.ServerConfig

	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

// New creates a server. A nil logger uses log.Default().
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	return &Server{
		solver:  opts.Solver,
		logger:  opts.Logger,
		cfg:     opts.Config,
		metrics: opts.Metrics,
		mPath:   opts.MetricsPath,
	}
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/diameter", s.handleDiameter)
		r.Get("/scramble", s.handleScramble)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, s.mPath, s.metrics)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
