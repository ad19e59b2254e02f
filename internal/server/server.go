// Package server serves kinship layouts over HTTP.
//
// The API is read-only and works on one kinship graph loaded at startup:
//
//	GET /healthz
//	GET /api/people/{id}
//	GET /api/search?q=
//	GET /api/layout?focus=&style=&to=&generations=&zoom=&format=json|svg|dot|png|pdf
//	GET /api/relate?from=&to=
//	GET /api/navigate?focus=&style=&to=&current=&dir=
//
// Every response carries an X-Request-ID header. Errors are JSON
// {"error", "code", "request_id"} with the status from errors.HTTPStatus.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// context is canceled.
const shutdownTimeout = 5 * time.Second

// Server answers layout requests for one kinship graph.
type Server struct {
	graph    *kinship.Graph
	hash     string
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Option configures New.
type Option func(*Server)

// WithDefaults sets the options a request starts from; query parameters
// override them. Focus falls back to the dataset's initial person.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithTimeouts sets the HTTP read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// New creates a server for g. A nil runner renders without a cache.
func New(g *kinship.Graph, runner *pipeline.Runner, opts ...Option) (*Server, error) {
	hash, err := pipeline.DatasetHash(g)
	if err != nil {
		return nil, err
	}
	s := &Server{
		graph:        g,
		hash:         hash,
		runner:       runner,
		readTimeout:  10 * time.Second,
		writeTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/people/{id}", s.handlePerson)
		r.Get("/search", s.handleSearch)
		r.Get("/layout", s.handleLayout)
		r.Get("/relate", s.handleRelate)
		r.Get("/navigate", s.handleNavigate)
	})
	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr, "people", s.graph.Len())

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
