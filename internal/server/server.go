// Package server exposes the processing pipeline over HTTP: submit raw
// scenes, receive the processed visualization, fetch stored results by id.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lessonlab/vizboard/pkg/pipeline"
	"github.com/lessonlab/vizboard/pkg/store"
)

// Server wires the pipeline runner and the visualization store behind a
// chi router.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	opts   pipeline.Options
	logger *log.Logger
	http   *http.Server
}

// New builds a Server. The store may be a MemoryStore when persistence is
// not configured.
func New(addr string, runner *pipeline.Runner, st store.Store, opts pipeline.Options, logger *log.Logger) (*Server, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{runner: runner, store: st, opts: opts, logger: logger}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the router, exposed for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// ListenAndServe blocks until the context is cancelled or the listener
// fails, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/visualizations", s.handleProcess)
		r.Get("/visualizations/{id}", s.handleGet)
		r.Get("/visualizations/{id}/commands", s.handleCommands)
		r.Get("/visualizations/{id}/preview/{sceneID}", s.handlePreview)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
		)
	})
}
