// Package server implements the mock REST backend engine: routing and
// dispatch, the bearer-token auth gate, the method handlers and the
// debug introspection endpoint.
//
// All mutable state (item store, session registry, counters, request
// log) hangs off the Server object, which is constructed once at
// startup and injected into every handler. Tests build a fresh Server
// per case and drive it through Handler().
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/imitatus/imitatus/pkg/config"
	"github.com/imitatus/imitatus/pkg/logging"
	"github.com/imitatus/imitatus/pkg/metrics"
	"github.com/imitatus/imitatus/pkg/requestlog"
	"github.com/imitatus/imitatus/pkg/session"
	"github.com/imitatus/imitatus/pkg/store"
)

// Server is the mock HTTP backend.
type Server struct {
	store    *store.Store
	sessions *session.Registry
	counters *metrics.Counters
	requests *requestlog.MemoryStore
	creds    config.Credentials

	handler    http.Handler
	httpServer *http.Server
	startTime  time.Time
	log        *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger. The default discards output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRequestLogCapacity overrides the recent-request window size.
func WithRequestLogCapacity(n int) Option {
	return func(s *Server) {
		s.requests = requestlog.NewMemoryStore(n)
	}
}

// New creates a Server with empty state.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		store:     store.New(),
		sessions:  session.NewRegistry(),
		counters:  metrics.NewCounters(),
		requests:  requestlog.NewMemoryStore(requestlog.DefaultCapacity),
		creds:     cfg.Credentials,
		startTime: time.Now(),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	// CONNECT requests arrive in authority form with an empty URL path,
	// so they are intercepted before mux dispatch.
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodConnect {
			s.handleConnect(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	s.handler = s.withMiddleware(root)
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler returns the fully wired root handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening in the background. Bind errors are returned
// synchronously; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.startTime = time.Now()
	s.log.Info("starting mock server", "addr", ln.Addr().String())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Uptime returns the server uptime in whole seconds.
func (s *Server) Uptime() int64 {
	return int64(time.Since(s.startTime).Seconds())
}
