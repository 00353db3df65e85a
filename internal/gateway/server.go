// Package gateway is the workshop HTTP server: demo chat and PDF analysis
// endpoints streamed over SSE, plus portfolio state access for the UI.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/finlabs/agent-workshop/internal/agent"
	"github.com/finlabs/agent-workshop/internal/config"
	"github.com/finlabs/agent-workshop/internal/logging"
	"github.com/finlabs/agent-workshop/internal/portfolio"
	"github.com/finlabs/agent-workshop/internal/version"
)

// Server is the workshop gateway HTTP server.
type Server struct {
	cfg    config.Config
	log    *logging.Logger
	runner *agent.Runner
	store  *portfolio.Store

	httpServer *http.Server
}

// ServerOption configures the gateway server.
type ServerOption func(*Server)

// WithRunner sets the agent runner that executes chat and PDF requests.
func WithRunner(r *agent.Runner) ServerOption {
	return func(s *Server) { s.runner = r }
}

// WithPortfolio sets the portfolio store exposed on the portfolio endpoints.
func WithPortfolio(store *portfolio.Store) ServerOption {
	return func(s *Server) { s.store = store }
}

// New creates a new gateway server.
func New(cfg config.Config, log *logging.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg: cfg,
		log: log.Sub("gateway"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return withMiddleware(mux, s.log, s.cfg.Server.AllowedOrigins)
}

// Start begins listening for HTTP connections. It blocks until the context
// is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// No write timeout: chat responses stream for as long as the
		// model keeps producing output.
		IdleTimeout: 120 * time.Second,
		BaseContext: func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("version", version.Version).
		Msg("gateway server ready")

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down gateway server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}
