// pkg/health/server.go
package health

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/opd-ai/go-orrery/pkg/logging"
)

// Server serves /health, /ready and, when given, /metrics
type Server struct {
	http     *http.Server
	listener net.Listener
	logger   *logging.Logger
}

// NewMux routes the health endpoints and the optional metrics handler
func NewMux(hc *HealthChecker, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hc.LivenessHandler)
	mux.HandleFunc("/ready", hc.ReadinessHandler)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}

// NewServer creates a diagnostics server for addr
func NewServer(addr string, handler http.Handler, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start binds the listener and serves in the background
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return logging.WrapError(err, "listening on %s", s.http.Addr)
	}
	s.listener = ln

	s.logger.Info(ctx, "diagnostics server started", "address", ln.Addr().String())
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "diagnostics server failed", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
