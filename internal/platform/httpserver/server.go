package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	pickeventlog "picklog/contexts/robot-operations/pick-event-log"
	"picklog/internal/platform/observability"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "picklog/internal/platform/httpserver/docs"
)

type Options struct {
	// Telemetry is optional; nil skips spans and request metrics.
	Telemetry *observability.Provider
	// RateLimiter is optional; nil leaves POST /pick unthrottled.
	RateLimiter   *RateLimiter
	EnableSwagger bool
}

type Server struct {
	mux        *http.ServeMux
	handler    http.Handler
	httpServer *http.Server
	logger     *slog.Logger
	addr       string
	picks      pickeventlog.Module
	telemetry  *observability.Provider
	limiter    *RateLimiter
}

func New(
	picks pickeventlog.Module,
	opts Options,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		picks:     picks,
		telemetry: opts.Telemetry,
		limiter:   opts.RateLimiter,
	}
	s.registerRoutes(opts.EnableSwagger)
	s.handler = s.recoverPanics(s.withRequestID(s.withTelemetry(s.logRequests(s.mux))))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called. A clean shutdown
// returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	if s.limiter != nil {
		s.limiter.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the full middleware chain, mainly for embedding in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) registerRoutes(enableSwagger bool) {
	if enableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	// Method checks live in the handlers so that 405 responses carry the
	// same JSON shape as every other error.
	createPick := s.rateLimited(http.HandlerFunc(s.handleCreatePick))
	s.mux.Handle("/pick", createPick)
	s.mux.Handle("/api/pick", createPick)
	s.mux.HandleFunc("/events", s.handleListEvents)
	s.mux.HandleFunc("/api/events", s.handleListEvents)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
