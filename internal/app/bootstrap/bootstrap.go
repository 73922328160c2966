package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	pickeventlog "picklog/contexts/robot-operations/pick-event-log"
	"picklog/contexts/robot-operations/pick-event-log/application/workers"
	"picklog/contexts/robot-operations/pick-event-log/ports"
	"picklog/internal/platform/config"
	"picklog/internal/platform/httpserver"
	"picklog/internal/platform/messaging"
	"picklog/internal/platform/observability"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server          *httpserver.Server
	bus             *messaging.Bus
	telemetry       *observability.Provider
	pickActivity    *workers.PickLoggedConsumer
	// consumerCtx outlives Run so that Close can drain the bus first.
	consumerCtx     context.Context
	stopConsumers   context.CancelFunc
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return buildAPI(ctx, cfg, os.Stdout)
}

func buildAPI(ctx context.Context, cfg config.Config, logOutput io.Writer) (*APIApp, error) {
	logger := newLogger(logOutput, cfg.LogLevel).With("service", cfg.ServiceName, "process", "api")

	telemetryConfig := observability.DefaultConfig()
	telemetryConfig.ServiceName = cfg.ServiceName
	telemetryConfig.Enabled = cfg.Telemetry.Enabled
	telemetryConfig.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	telemetryConfig.Insecure = cfg.Telemetry.Insecure
	telemetryConfig.SampleRate = cfg.Telemetry.SampleRate
	telemetry, err := observability.New(ctx, telemetryConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("build telemetry: %w", err)
	}

	consumerCtx, stopConsumers := context.WithCancel(context.WithoutCancel(ctx))
	app := &APIApp{
		consumerCtx:     consumerCtx,
		stopConsumers:   stopConsumers,
		telemetry:       telemetry,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	// A typed nil publisher would not compare equal to nil inside the use case.
	var publisher ports.EventPublisher
	if cfg.EnableEventBus {
		app.bus = messaging.NewBus(logger)
		publisher = app.bus
		app.pickActivity = &workers.PickLoggedConsumer{
			Subscriber: app.bus,
			Metrics:    telemetry,
			Logger:     logger,
		}
	}

	module := pickeventlog.NewInMemoryModule(cfg.LogCapacity, publisher, logger)

	var limiter *httpserver.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = httpserver.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	app.server = httpserver.New(module, httpserver.Options{
		Telemetry:     telemetry,
		RateLimiter:   limiter,
		EnableSwagger: cfg.EnableSwagger,
	}, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts the
// server down within the configured timeout.
func (a *APIApp) Run(ctx context.Context) error {
	if a.pickActivity != nil {
		if err := a.pickActivity.Start(a.consumerCtx); err != nil {
			return fmt.Errorf("start pick activity consumer: %w", err)
		}
	}

	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"event_bus", a.bus != nil,
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.server.Start()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-serveErr; err != nil {
		return err
	}
	a.logger.Info("api app stopped",
		"event", "bootstrap_api_stopped",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return nil
}

func (a *APIApp) Close() error {
	var errs []error
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	a.stopConsumers()
	if a.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		if err := a.telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown telemetry: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newLogger(out io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
