package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"picklog/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Serve HTTP until SIGINT/SIGTERM, then drain and shut down.

// @title picklog API
// @version 1.0
// @description Logs robot pick events and lists the most recent ones.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx)
	if err != nil {
		slog.Error("api bootstrap failed",
			"event", "bootstrap_api_failed",
			"module", "cmd/api",
			"layer", "platform",
			"error", err.Error(),
		)
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	if err := app.Close(); err != nil {
		slog.Error("api close failed",
			"event", "bootstrap_api_close_failed",
			"module", "cmd/api",
			"layer", "platform",
			"error", err.Error(),
		)
	}
	if runErr != nil {
		slog.Error("api stopped with error",
			"event", "bootstrap_api_run_failed",
			"module", "cmd/api",
			"layer", "platform",
			"error", runErr.Error(),
		)
		os.Exit(1)
	}
}
