package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/tournament-ledger/internal/app"
	"github.com/riskibarqy/tournament-ledger/internal/config"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Service: cfg.ServiceName,
		Version: cfg.ServiceVersion,
		Env:     cfg.AppEnv,
	})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("http server stopped with error", "error", err)
		os.Exit(1)
	}
}
