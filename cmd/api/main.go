package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"recovery-chat/internal/app"
	"recovery-chat/internal/config"
	"recovery-chat/internal/infrastructure/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	runErr := a.Run(ctx)
	if err := a.Close(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	if runErr != nil {
		logger.Error("server stopped", zap.Error(runErr))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
