package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"laser-trainer/config"
	"laser-trainer/internal/container"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/infrastructure/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Собираем источник кадров, детектор и выходы
	app, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	app.Start(ctx)

	runErr := app.Trainer.Run(ctx)
	stop()
	if err := app.Close(); err != nil {
		logger.Warn("close", zap.Error(err))
	}

	switch {
	case runErr == nil:
		logger.Info("stopped", zap.Uint64("frames", app.Trainer.Stats().Frames))
	case errors.Is(runErr, port.ErrEndOfStream):
		logger.Info("frame source ended", zap.Uint64("frames", app.Trainer.Stats().Frames))
	default:
		logger.Error("training loop failed", zap.Error(runErr))
		os.Exit(1)
	}
}
