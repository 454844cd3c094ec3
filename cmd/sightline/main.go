package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sightline-vision/sightline/internal/app"
	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/pkg/Logger"
)

// Entry point for the vision narration service.
// Initializes all capabilities, then runs the pipeline until interrupted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")

	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		logger.Errorf("Run error: %v", err)
	}
}
