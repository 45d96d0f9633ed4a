package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Debyte404/Obscura/internal/config"
	"github.com/Debyte404/Obscura/internal/infrastructure/container"
	"github.com/Debyte404/Obscura/internal/infrastructure/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.Logging)

	// Initialize dependency injection container
	app, err := container.NewContainer(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize application")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.WithError(err).Error("error closing application")
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			log.WithError(err).Error("server error")
			quit <- syscall.SIGTERM
		}
	}()

	log.WithFields(logrus.Fields{
		"env":     cfg.Server.Env,
		"storage": cfg.Storage.Type,
		"lock":    cfg.Lock.Type,
	}).Info("server started")

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown error")
		return
	}

	log.Info("server exited properly")
}
