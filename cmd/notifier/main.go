package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/market_ledger/internal/config"
	"github.com/Pesokrava/market_ledger/internal/delivery/events"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	"github.com/Pesokrava/market_ledger/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	appLogger.Info("Starting notifier service...")

	consumer, err := events.NewConsumer(cfg.NATS.URL, cfg.Events.Subject, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	notifier := worker.NewNotifier(worker.NewLogSink(appLogger), appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Run(ctx, notifier.HandleEvent)
	}()

	appLogger.Infof("Notifier listening on %s", cfg.Events.Subject)
	<-ctx.Done()

	appLogger.Info("Shutting down notifier service...")
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := notifier.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Notifier did not drain in time", err)
	}

	appLogger.Info("Notifier stopped")
}
