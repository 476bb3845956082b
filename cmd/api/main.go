package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/market_ledger/internal/config"
	httpDelivery "github.com/Pesokrava/market_ledger/internal/delivery/http"
	"github.com/Pesokrava/market_ledger/internal/delivery/events"
	"github.com/Pesokrava/market_ledger/internal/domain"
	"github.com/Pesokrava/market_ledger/internal/ledger"
	"github.com/Pesokrava/market_ledger/internal/pkg/cache"
	"github.com/Pesokrava/market_ledger/internal/pkg/database"
	"github.com/Pesokrava/market_ledger/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/market_ledger/internal/repository/cache"
	"github.com/Pesokrava/market_ledger/internal/repository/postgres"
	"github.com/Pesokrava/market_ledger/internal/usecase/market"

	_ "github.com/Pesokrava/market_ledger/docs"
)

// @title Market Ledger API
// @version 1.0
// @description Single-tenant marketplace ledger: catalog, inventory, discounts, orders, audit log and order NFTs.
// @description Callers identify themselves with the X-Principal header set by the fronting gateway.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/market_ledger

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Store
// @tag.name Managers
// @tag.name Products
// @tag.name Inventory
// @tag.name Discounts
// @tag.name Orders
// @tag.name NFT
// @tag.name Tokens
// @tag.name Logs

const (
	connectRetries = 10
	connectDelay   = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	logger.SetGlobalLogger(appLogger)
	appLogger.Info("Starting Market Ledger API...")

	logPolicy, err := ledger.ParseLogPolicy(cfg.Market.LogPolicy)
	if err != nil {
		appLogger.Fatal("Invalid MARKET_LOG_POLICY", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var journal domain.JournalRepository
	if cfg.Journal.Driver == config.JournalDriverPostgres {
		appLogger.Info("Connecting to PostgreSQL...")
		db, err := database.WaitForDB(ctx, cfg, connectRetries, connectDelay)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", err)
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL successfully")

		if err := database.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
			appLogger.Fatal("Failed to run migrations", err)
		}
		journal = postgres.NewJournalRepository(db)
	} else {
		appLogger.Warn("Journal disabled; ledger state lives in memory only")
	}

	var idem domain.IdempotencyStore
	if cfg.Idempotency.Driver == config.IdempotencyDriverRedis {
		appLogger.Info("Connecting to Redis...")
		redisClient, err := cache.WaitForRedis(ctx, cfg, connectRetries, connectDelay)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", err)
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis successfully")

		idem = cacheRepo.NewIdempotencyStore(redisClient, cfg.Idempotency.TTL)
	}

	var publisher market.EventPublisher
	switch cfg.Events.Driver {
	case config.EventsDriverNATS:
		appLogger.Info("Connecting to NATS...")
		natsPublisher, err := events.NewPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create NATS publisher", err)
		}
		defer natsPublisher.Close()

		stream := events.NewStreamConfig(natsPublisher.JetStream(), cfg.Events.Subject, appLogger)
		if err := stream.EnsureStream(); err != nil {
			appLogger.Fatal("Failed to ensure JetStream stream", err)
		}
		publisher = natsPublisher
	case config.EventsDriverKafka:
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, appLogger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	default:
		appLogger.Info("Event publication disabled")
	}

	service := market.NewService(market.Options{
		Owner:        domain.Principal(cfg.Market.Owner),
		StartHeight:  cfg.Market.StartHeight,
		InitialStock: cfg.Market.InitialStock,
		LogPolicy:    logPolicy,
		Subject:      cfg.Events.Subject,
	}, journal, idem, publisher, appLogger)
	defer service.Close()

	replayed, err := service.Replay(ctx)
	if err != nil {
		appLogger.Fatal("Failed to replay journal", err)
	}
	appLogger.Infof("Ledger ready at height %d after replaying %d calls", service.Height(), replayed)

	router := httpDelivery.NewRouter(service, cfg, appLogger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(ctx),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
