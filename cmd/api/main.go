package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight-settlement/config"
	"freight-settlement/internal/adapter/custodian"
	"freight-settlement/internal/adapter/events"
	"freight-settlement/internal/adapter/gateway"
	httpHandler "freight-settlement/internal/adapter/http/handler"
	pgStorage "freight-settlement/internal/adapter/storage/postgres"
	redisStorage "freight-settlement/internal/adapter/storage/redis"
	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/internal/service"
	"freight-settlement/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Freight Settlement Core")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	cryptoTxRepo := pgStorage.NewCryptoTransactionRepo(pool)
	quoteRepo := pgStorage.NewQuoteRepo(pool)
	dedupStore := redisStorage.NewWebhookDedupStore(rdb)

	// Initialize event publisher (optional)
	var publisher ports.EventPublisher
	var kafkaPub *events.KafkaPublisher
	if cfg.Kafka.Enabled {
		kafkaPub, err = events.NewKafkaPublisher(cfg.Kafka, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Kafka")
		}
		defer kafkaPub.Close()
		publisher = kafkaPub
	}

	// Initialize adapters
	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Secret, cfg.Gateway.Issuer, cfg.Gateway.Timeout, log)
	registry := custodian.NewRegistry(cfg.Custodians, log)

	// Initialize core services
	complianceEngine := service.NewComplianceEngine(service.ComplianceConfig{
		TravelRuleThreshold:   cfg.Compliance.TravelRuleThreshold,
		SanctionedAddresses:   cfg.Compliance.SanctionedAddresses,
		HighRiskAssets:        cfg.Compliance.HighRiskAssets,
		HighRiskJurisdictions: cfg.Compliance.HighRiskJurisdictions,
	})
	queue := service.NewSettlementQueue(cfg.Queue.Size, log)
	reconciler := service.NewReconciler(paymentRepo, quoteRepo, gatewayClient, publisher, log)
	custodySvc := service.NewCustodyOrchestrator(
		paymentRepo,
		cryptoTxRepo,
		quoteRepo,
		registry,
		complianceEngine,
		reconciler,
		queue,
		domain.PartyIdentity{
			Name:      cfg.Compliance.PlatformName,
			AccountID: cfg.Compliance.PlatformAccountID,
		},
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Reconciler:     reconciler,
		Payments:       paymentRepo,
		Custody:        custodySvc,
		DedupStore:     dedupStore,
		WebhookSecret:  cfg.Gateway.WebhookSecret,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Drain queued settlement jobs before releasing the DB pool.
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.Queue.DrainTimeout)
	defer cancelDrain()
	if err := queue.Close(drainCtx); err != nil {
		log.Error().Err(err).Msg("Settlement queue drained incompletely")
	}

	log.Info().Msg("Server exited")
}
