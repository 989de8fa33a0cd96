package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/corebank/ledger-service/internal/adapter/http/controller"
	"github.com/corebank/ledger-service/internal/adapter/http/middleware"
	"github.com/corebank/ledger-service/internal/adapter/http/router"
	"github.com/corebank/ledger-service/internal/adapter/repository/postgres"
	"github.com/corebank/ledger-service/internal/config"
	"github.com/corebank/ledger-service/internal/events"
	"github.com/corebank/ledger-service/internal/events/kafka"
	"github.com/corebank/ledger-service/internal/metrics"
	"github.com/corebank/ledger-service/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	customerRepo := postgres.NewCustomerRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	collector := metrics.NewCollector()
	metricsServer := collector.StartServer(cfg.MetricsAddr)
	defer metricsServer.Close()

	customerService := services.NewCustomerService(customerRepo)
	accountService := services.NewAccountService(accountRepo, customerRepo)
	ledgerService := services.NewLedgerService(ledgerRepo, accountRepo, publisher, collector, cfg.KafkaTopic)

	mux := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		controller.NewCustomerController(customerService, accountService),
		controller.NewAccountController(accountService),
		controller.NewLedgerController(ledgerService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("ledger service listening on %s", cfg.HTTPAddr)
	log.Fatal(server.ListenAndServe())
}
