package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/afrifa-micro/banking-core/internal/batch"
	"github.com/afrifa-micro/banking-core/internal/config"
	"github.com/afrifa-micro/banking-core/internal/directory"
	"github.com/afrifa-micro/banking-core/internal/events/kafka"
	"github.com/afrifa-micro/banking-core/internal/events/noop"
	"github.com/afrifa-micro/banking-core/internal/interfaces"
	"github.com/afrifa-micro/banking-core/internal/ledger"
	"github.com/afrifa-micro/banking-core/internal/logger"
	"github.com/afrifa-micro/banking-core/internal/server"
	"github.com/afrifa-micro/banking-core/internal/storage/memory"
	"github.com/afrifa-micro/banking-core/internal/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	var store interfaces.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("ping postgres")
		}

		pgStore := postgres.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("ensure schema")
		}
		store = pgStore
		log.Info().Msg("using postgres store")
	} else {
		store = memory.NewMemoryStore()
		log.Info().Msg("using in-memory store")
	}

	var publisher interfaces.EventPublisher = noop.NewPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, batch.TopicDepositCommitted)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("kafka publisher enabled")
	}

	dir := directory.NewDirectory(store, log)
	led := ledger.NewLedger(store, log)
	proc := batch.NewProcessor(dir, led, publisher, log)
	srv := server.NewServer(dir, led, proc, store, log)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
