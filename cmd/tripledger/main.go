package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"tripledger/internal/advisor"
	"tripledger/internal/cli"
	"tripledger/internal/events"
	apphttp "tripledger/internal/http"
	"tripledger/internal/log"
	"tripledger/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	slot, closeSlot, err := cli.NewSlot(cfg)
	if err != nil {
		logger.Error("Failed to initialize store backend", log.FieldError, err, log.FieldBackend, cfg.StoreBackend)
		os.Exit(1)
	}
	defer closeSlot()

	st := store.New(slot, logger)
	st.Load(context.Background())

	// Mutation events are optional; without a broker the store simply
	// skips publishing.
	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer eventsClient.Close()
		st.SetPublisher(eventsClient)
		logger.Info("Mutation event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	adv, err := advisor.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Error("Failed to initialize advisory client", log.FieldError, err)
		os.Exit(1)
	}
	defer adv.Close()

	srv := apphttp.NewServer(":"+cfg.Port, st, adv, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting tripledger server",
		"port", cfg.Port,
		log.FieldBackend, cfg.StoreBackend,
		log.FieldStoreKey, cfg.StoreKey)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	<-done
	logger.Info("Server stopped gracefully")
}
