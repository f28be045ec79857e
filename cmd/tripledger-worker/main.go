package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"tripledger/internal/cli"
	"tripledger/internal/events"
	"tripledger/internal/log"
	"tripledger/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting tripledger-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	slot, closeSlot, err := cli.NewSlot(cfg)
	if err != nil {
		logger.Error("Failed to initialize store backend", log.FieldError, err, log.FieldBackend, cfg.StoreBackend)
		os.Exit(1)
	}
	defer closeSlot()

	exportWorker := worker.NewExportWorker(slot, cfg.ExportPath, logger)

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return exportWorker.Run(gctx, cfg.ExportInterval)
	})

	// Without a broker the worker still exports periodically; with one it
	// also reacts to mutation events as they arrive.
	if cfg.AMQPURL != "" {
		eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer eventsClient.Close()

		g.Go(func() error {
			return eventsClient.ConsumeMutations(gctx, func(msg *events.MutationMessage) error {
				logger.Info("Mutation event received",
					log.FieldTripID, msg.TripID,
					log.FieldEventKind, msg.Kind)
				exportWorker.Kick()
				return nil
			})
		})
	} else {
		logger.Info("AMQP disabled, running on export interval only")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", log.FieldError, err)
		os.Exit(1)
	}

	<-done
	logger.Info("Worker stopped gracefully")
}
