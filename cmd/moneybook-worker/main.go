package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"moneybook/internal/amqp"
	"moneybook/internal/backend"
	"moneybook/internal/cli"
	"moneybook/internal/dashboard"
	"moneybook/internal/ledger"
	"moneybook/internal/log"
	"moneybook/internal/session"
	"moneybook/internal/store"
	"moneybook/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, log.ComponentWorker)
	logger.Info("Starting moneybook-worker")

	startup := context.Background()

	stores, err := cli.OpenStore(startup, cfg, logger)
	if err != nil {
		logger.Error("Failed to open slot store", log.FieldError, err)
		os.Exit(1)
	}
	defer func() { _ = stores.Cleanup() }()

	// The worker acts as whoever last logged in through the CLI.
	sess := session.NewManager(stores.Store.Slot(store.TokenSlot), session.WithLogger(logger))

	client, caches, err := cli.NewAPIClient(cfg, sess, logger)
	if err != nil {
		logger.Error("Failed to create API client", log.FieldError, err)
		os.Exit(1)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	writer, err := backend.NewFactory(logger).CreateExporter(startup, bcfg)
	if err != nil {
		logger.Error("Failed to create snapshot exporter", log.FieldError, err)
		os.Exit(1)
	}

	dash := dashboard.NewService(client,
		dashboard.WithReducer(ledger.NewReducer(ledger.WithSettlementPolicy(cfg.Settlement()))),
		dashboard.WithTieBreak(cfg.TieBreak()),
		dashboard.WithLogger(logger),
	)
	exporter := worker.NewExportWorker(&sessionLoader{session: sess, loader: dash}, writer, logger)

	caches.Register(exporter.SeenEvents())
	caches.StartCleanup(time.Minute)

	var amqpClient *amqp.Client
	if cfg.AMQPEnabled() {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
	} else {
		logger.Info("AMQP disabled - exporting on the interval only")
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		caches.Stop()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("Failed to close AMQP client", log.FieldError, err)
			}
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return exporter.RunPeriodic(gctx, cfg.ExportInterval)
	})
	if amqpClient != nil {
		g.Go(func() error {
			return amqpClient.ConsumeLedgerChanged(gctx, exporter.HandleLedgerChanged)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}
