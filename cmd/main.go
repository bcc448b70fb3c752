package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Roll-Play/votechain/pkg/api"
	"github.com/Roll-Play/votechain/pkg/api/sqs_helper"
	"github.com/Roll-Play/votechain/pkg/config"
	"github.com/Roll-Play/votechain/pkg/ledger"
	"github.com/Roll-Play/votechain/pkg/logger"
	blockmodel "github.com/Roll-Play/votechain/pkg/models/block"
	"github.com/Roll-Play/votechain/pkg/storage"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Panic(err)
	}

	zapLogger, err := logger.GetInstance(cfg.Environment)
	if err != nil {
		log.Panic(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	var store ledger.BlockStore = ledger.NewMemoryStore()
	if cfg.UsesMongo() {
		mongoStorage, err := storage.NewMongoStorage(ctx, cfg.DatabaseURL, cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := mongoStorage.Close(context.Background()); err != nil {
				zapLogger.Warn("Failed to disconnect from mongo", zap.Error(err))
			}
		}()

		if err := mongoStorage.Init(ctx); err != nil {
			return err
		}

		store = blockmodel.New(mongoStorage.DB())
		zapLogger.Info("Using mongo block store", zap.String("database", cfg.Database))
	}

	opts := ledger.Options{
		Difficulty: cfg.Difficulty,
		BlockSize:  cfg.BlockSize,
		Logger:     zapLogger,
	}

	if cfg.SQSQueueName != "" {
		publisher, err := sqs_helper.NewSqsHelper(ctx, cfg.SQSQueueName)
		if err != nil {
			return err
		}
		opts.Publisher = publisher
		zapLogger.Info("Publishing mined blocks", zap.String("queue", cfg.SQSQueueName))
	}

	chain, err := ledger.NewChain(ctx, store, opts)
	if err != nil {
		return err
	}

	server := api.NewServer(cfg, chain, zapLogger)

	errs := make(chan error, 1)
	go func() {
		errs <- server.Listen()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
