package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"explorerScope/internal/config"
	"explorerScope/internal/explorer"
	"explorerScope/internal/export"
	"explorerScope/internal/storage"
	"explorerScope/internal/storage/postgres"
)

func runExport(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadExport(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, postgres.Config{
		DSN:          cfg.PGDSN,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	svc := explorer.New(store, explorer.WithLogger(logger), explorer.WithExcludeTypes(cfg.ExcludeEventTypes))
	storageSink := storage.NewJsonlStorage(cfg.Out)

	runner := export.NewRunner(export.RunConfig{
		FromHeight:        cfg.FromHeight,
		ToHeight:          cfg.ToHeight,
		BatchSize:         cfg.BatchSize,
		Workers:           cfg.Workers,
		CheckpointPath:    cfg.Checkpoint,
		CheckpointEnabled: cfg.CheckpointEnabled,
		MaxRetries:        cfg.MaxRetries,
		RetryBackoff:      cfg.RetryBackoff,
	}, svc, storageSink, logger)

	logger.Info("export start",
		zap.Uint64("from", cfg.FromHeight),
		zap.Uint64("to", cfg.ToHeight),
		zap.Uint64("batch_size", cfg.BatchSize),
		zap.Int("workers", cfg.Workers),
		zap.String("out", cfg.Out),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
		zap.String("checkpoint", cfg.Checkpoint),
	)

	return runner.Run(ctx)
}
