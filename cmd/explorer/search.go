package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"explorerScope/internal/config"
	"explorerScope/internal/explorer"
	"explorerScope/internal/search"
	"explorerScope/internal/storage/postgres"
)

func runSearch(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSearch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")

	if !cfg.Resolve {
		query, err := search.Classify(args[0])
		if err != nil {
			return err
		}
		return out.Encode(struct {
			Kind  search.Kind `json:"kind"`
			Value string      `json:"value"`
		}{Kind: query.Kind(), Value: query.Value()})
	}

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required to resolve a query")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

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
	result, err := svc.Search(ctx, args[0])
	if err != nil {
		return err
	}
	return out.Encode(result)
}
