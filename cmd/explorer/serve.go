package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"explorerScope/internal/api"
	"explorerScope/internal/config"
	"explorerScope/internal/explorer"
	"explorerScope/internal/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
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

	svc := explorer.New(store,
		explorer.WithLogger(logger),
		explorer.WithExcludeTypes(cfg.ExcludeEventTypes),
		explorer.WithPageSize(cfg.PageSize),
	)

	gin.SetMode(gin.ReleaseMode)
	router := api.Init(svc, api.Config{
		RequestTimeout: cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Metrics:        cfg.Metrics,
		Health:         store.Ping,
	}, logger)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("explorer start",
		zap.String("listen", cfg.Listen),
		zap.Int("page_size", cfg.PageSize),
		zap.Strings("exclude_event_types", cfg.ExcludeEventTypes),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Float64("rate_limit_rps", cfg.RateLimitRPS),
		zap.Bool("metrics", cfg.Metrics),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("explorer shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Metrics {
		g.Go(func() error {
			store.ReportPoolStats(gctx, 15*time.Second)
			return nil
		})
	}

	return g.Wait()
}
