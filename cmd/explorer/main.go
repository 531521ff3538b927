package main

import (
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "explorer",
		Short:        "CometBFT block explorer backend",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the explorer HTTP API",
		RunE:  runServe,
	}

	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().String("pg-dsn", "", "Postgres DSN of the CometBFT psql indexer")
	serveCmd.Flags().Duration("request-timeout", 10*time.Second, "per-request timeout")
	serveCmd.Flags().Int("page-size", 10, "rows per page of the list endpoints")
	serveCmd.Flags().StringSlice("exclude-event-types", nil, "event types dropped from blocks and transactions (comma-separated)")
	serveCmd.Flags().Int("max-retries", 3, "maximum connection acquire retries")
	serveCmd.Flags().Duration("retry-backoff", 200*time.Millisecond, "initial retry backoff")
	serveCmd.Flags().Float64("rate-limit-rps", 20, "requests per second per client IP, 0 disables")
	serveCmd.Flags().Int("rate-limit-burst", 40, "rate limiter burst size")
	serveCmd.Flags().Bool("metrics", true, "expose /metrics")
	addLogFlags(serveCmd, "info")

	root.AddCommand(serveCmd)

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Classify a search query, optionally resolving its record",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}

	searchCmd.Flags().Bool("resolve", false, "fetch and normalize the record from Postgres")
	searchCmd.Flags().String("pg-dsn", "", "Postgres DSN of the CometBFT psql indexer")
	searchCmd.Flags().Duration("request-timeout", 10*time.Second, "lookup timeout")
	searchCmd.Flags().StringSlice("exclude-event-types", nil, "event types dropped from blocks and transactions (comma-separated)")
	addLogFlags(searchCmd, "warn")

	root.AddCommand(searchCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export normalized blocks to JSONL",
		RunE:  runExport,
	}

	exportCmd.Flags().String("pg-dsn", "", "Postgres DSN of the CometBFT psql indexer")
	exportCmd.Flags().Uint64("from", 1, "start height (inclusive)")
	exportCmd.Flags().Uint64("to", 0, "end height (inclusive), 0 means latest")
	exportCmd.Flags().Uint64("batch-size", 100, "heights per batch")
	exportCmd.Flags().Int("workers", 4, "concurrent block lookups per batch")
	exportCmd.Flags().String("out", "./data/blocks.jsonl", "output JSONL path")
	exportCmd.Flags().String("checkpoint", "./data/export_checkpoint.json", "checkpoint file path")
	exportCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	exportCmd.Flags().StringSlice("exclude-event-types", nil, "event types dropped from blocks (comma-separated)")
	exportCmd.Flags().Int("max-retries", 3, "maximum retry attempts")
	exportCmd.Flags().Duration("retry-backoff", 200*time.Millisecond, "initial retry backoff")
	addLogFlags(exportCmd, "info")

	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLogFlags(cmd *cobra.Command, level string) {
	cmd.Flags().String("log-level", level, "log level (debug, info, warn, error)")
	cmd.Flags().String("log-file", "", "also write logs to this file, rotated")
}

// newLogger builds the production logger. When file is set, output is also
// written to a rotating log file.
func newLogger(level, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if file == "" {
		return cfg.Build()
	}

	hook := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     7,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg.EncoderConfig),
		zapcore.NewMultiWriteSyncer(zapcore.Lock(os.Stderr), zapcore.AddSync(hook)),
		cfg.Level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
