package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ExportConfig holds settings for the export command.
type ExportConfig struct {
	PGDSN             string
	LogLevel          string
	LogFile           string
	FromHeight        uint64
	ToHeight          uint64
	BatchSize         uint64
	Workers           int
	Out               string
	Checkpoint        string
	CheckpointEnabled bool
	ExcludeEventTypes []string
	MaxRetries        int
	RetryBackoff      time.Duration
}

// LoadExport merges config file, environment variables, and flags into ExportConfig.
func LoadExport(cfgFile string, flags *pflag.FlagSet) (ExportConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		setCommonDefaults(v)
		v.SetDefault("from", uint64(1))
		v.SetDefault("batch-size", uint64(100))
		v.SetDefault("workers", 4)
		v.SetDefault("out", "./data/blocks.jsonl")
		v.SetDefault("checkpoint", "./data/export_checkpoint.json")
		v.SetDefault("checkpoint-enabled", true)
	})
	if err != nil {
		return ExportConfig{}, err
	}

	cfg := ExportConfig{
		PGDSN:             v.GetString("pg-dsn"),
		LogLevel:          v.GetString("log-level"),
		LogFile:           v.GetString("log-file"),
		FromHeight:        v.GetUint64("from"),
		ToHeight:          v.GetUint64("to"),
		BatchSize:         v.GetUint64("batch-size"),
		Workers:           v.GetInt("workers"),
		Out:               v.GetString("out"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		ExcludeEventTypes: getStringSlice(v, "exclude-event-types"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
	}

	if cfg.Workers <= 0 {
		return ExportConfig{}, fmt.Errorf("workers must be greater than zero")
	}
	if cfg.ToHeight != 0 && cfg.ToHeight < cfg.FromHeight {
		return ExportConfig{}, fmt.Errorf("to must be >= from")
	}

	return cfg, nil
}
