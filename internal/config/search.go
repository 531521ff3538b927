package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SearchConfig holds settings for the search command.
type SearchConfig struct {
	PGDSN             string
	LogLevel          string
	LogFile           string
	Resolve           bool
	Timeout           time.Duration
	ExcludeEventTypes []string
	MaxRetries        int
	RetryBackoff      time.Duration
}

// LoadSearch merges config file, environment variables, and flags into SearchConfig.
func LoadSearch(cfgFile string, flags *pflag.FlagSet) (SearchConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		setCommonDefaults(v)
		v.SetDefault("log-level", "warn")
		v.SetDefault("resolve", false)
		v.SetDefault("request-timeout", 10*time.Second)
	})
	if err != nil {
		return SearchConfig{}, err
	}

	return SearchConfig{
		PGDSN:             v.GetString("pg-dsn"),
		LogLevel:          v.GetString("log-level"),
		LogFile:           v.GetString("log-file"),
		Resolve:           v.GetBool("resolve"),
		Timeout:           v.GetDuration("request-timeout"),
		ExcludeEventTypes: getStringSlice(v, "exclude-event-types"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
	}, nil
}
