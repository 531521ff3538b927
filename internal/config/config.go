package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "EXPLORER"

// Config holds settings for the serve command.
type Config struct {
	Listen            string
	PGDSN             string
	LogLevel          string
	LogFile           string
	RequestTimeout    time.Duration
	PageSize          int
	ExcludeEventTypes []string
	MaxRetries        int
	RetryBackoff      time.Duration
	RateLimitRPS      float64
	RateLimitBurst    int
	Metrics           bool
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		setCommonDefaults(v)
		v.SetDefault("listen", ":8080")
		v.SetDefault("request-timeout", 10*time.Second)
		v.SetDefault("page-size", 10)
		v.SetDefault("rate-limit-rps", 20.0)
		v.SetDefault("rate-limit-burst", 40)
		v.SetDefault("metrics", true)
	})
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Listen:            v.GetString("listen"),
		PGDSN:             v.GetString("pg-dsn"),
		LogLevel:          v.GetString("log-level"),
		LogFile:           v.GetString("log-file"),
		RequestTimeout:    v.GetDuration("request-timeout"),
		PageSize:          v.GetInt("page-size"),
		ExcludeEventTypes: getStringSlice(v, "exclude-event-types"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
		RateLimitRPS:      v.GetFloat64("rate-limit-rps"),
		RateLimitBurst:    v.GetInt("rate-limit-burst"),
		Metrics:           v.GetBool("metrics"),
	}

	if cfg.PageSize <= 0 {
		return Config{}, fmt.Errorf("page-size must be greater than zero")
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst <= 0 {
		return Config{}, fmt.Errorf("rate-limit-burst must be greater than zero when rate limiting is enabled")
	}

	return cfg, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 200*time.Millisecond)
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults func(*viper.Viper)) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if defaults != nil {
		defaults(v)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
