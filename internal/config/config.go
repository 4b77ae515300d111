package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	RatesProviderAddress string
	SessionSecret        string
	PlansFile            string
	RateCurrencies       []string
	RatePollInterval     time.Duration
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultSessionSecret    = "change-me-in-production"
	defaultRateCurrencies   = "NGN"
	defaultRatePollInterval = 5 * time.Minute
	defaultWorkerPoolSize   = 2
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		RatesProviderAddress: getString(lookup, "RATES_PROVIDER_ADDRESS", ""),
		SessionSecret:        getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		PlansFile:            getString(lookup, "PLANS_FILE", ""),
		RatePollInterval:     getDuration(lookup, "RATE_POLL_INTERVAL", defaultRatePollInterval),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	currencies := getString(lookup, "RATE_CURRENCIES", defaultRateCurrencies)

	fs := flag.NewFlagSet("platform", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.RatePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RatesProviderAddress, "r", cfg.RatesProviderAddress, "Exchange rate provider base URL")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&cfg.PlansFile, "plans-file", cfg.PlansFile, "JSON file overriding the built-in plan catalog")
	fs.StringVar(&currencies, "rate-currencies", currencies, "Comma separated currency codes to refresh")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent rate refresh workers")
	fs.StringVar(&pollIntervalStr, "rate-poll-interval", pollIntervalStr, "Interval between rate refreshes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RatePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid rate poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	cfg.RateCurrencies = splitCurrencies(currencies)
	if len(cfg.RateCurrencies) == 0 {
		cfg.RateCurrencies = splitCurrencies(defaultRateCurrencies)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.RatePollInterval <= 0 {
		cfg.RatePollInterval = defaultRatePollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RatesProviderAddress == "" {
		return nil, fmt.Errorf("rates provider address must be provided")
	}

	return cfg, nil
}

func splitCurrencies(raw string) []string {
	var out []string
	for _, code := range strings.Split(raw, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
