// Package common provides shared utilities for the tracking engine
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the tracking engine
type Config struct {
	Environment string         `toml:"environment"`
	Accounts    []string       `toml:"accounts"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Resolver    ResolverConfig `toml:"resolver"`
	Logging     LoggingConfig  `toml:"logging"`
}

// StorageConfig holds the embedded store location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *AlphaVantageConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ResolverConfig holds pacing and staleness configuration for price resolution.
// Duration fields are strings ("300s", "5m") parsed via the Get* accessors.
type ResolverConfig struct {
	QuoteMaxAge string `toml:"quote_max_age"`
	MinDelay    string `toml:"min_delay"`
	MaxDelay    string `toml:"max_delay"`
	Cooldown    string `toml:"cooldown"`
}

// GetQuoteMaxAge parses and returns the cache staleness threshold.
func (c *ResolverConfig) GetQuoteMaxAge() time.Duration {
	return parseDurationOr(c.QuoteMaxAge, FreshnessQuote)
}

// GetMinDelay parses and returns the minimum inter-fetch delay.
func (c *ResolverConfig) GetMinDelay() time.Duration {
	return parseDurationOr(c.MinDelay, MinFetchDelay)
}

// GetMaxDelay parses and returns the maximum inter-fetch delay.
func (c *ResolverConfig) GetMaxDelay() time.Duration {
	return parseDurationOr(c.MaxDelay, MaxFetchDelay)
}

// GetCooldown parses and returns the post-throttle cooldown window.
func (c *ResolverConfig) GetCooldown() time.Duration {
	return parseDurationOr(c.Cooldown, ThrottleCooldown)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultAccount returns the first account in the list (the default), or empty string.
func (c *Config) DefaultAccount() string {
	if len(c.Accounts) > 0 {
		return c.Accounts[0]
	}
	return ""
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Path: "data/tracker",
		},
		Clients: ClientsConfig{
			AlphaVantage: AlphaVantageConfig{
				BaseURL:   "https://www.alphavantage.co",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Resolver: ResolverConfig{
			QuoteMaxAge: "300s",
			MinDelay:    "200ms",
			MaxDelay:    "600ms",
			Cooldown:    "60s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TRACKER_ENV"); env != "" {
		config.Environment = env
	}

	if path := os.Getenv("TRACKER_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if level := os.Getenv("TRACKER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if key := os.Getenv("ALPHA_VANTAGE_API_KEY"); key != "" {
		config.Clients.AlphaVantage.APIKey = key
	}

	if rl := os.Getenv("TRACKER_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil && n > 0 {
			config.Clients.AlphaVantage.RateLimit = n
		}
	}

	if acct := os.Getenv("TRACKER_DEFAULT_ACCOUNT"); acct != "" {
		// Set as first account (default), preserving any others
		if len(config.Accounts) == 0 {
			config.Accounts = []string{acct}
		} else if config.Accounts[0] != acct {
			filtered := []string{acct}
			for _, a := range config.Accounts {
				if a != acct {
					filtered = append(filtered, a)
				}
			}
			config.Accounts = filtered
		}
	}
}
