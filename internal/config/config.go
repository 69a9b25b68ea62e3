// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider names accepted by PRIMARY_PROVIDER
const (
	ProviderYahoo        = "yahoo"
	ProviderAlphaVantage = "alphavantage"
)

// Config holds application configuration
type Config struct {
	Port                   int           `yaml:"port"`
	LogLevel               string        `yaml:"log_level"`
	LogPretty              bool          `yaml:"log_pretty"`
	DevMode                bool          `yaml:"dev_mode"`
	PrimaryProvider        string        `yaml:"primary_provider"` // yahoo or alphavantage
	ProviderTimeout        time.Duration `yaml:"provider_timeout"`
	AlphaVantageAPIKey     string        `yaml:"alphavantage_api_key"`
	AlphaVantageDailyLimit int           `yaml:"alphavantage_daily_limit"`
	CacheResetSchedule     string        `yaml:"cache_reset_schedule"` // cron spec with seconds field
}

// Default returns the configuration used when neither a file nor env vars set a value
func Default() *Config {
	return &Config{
		Port:                   8001,
		LogLevel:               "info",
		LogPretty:              true,
		PrimaryProvider:        ProviderYahoo,
		ProviderTimeout:        15 * time.Second,
		AlphaVantageDailyLimit: 25,
		CacheResetSchedule:     "0 0 0 * * *", // midnight UTC, when the Alpha Vantage quota resets
	}
}

// Load reads configuration from the optional YAML file and then environment variables.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()

	path := getEnv("CONFIG_FILE", "config.yaml")
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges a YAML file over the defaults. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvAsInt("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPretty = getEnvAsBool("LOG_PRETTY", c.LogPretty)
	c.DevMode = getEnvAsBool("DEV_MODE", c.DevMode)
	c.PrimaryProvider = strings.ToLower(getEnv("PRIMARY_PROVIDER", c.PrimaryProvider))
	c.ProviderTimeout = getEnvAsDuration("PROVIDER_TIMEOUT", c.ProviderTimeout)
	c.AlphaVantageAPIKey = getEnv("ALPHAVANTAGE_API_KEY", c.AlphaVantageAPIKey)
	c.AlphaVantageDailyLimit = getEnvAsInt("ALPHAVANTAGE_DAILY_LIMIT", c.AlphaVantageDailyLimit)
	c.CacheResetSchedule = getEnv("CACHE_RESET_SCHEDULE", c.CacheResetSchedule)
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch c.PrimaryProvider {
	case ProviderYahoo:
	case ProviderAlphaVantage:
		if c.AlphaVantageAPIKey == "" {
			return fmt.Errorf("primary provider %q requires ALPHAVANTAGE_API_KEY", c.PrimaryProvider)
		}
	default:
		return fmt.Errorf("unknown primary provider: %q", c.PrimaryProvider)
	}

	if c.AlphaVantageDailyLimit <= 0 {
		return fmt.Errorf("invalid alphavantage daily limit: %d", c.AlphaVantageDailyLimit)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("invalid provider timeout: %s", c.ProviderTimeout)
	}

	return nil
}

// AlphaVantageEnabled reports whether an Alpha Vantage key is configured
func (c *Config) AlphaVantageEnabled() bool {
	return c.AlphaVantageAPIKey != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
