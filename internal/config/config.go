package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Port                  string `yaml:"port"`
	AirlinesPath          string `yaml:"airlines_path"`
	CacheDBPath           string `yaml:"cache_db_path"`
	AviationAPIKey        string `yaml:"aviation_api_key"`
	AviationURL           string `yaml:"aviation_url"`
	OpenSkyURL            string `yaml:"opensky_url"`
	OpenSkyTimeoutSeconds int    `yaml:"opensky_timeout_seconds"`
	ResolveWorkers        int    `yaml:"resolve_workers"`
	HistorySize           int    `yaml:"history_size"`
	CacheTTLSeconds       int    `yaml:"cache_ttl_seconds"`
}

// OpenSkyTimeout returns the telemetry snapshot fetch timeout.
func (c *Config) OpenSkyTimeout() time.Duration {
	return time.Duration(c.OpenSkyTimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached commercial responses stay fresh.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load builds the configuration from defaults, an optional YAML file
// (CONFIG_FILE), and environment variable overrides, in that order.
func Load() *Config {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			// A broken config file should be visible but not fatal.
			fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
		}
	}

	cfg.applyEnv()
	return cfg
}

func defaults() *Config {
	return &Config{
		Port:                  ":8080",
		AirlinesPath:          "./data/airlines.csv",
		CacheDBPath:           "./data/status_cache.db",
		AviationURL:           "http://api.aviationstack.com/v1/flights",
		OpenSkyURL:            "https://opensky-network.org/api",
		OpenSkyTimeoutSeconds: 12,
		ResolveWorkers:        4,
		HistorySize:           30,
		CacheTTLSeconds:       90,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("AIRLINES_PATH"); v != "" {
		c.AirlinesPath = v
	}
	if v := os.Getenv("CACHE_DB_PATH"); v != "" {
		c.CacheDBPath = v
	}
	if v := os.Getenv("AVIATIONSTACK_API_KEY"); v != "" {
		c.AviationAPIKey = v
	}
	if v := os.Getenv("AVIATIONSTACK_URL"); v != "" {
		c.AviationURL = v
	}
	if v := os.Getenv("OPENSKY_URL"); v != "" {
		c.OpenSkyURL = v
	}
	if v := os.Getenv("RESOLVE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ResolveWorkers = n
		}
	}
	if v := os.Getenv("HISTORY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HistorySize = n
		}
	}
}
