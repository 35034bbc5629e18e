// Package config assembles the engine configuration from defaults, an
// optional YAML file and environment variables, in that order of
// precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full engine configuration.
type Config struct {
	LogLevel      string              `yaml:"log_level"`
	Request       RequestConfig       `yaml:"request"`
	Inventory     InventoryConfig     `yaml:"inventory"`
	TravelTime    TravelTimeConfig    `yaml:"traveltime"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// RequestConfig bounds individual requests.
type RequestConfig struct {
	// TotalLineLimit caps emitted windows per request.
	TotalLineLimit int `yaml:"total_line_limit"`
	// Workers bounds concurrent pair resolution; 1 means serial.
	Workers int `yaml:"workers"`
}

// InventoryConfig selects and parameterizes the inventory backend.
type InventoryConfig struct {
	// Backend is one of "memory", "sqlite", "postgres".
	Backend string `yaml:"backend"`
	// Path of the SQLite database file (sqlite backend).
	Path string `yaml:"path"`
	// DSN of the Postgres inventory (postgres backend).
	DSN string `yaml:"dsn"`
	// RedisAddr enables the read-through cache when non-empty.
	RedisAddr string   `yaml:"redis_addr"`
	RedisTTL  Duration `yaml:"redis_ttl"`
}

// Duration decodes YAML durations in time.ParseDuration notation
// ("30m", "1h30m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// TravelTimeConfig selects the travel-time table.
type TravelTimeConfig struct {
	// Backend is "model" (built-in) or "remote".
	Backend string `yaml:"backend"`
	// RemoteURL of the travel-time service (remote backend).
	RemoteURL         string  `yaml:"remote_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// MemoSize caps the (origin, site) memo; 0 takes the default.
	MemoSize int `yaml:"memo_size"`
}

// ObservabilityConfig controls telemetry export.
type ObservabilityConfig struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRate   float64 `yaml:"sample_rate"`
	Insecure     bool    `yaml:"insecure"`
}

// Load returns the defaults overlaid with environment variables.
func Load() *Config {
	cfg := defaults()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML configuration file over the defaults, then
// applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		LogLevel: "INFO",
		Request: RequestConfig{
			TotalLineLimit: 10000,
			Workers:        1,
		},
		Inventory: InventoryConfig{
			Backend:  "memory",
			RedisTTL: Duration(time.Hour),
		},
		TravelTime: TravelTimeConfig{
			Backend:           "model",
			RequestsPerSecond: 10,
			MemoSize:          1024,
		},
		Observability: ObservabilityConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WEBDC3_TOTAL_LINE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Request.TotalLineLimit = n
		}
	}
	if v := os.Getenv("WEBDC3_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Request.Workers = n
		}
	}
	if v := os.Getenv("WEBDC3_INVENTORY_BACKEND"); v != "" {
		c.Inventory.Backend = v
	}
	if v := os.Getenv("WEBDC3_INVENTORY_PATH"); v != "" {
		c.Inventory.Path = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Inventory.DSN = v
	}
	if v := os.Getenv("WEBDC3_REDIS_ADDR"); v != "" {
		c.Inventory.RedisAddr = v
	}
	if v := os.Getenv("WEBDC3_TRAVELTIME_BACKEND"); v != "" {
		c.TravelTime.Backend = v
	}
	if v := os.Getenv("WEBDC3_TRAVELTIME_URL"); v != "" {
		c.TravelTime.RemoteURL = v
	}
	if v := os.Getenv("WEBDC3_OTEL_ENABLED"); v != "" {
		c.Observability.Enabled = v == "true"
	}
	if v := os.Getenv("WEBDC3_OTLP_ENDPOINT"); v != "" {
		c.Observability.OTLPEndpoint = v
	}
}
