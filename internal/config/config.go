// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Defaults point at the public mock API the service proxies.
const (
	defaultUpstreamBaseURL = "https://605c94c36d85de00170da8b4.mockapi.io"
	defaultStationsPath    = "/stations"
	defaultBookingPath     = "/stations/%station-id%/bookings/%booking-id%"
	defaultRefreshCron     = "*/15 * * * *"
)

type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	StationsPath   string `yaml:"stations_path"`
	BookingPath    string `yaml:"booking_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

type Config struct {
	App struct {
		Name                   string `yaml:"name"`
		Environment            string `yaml:"environment"`
		Port                   int    `yaml:"port"`
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Upstream UpstreamConfig `yaml:"upstream"`

	Refresh struct {
		// Interval is a standard five-field cron expression driving the
		// background station snapshot refresh.
		Interval string `yaml:"interval"`
	} `yaml:"refresh"`

	Limits struct {
		// MaxRequests per client per window on /api routes; 0 disables
		// rate limiting.
		MaxRequests   int `yaml:"max_requests"`
		WindowSeconds int `yaml:"window_seconds"`
	} `yaml:"limits"`

	Features struct {
		EnableDebug bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration. A missing config file is not
// an error: the service runs against the public mock API with defaults, and
// environment variables still override the basics.
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment overrides.
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = "station-bookings"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.ShutdownTimeoutSeconds = 30
	cfg.Upstream.BaseURL = defaultUpstreamBaseURL
	cfg.Upstream.StationsPath = defaultStationsPath
	cfg.Upstream.BookingPath = defaultBookingPath
	cfg.Upstream.TimeoutSeconds = 10
	cfg.Refresh.Interval = defaultRefreshCron
	cfg.Limits.WindowSeconds = 60
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if value, err := strconv.Atoi(port); err == nil {
			cfg.App.Port = value
		}
	}
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.App.Environment = env
	}
	if base := os.Getenv("UPSTREAM_BASE_URL"); base != "" {
		cfg.Upstream.BaseURL = base
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port %d is out of range", c.App.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required")
	}
	if c.Upstream.StationsPath == "" {
		return fmt.Errorf("upstream stations path is required")
	}
	if !strings.Contains(c.Upstream.BookingPath, "%station-id%") ||
		!strings.Contains(c.Upstream.BookingPath, "%booking-id%") {
		return fmt.Errorf("upstream booking path must contain %%station-id%% and %%booking-id%% placeholders")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}
	if c.Refresh.Interval != "" {
		if _, err := cron.ParseStandard(c.Refresh.Interval); err != nil {
			return fmt.Errorf("invalid refresh interval %q: %w", c.Refresh.Interval, err)
		}
	}
	if c.Limits.MaxRequests < 0 {
		return fmt.Errorf("rate limit max requests cannot be negative")
	}
	if c.Limits.MaxRequests > 0 && c.Limits.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	return nil
}
